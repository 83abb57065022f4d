package medicines

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"medicine-cabinet/internal/domain/expiration"
	"medicine-cabinet/internal/middleware"
	"medicine-cabinet/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Botiquín del hogar (el hogar = usuario autenticado)
	r.Route("/medicines", func(mr chi.Router) {
		mr.Post("/", addMedicineHandler(svc))
		mr.Get("/", listMedicinesHandler(svc))
		mr.Get("/{medicineID}", getMedicineHandler(svc))
		mr.Delete("/{medicineID}", removeMedicineHandler(svc))
		mr.Get("/{medicineID}/status", medicineStatusHandler(svc))
	})

	// Calculadora sin estado: no requiere hogar
	r.Route("/expiration", func(er chi.Router) {
		er.Post("/compute", computeExpirationHandler(svc))
		er.Get("/rules", listRulesHandler())
	})
}

// addMedicineRequest es el cuerpo para agregar un medicamento al botiquín.
type addMedicineRequest struct {
	Name        string `json:"name" validate:"required"`
	Dosage      string `json:"dosage" validate:"required"`
	ExpiryDate  string `json:"expiry_date" validate:"required"` // YYYY-MM-DD (caja)
	OpeningDate string `json:"opening_date"`                    // YYYY-MM-DD opcional
	Rule        string `json:"rule" enums:"BOX_DATE,TWO_WEEKS,THREE_MONTHS,SIX_MONTHS"`
}

type computeRequest struct {
	BoxDate     string `json:"box_date" validate:"required"`
	OpeningDate string `json:"opening_date"`
	Rule        string `json:"rule" enums:"BOX_DATE,TWO_WEEKS,THREE_MONTHS,SIX_MONTHS"`
}

type statusResponse struct {
	EffectiveExpiryDate string              `json:"effective_expiry_date"`
	DaysLeft            int                 `json:"days_left"`
	IsExpired           bool                `json:"is_expired"`
	Severity            expiration.Severity `json:"severity"`
	RuleIgnored         bool                `json:"rule_ignored"`
}

type medicineResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Dosage      string          `json:"dosage"`
	ExpiryDate  string          `json:"expiry_date"`
	OpeningDate *string         `json:"opening_date"`
	Rule        expiration.Rule `json:"rule"`
	CreatedAt   time.Time       `json:"created_at"`

	Status *statusResponse `json:"status,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type cabinetResponse struct {
	Today              string             `json:"today"`
	WarningHorizonDays int                `json:"warning_horizon_days"`
	Active             []medicineResponse `json:"active"`
	Expired            []medicineResponse `json:"expired"`
	Invalid            []medicineResponse `json:"invalid,omitempty"`
}

type ruleResponse struct {
	Rule  expiration.Rule `json:"rule"`
	Label string          `json:"label"`
}

// addMedicineHandler godoc
// @Summary Agregar medicamento al botiquín
// @Description Registra un medicamento con fecha de caja y regla post-apertura. Devuelve el estado calculado para hoy.
// @Tags medicines
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body addMedicineRequest true "Fechas en formato YYYY-MM-DD"
// @Success 201 {object} medicineResponse
// @Failure 400 {string} string "invalid json / fecha inválida / regla inválida"
// @Failure 401 {string} string "unauthorized"
// @Router /medicines [post]
func addMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req addMedicineRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}

		e, err := svc.Add(r.Context(), claims.UserID, AddInput{
			Name:        req.Name,
			Dosage:      req.Dosage,
			ExpiryDate:  req.ExpiryDate,
			OpeningDate: req.OpeningDate,
			Rule:        req.Rule,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		httpjson.Write(w, r, http.StatusCreated, toMedicineResponse(e))
	}
}

// listMedicinesHandler godoc
// @Summary Listar el botiquín
// @Description Devuelve los medicamentos vigentes y vencidos, cada grupo ordenado por vencimiento efectivo ascendente.
// @Tags medicines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} cabinetResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /medicines [get]
func listMedicinesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		c, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		httpjson.Write(w, r, http.StatusOK, cabinetResponse{
			Today:              expiration.FormatDate(c.Today),
			WarningHorizonDays: svc.Policy().WarningHorizonDays,
			Active:             toMedicineResponses(c.Active),
			Expired:            toMedicineResponses(c.Expired),
			Invalid:            toMedicineResponses(c.Invalid),
		})
	}
}

// getMedicineHandler godoc
// @Summary Ver un medicamento
// @Tags medicines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param medicineID path string true "ID del medicamento"
// @Success 200 {object} medicineResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medicine not found"
// @Router /medicines/{medicineID} [get]
func getMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		e, err := svc.Get(r.Context(), claims.UserID, chi.URLParam(r, "medicineID"))
		if err != nil {
			writeError(w, err)
			return
		}

		httpjson.Write(w, r, http.StatusOK, toMedicineResponse(e))
	}
}

// removeMedicineHandler godoc
// @Summary Quitar un medicamento del botiquín
// @Tags medicines
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param medicineID path string true "ID del medicamento"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medicine not found"
// @Router /medicines/{medicineID} [delete]
func removeMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Remove(r.Context(), claims.UserID, chi.URLParam(r, "medicineID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// medicineStatusHandler godoc
// @Summary Estado de vencimiento de un medicamento
// @Description Recalcula el estado para hoy; nunca se cachea.
// @Tags medicines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param medicineID path string true "ID del medicamento"
// @Success 200 {object} statusResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medicine not found"
// @Router /medicines/{medicineID}/status [get]
func medicineStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		e, err := svc.Get(r.Context(), claims.UserID, chi.URLParam(r, "medicineID"))
		if err != nil {
			writeError(w, err)
			return
		}

		httpjson.Write(w, r, http.StatusOK, toStatusResponse(e.Status, e.Severity))
	}
}

// computeExpirationHandler godoc
// @Summary Calcular vencimiento efectivo
// @Description Calculadora sin estado. Una opening_date ilegible se trata como ausente; box_date ilegible es 400.
// @Tags expiration
// @Accept json
// @Produce json
// @Param payload body computeRequest true "Fechas en formato YYYY-MM-DD"
// @Success 200 {object} statusResponse
// @Failure 400 {string} string "invalid date format / invalid expiration rule"
// @Router /expiration/compute [post]
func computeExpirationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req computeRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}

		st, sev, err := svc.Calculate(CalculateInput{
			BoxDate:     req.BoxDate,
			OpeningDate: req.OpeningDate,
			Rule:        req.Rule,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		httpjson.Write(w, r, http.StatusOK, toStatusResponse(st, sev))
	}
}

// listRulesHandler godoc
// @Summary Reglas post-apertura soportadas
// @Tags expiration
// @Produce json
// @Success 200 {array} ruleResponse
// @Router /expiration/rules [get]
func listRulesHandler() http.HandlerFunc {
	labels := map[expiration.Rule]string{
		expiration.RuleBoxDate:     "Use Box Expiry Date (e.g., unopened tablets)",
		expiration.RuleTwoWeeks:    "2 Weeks After Opening (e.g., some eye drops)",
		expiration.RuleThreeMonths: "3 Months After Opening (e.g., liquids, creams)",
		expiration.RuleSixMonths:   "6 Months After Opening",
	}
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]ruleResponse, 0, len(expiration.Rules))
		for _, rule := range expiration.Rules {
			out = append(out, ruleResponse{Rule: rule, Label: labels[rule]})
		}
		httpjson.Write(w, r, http.StatusOK, out)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medicine not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrOpeningDateRequired),
		errors.Is(err, expiration.ErrInvalidDateFormat),
		errors.Is(err, expiration.ErrInvalidRule):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toStatusResponse(st expiration.Status, sev expiration.Severity) statusResponse {
	return statusResponse{
		EffectiveExpiryDate: expiration.FormatDate(st.EffectiveExpiry),
		DaysLeft:            st.DaysLeft,
		IsExpired:           st.IsExpired,
		Severity:            sev,
		RuleIgnored:         st.RuleIgnored,
	}
}

func toMedicineResponse(e Entry) medicineResponse {
	m := e.Medicine
	out := medicineResponse{
		ID:         m.ID,
		Name:       m.Name,
		Dosage:     m.Dosage,
		ExpiryDate: expiration.FormatDate(m.ExpiryDate),
		Rule:       m.Rule,
		CreatedAt:  m.CreatedAt,
	}
	if m.OpeningDate != nil {
		s := expiration.FormatDate(*m.OpeningDate)
		out.OpeningDate = &s
	}
	if e.Err != nil {
		out.Error = e.Err.Error()
		return out
	}
	st := toStatusResponse(e.Status, e.Severity)
	out.Status = &st
	return out
}

func toMedicineResponses(entries []Entry) []medicineResponse {
	out := make([]medicineResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toMedicineResponse(e))
	}
	return out
}
