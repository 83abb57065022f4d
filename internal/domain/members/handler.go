package members

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"medicine-cabinet/internal/middleware"
	"medicine-cabinet/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/members", func(mr chi.Router) {
		mr.Post("/", createMemberHandler(svc))
		mr.Get("/", listMembersHandler(svc))

		mr.Route("/{memberID}", func(ir chi.Router) {
			ir.Get("/", getMemberHandler(svc))
			ir.Delete("/", deleteMemberHandler(svc))

			ir.Post("/medications", addMedicationHandler(svc))
			ir.Delete("/medications/{medicationID}", removeMedicationHandler(svc))
		})
	})
}

type medicationRequest struct {
	Name     string `json:"name" validate:"required"`
	Dosage   string `json:"dosage"`   // default "N/A"
	Schedule string `json:"schedule"` // default "Unscheduled"
}

type createMemberRequest struct {
	Name             string `json:"name" validate:"required"`
	Age              int    `json:"age" validate:"gte=0"`
	ChronicCondition string `json:"chronic_condition"`
	Allergies        string `json:"allergies"`

	// Medication opcional: si viene, name es obligatorio.
	Medication *medicationRequest `json:"medication,omitempty"`
}

type medicationResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Schedule string `json:"schedule"`
}

type memberResponse struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	Age              int                  `json:"age"`
	ChronicCondition string               `json:"chronic_condition"`
	Allergies        string               `json:"allergies"`
	HasAllergies     bool                 `json:"has_allergies"`
	Medications      []medicationResponse `json:"medications"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// createMemberHandler godoc
// @Summary Agregar integrante de la familia
// @Description Crea un integrante con condición crónica, alergias y un medicamento inicial opcional.
// @Tags members
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createMemberRequest true "Integrante"
// @Success 201 {object} memberResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /members [post]
func createMemberHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createMemberRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}

		in := CreateInput{
			Name:             req.Name,
			Age:              req.Age,
			ChronicCondition: req.ChronicCondition,
			Allergies:        req.Allergies,
		}
		if req.Medication != nil {
			in.Medication = &MedicationInput{
				Name:     req.Medication.Name,
				Dosage:   req.Medication.Dosage,
				Schedule: req.Medication.Schedule,
			}
		}

		m, err := svc.Create(r.Context(), claims.UserID, in)
		if err != nil {
			writeError(w, err)
			return
		}

		httpjson.Write(w, r, http.StatusCreated, toMemberResponse(m))
	}
}

// listMembersHandler godoc
// @Summary Listar integrantes del hogar
// @Tags members
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} memberResponse
// @Failure 401 {string} string "unauthorized"
// @Router /members [get]
func listMembersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]memberResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMemberResponse(m))
		}
		httpjson.Write(w, r, http.StatusOK, out)
	}
}

// getMemberHandler godoc
// @Summary Ver integrante
// @Tags members
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param memberID path string true "ID del integrante"
// @Success 200 {object} memberResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "member not found"
// @Router /members/{memberID} [get]
func getMemberHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.Get(r.Context(), claims.UserID, chi.URLParam(r, "memberID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, r, http.StatusOK, toMemberResponse(m))
	}
}

// deleteMemberHandler godoc
// @Summary Eliminar integrante
// @Tags members
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param memberID path string true "ID del integrante"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "member not found"
// @Router /members/{memberID} [delete]
func deleteMemberHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "memberID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// addMedicationHandler godoc
// @Summary Agregar medicamento a un integrante
// @Description Dosage y schedule son opcionales ("N/A" y "Unscheduled" por defecto).
// @Tags members
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param memberID path string true "ID del integrante"
// @Param payload body medicationRequest true "Medicamento"
// @Success 201 {object} memberResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "member not found"
// @Router /members/{memberID}/medications [post]
func addMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req medicationRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}

		m, _, err := svc.AddMedication(r.Context(), claims.UserID, chi.URLParam(r, "memberID"), MedicationInput{
			Name:     req.Name,
			Dosage:   req.Dosage,
			Schedule: req.Schedule,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, r, http.StatusCreated, toMemberResponse(m))
	}
}

// removeMedicationHandler godoc
// @Summary Quitar medicamento de un integrante
// @Tags members
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param memberID path string true "ID del integrante"
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} memberResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "member not found / medication not found"
// @Router /members/{memberID}/medications/{medicationID} [delete]
func removeMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.RemoveMedication(r.Context(), claims.UserID,
			chi.URLParam(r, "memberID"),
			chi.URLParam(r, "medicationID"),
		)
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, r, http.StatusOK, toMemberResponse(m))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrMedicationNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toMemberResponse(m Member) memberResponse {
	meds := make([]medicationResponse, 0, len(m.Medications))
	for _, med := range m.Medications {
		meds = append(meds, medicationResponse{
			ID:       med.ID,
			Name:     med.Name,
			Dosage:   med.Dosage,
			Schedule: med.Schedule,
		})
	}
	return memberResponse{
		ID:               m.ID,
		Name:             m.Name,
		Age:              m.Age,
		ChronicCondition: m.ChronicCondition,
		Allergies:        m.Allergies,
		HasAllergies:     m.HasAllergies(),
		Medications:      meds,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
