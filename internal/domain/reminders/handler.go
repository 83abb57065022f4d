package reminders

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
	r.Route("/reminders", func(rr chi.Router) {
		rr.Post("/", createReminderHandler(svc))
		rr.Get("/", listRemindersHandler(svc))
		rr.Get("/schedule", scheduleHandler(svc))
		rr.Get("/refills", refillsHandler(svc))

		rr.Route("/{reminderID}", func(ir chi.Router) {
			ir.Get("/", getReminderHandler(svc))
			ir.Delete("/", deleteReminderHandler(svc))
			ir.Post("/take", takeDoseHandler(svc))
			ir.Post("/restock", restockHandler(svc))
		})
	})
}

type createReminderRequest struct {
	MedicineName      string `json:"medicine_name" validate:"required"`
	Member            string `json:"member" validate:"required"`
	Schedule          string `json:"schedule" validate:"required"` // "8:00 AM"
	InitialCount      int    `json:"initial_count" validate:"gt=0,lte=100000"`
	Dosage            int    `json:"dosage" validate:"gt=0"`
	LowStockThreshold int    `json:"low_stock_threshold" validate:"gt=0"`
}

type restockRequest struct {
	Amount int `json:"amount" validate:"gt=0,lte=100000"`
}

type ReminderResponse struct {
	ID                string      `json:"id"`
	MedicineName      string      `json:"medicine_name"`
	Member            string      `json:"member"`
	PillsRemaining    int         `json:"pills_remaining"`
	Dosage            int         `json:"dosage"`
	LowStockThreshold int         `json:"low_stock_threshold"`
	Schedule          string      `json:"schedule"`
	Period            Period      `json:"period"`
	StockStatus       StockStatus `json:"stock_status"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

type changeResponse struct {
	Reminder    ReminderResponse `json:"reminder"`
	StockStatus StockStatus      `json:"stock_status"`
	Alert       bool             `json:"alert"`
	Message     string           `json:"message,omitempty"`
}

type GroupResponse struct {
	Period    Period             `json:"period"`
	Reminders []ReminderResponse `json:"reminders"`
}

// createReminderHandler godoc
// @Summary Crear recordatorio con control de stock
// @Tags reminders
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createReminderRequest true "Recordatorio"
// @Success 201 {object} changeResponse
// @Failure 400 {string} string "invalid json / invalid input / invalid schedule"
// @Failure 401 {string} string "unauthorized"
// @Router /reminders [post]
func createReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createReminderRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}

		c, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			MedicineName:      req.MedicineName,
			Member:            req.Member,
			Schedule:          req.Schedule,
			InitialCount:      req.InitialCount,
			Dosage:            req.Dosage,
			LowStockThreshold: req.LowStockThreshold,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, r, http.StatusCreated, toChangeResponse(c))
	}
}

// listRemindersHandler godoc
// @Summary Listar recordatorios del hogar
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Success 200 {array} ReminderResponse
// @Failure 401 {string} string "unauthorized"
// @Router /reminders [get]
func listRemindersHandler(svc *Service) http.HandlerFunc {
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
		httpjson.Write(w, r, http.StatusOK, ToReminderResponses(items))
	}
}

// scheduleHandler godoc
// @Summary Agenda del día por franja
// @Description Morning (<12:00), Afternoon (12:00 a 16:59), Evening (>=17:00); ordenado por hora.
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Success 200 {array} GroupResponse
// @Failure 401 {string} string "unauthorized"
// @Router /reminders/schedule [get]
func scheduleHandler(svc *Service) http.HandlerFunc {
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
		httpjson.Write(w, r, http.StatusOK, ToGroupResponses(GroupBySchedule(items)))
	}
}

// refillsHandler godoc
// @Summary Recordatorios que necesitan reposición
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Success 200 {array} ReminderResponse
// @Failure 401 {string} string "unauthorized"
// @Router /reminders/refills [get]
func refillsHandler(svc *Service) http.HandlerFunc {
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
		httpjson.Write(w, r, http.StatusOK, ToReminderResponses(RefillsNeeded(items)))
	}
}

// getReminderHandler godoc
// @Summary Ver recordatorio
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param reminderID path string true "ID del recordatorio"
// @Success 200 {object} ReminderResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "reminder not found"
// @Router /reminders/{reminderID} [get]
func getReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rem, err := svc.Get(r.Context(), claims.UserID, chi.URLParam(r, "reminderID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, r, http.StatusOK, ToReminderResponse(rem))
	}
}

// deleteReminderHandler godoc
// @Summary Eliminar recordatorio
// @Tags reminders
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param reminderID path string true "ID del recordatorio"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "reminder not found"
// @Router /reminders/{reminderID} [delete]
func deleteReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "reminderID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// takeDoseHandler godoc
// @Summary Marcar toma como tomada
// @Description Descuenta la dosis del stock (mínimo 0). alert=true si queda Low o Empty.
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param reminderID path string true "ID del recordatorio"
// @Success 200 {object} changeResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "reminder not found"
// @Failure 409 {string} string "reminder is out of stock"
// @Router /reminders/{reminderID}/take [post]
func takeDoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		c, err := svc.TakeDose(r.Context(), claims.UserID, chi.URLParam(r, "reminderID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, r, http.StatusOK, toChangeResponse(c))
	}
}

// restockHandler godoc
// @Summary Reponer stock
// @Tags reminders
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param reminderID path string true "ID del recordatorio"
// @Param payload body restockRequest true "Cantidad agregada"
// @Success 200 {object} changeResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "reminder not found"
// @Router /reminders/{reminderID}/restock [post]
func restockHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req restockRequest
		if !httpjson.Decode(w, r, &req) {
			return
		}

		c, err := svc.Restock(r.Context(), claims.UserID, chi.URLParam(r, "reminderID"), req.Amount)
		if err != nil {
			writeError(w, err)
			return
		}
		httpjson.Write(w, r, http.StatusOK, toChangeResponse(c))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, ErrInvalidSchedule):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "reminder not found", http.StatusNotFound)
	case errors.Is(err, ErrOutOfStock):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// ToReminderResponse se exporta para que el dashboard use la misma forma JSON.
func ToReminderResponse(r Reminder) ReminderResponse {
	return ReminderResponse{
		ID:                r.ID,
		MedicineName:      r.MedicineName,
		Member:            r.Member,
		PillsRemaining:    r.PillsRemaining,
		Dosage:            r.Dosage,
		LowStockThreshold: r.LowStockThreshold,
		Schedule:          r.Schedule.String(),
		Period:            r.Schedule.Period(),
		StockStatus:       r.StockStatus(),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func ToReminderResponses(items []Reminder) []ReminderResponse {
	out := make([]ReminderResponse, 0, len(items))
	for _, r := range items {
		out = append(out, ToReminderResponse(r))
	}
	return out
}

func ToGroupResponses(groups []Group) []GroupResponse {
	out := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupResponse{Period: g.Period, Reminders: ToReminderResponses(g.Reminders)})
	}
	return out
}

func toChangeResponse(c Change) changeResponse {
	return changeResponse{
		Reminder:    ToReminderResponse(c.Reminder),
		StockStatus: c.Status,
		Alert:       c.Alert,
		Message:     c.AlertMessage(),
	}
}
