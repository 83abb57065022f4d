package dashboard

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"medicine-cabinet/internal/domain/expiration"
	"medicine-cabinet/internal/domain/reminders"
	"medicine-cabinet/internal/middleware"
	"medicine-cabinet/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard", summaryHandler(svc))
}

type countsResponse struct {
	Active       int `json:"active"`
	Expired      int `json:"expired"`
	ExpiringSoon int `json:"expiring_soon"`
	Invalid      int `json:"invalid"`
}

type expiringResponse struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	EffectiveExpiryDate string `json:"effective_expiry_date"`
	DaysLeft            int    `json:"days_left"`
}

type summaryResponse struct {
	Today         string                       `json:"today"`
	Now           time.Time                    `json:"now"`
	NextDose      *reminders.ReminderResponse  `json:"next_dose"`
	RefillsNeeded []reminders.ReminderResponse `json:"refills_needed"`
	Schedule      []reminders.GroupResponse    `json:"schedule"`
	Cabinet       countsResponse               `json:"cabinet"`
	ExpiringSoon  []expiringResponse           `json:"expiring_soon"`
}

// summaryHandler godoc
// @Summary Resumen del hogar
// @Description Próxima toma, reposiciones pendientes, agenda por franja y conteos del botiquín.
// @Tags dashboard
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del hogar"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} summaryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /dashboard [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sum, err := svc.Summary(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "invalid input", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		httpjson.Write(w, r, http.StatusOK, toSummaryResponse(sum))
	}
}

func toSummaryResponse(s Summary) summaryResponse {
	out := summaryResponse{
		Today:         expiration.FormatDate(s.Today),
		Now:           s.Now,
		RefillsNeeded: reminders.ToReminderResponses(s.RefillsNeeded),
		Schedule:      reminders.ToGroupResponses(s.Schedule),
		Cabinet: countsResponse{
			Active:       s.Cabinet.Active,
			Expired:      s.Cabinet.Expired,
			ExpiringSoon: s.Cabinet.ExpiringSoon,
			Invalid:      s.Cabinet.Invalid,
		},
		ExpiringSoon: make([]expiringResponse, 0, len(s.ExpiringSoon)),
	}
	if s.NextDose != nil {
		nd := reminders.ToReminderResponse(*s.NextDose)
		out.NextDose = &nd
	}
	for _, e := range s.ExpiringSoon {
		out.ExpiringSoon = append(out.ExpiringSoon, expiringResponse{
			ID:                  e.Medicine.ID,
			Name:                e.Medicine.Name,
			EffectiveExpiryDate: expiration.FormatDate(e.Status.EffectiveExpiry),
			DaysLeft:            e.Status.DaysLeft,
		})
	}
	return out
}
