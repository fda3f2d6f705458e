package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/types"
	"github.com/cadencehq/cadence/pkg/usecase"
	"github.com/cadencehq/cadence/pkg/utils/errutil"
)

const dateLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

// parseDate reads a ?date= query parameter, defaulting to today
func parseDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now(), nil
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid date, expected YYYY-MM-DD", goerr.V("date", raw))
	}
	return date, nil
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	date, err := parseDate(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	plan, err := s.uc.Plan.GetPlan(r.Context(), userID, date)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrPlanNotFound) {
			status = http.StatusNotFound
		}
		errutil.HandleHTTP(r.Context(), w, err, status)
		return
	}
	writeJSON(w, r, http.StatusOK, plan)
}

func (s *Server) generatePlan(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req struct {
		Date        string `json:"date"`
		FreeMinutes *int   `json:"free_minutes"`
		Override    *struct {
			Tier   string `json:"tier"`
			Reason string `json:"reason"`
		} `json:"override"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid date, expected YYYY-MM-DD"), http.StatusBadRequest)
			return
		}
		date = parsed
	}

	// Absent free_minutes means no calendar signal
	freeMinutes := -1
	if req.FreeMinutes != nil {
		freeMinutes = *req.FreeMinutes
	}

	var override *model.CapacityOverride
	if req.Override != nil {
		tier, err := types.ParseCapacityTier(req.Override.Tier)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid override tier"), http.StatusBadRequest)
			return
		}
		override = &model.CapacityOverride{Tier: tier, Reason: req.Override.Reason}
	}

	plan, err := s.uc.Plan.GeneratePlan(r.Context(), userID, date, freeMinutes, override)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, plan)
}

func (s *Server) recordOutcome(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req struct {
		Date      string `json:"date"`
		Completed bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid date, expected YYYY-MM-DD"), http.StatusBadRequest)
			return
		}
		date = parsed
	}

	outcome, err := s.uc.Plan.RecordOutcome(r.Context(), userID, date, req.Completed)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrPlanNotFound) {
			status = http.StatusNotFound
		}
		errutil.HandleHTTP(r.Context(), w, err, status)
		return
	}
	writeJSON(w, r, http.StatusOK, outcome)
}

func (s *Server) getLanes(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	actions, assignments, err := s.uc.Plan.Lanes(r.Context(), userID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	type entry struct {
		Action  *model.Action `json:"action"`
		Score   float64       `json:"next_move_score"`
		Promise string        `json:"promise,omitempty"`
	}
	resp := map[string][]entry{}
	for _, lane := range types.AllLanes() {
		resp[lane.String()] = []entry{}
	}
	for _, action := range actions {
		assignment, ok := assignments[action.ID]
		if !ok {
			continue
		}
		resp[assignment.Lane.String()] = append(resp[assignment.Lane.String()], entry{
			Action:  action,
			Score:   assignment.NextMoveScore,
			Promise: assignment.Promise,
		})
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getBestAction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	best, err := s.uc.Plan.BestAction(r.Context(), userID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]*model.Action{"action": best})
}

func (s *Server) getNudges(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	nudges, err := s.uc.Nudge.EvaluateNudges(r.Context(), userID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string][]*model.StallNudge{"nudges": nudges})
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	settings, err := s.uc.Plan.GetSettings(r.Context(), userID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	if settings == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.New("settings not found"), http.StatusNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req struct {
		DefaultTier        string `json:"default_tier"`
		WorkEndTime        string `json:"work_end_time"`
		DefaultFreeMinutes int    `json:"default_free_minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	settings := &model.UserSettings{
		UserID:             userID,
		DefaultTier:        types.CapacityTier(req.DefaultTier),
		WorkEndTime:        req.WorkEndTime,
		DefaultFreeMinutes: req.DefaultFreeMinutes,
	}
	if err := s.uc.Plan.SaveSettings(r.Context(), settings); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}
