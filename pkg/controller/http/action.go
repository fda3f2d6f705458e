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

func actionStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrActionNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrActionClosed), errors.Is(err, usecase.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) listActions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var (
		actions []*model.Action
		err     error
	)
	if r.URL.Query().Get("open") == "true" {
		actions, err = s.uc.Action.ListOpen(r.Context(), userID)
	} else {
		actions, err = s.uc.Action.List(r.Context(), userID)
	}
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string][]*model.Action{"actions": actions})
}

func (s *Server) createAction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req struct {
		LeadID           string `json:"lead_id"`
		Type             string `json:"type"`
		State            string `json:"state"`
		Title            string `json:"title"`
		Note             string `json:"note"`
		DueDate          string `json:"due_date"`
		PromisedDueAt    string `json:"promised_due_at"`
		EstimatedMinutes int    `json:"estimated_minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	action := &model.Action{
		UserID:           userID,
		LeadID:           req.LeadID,
		Type:             types.ActionType(req.Type),
		State:            types.ActionState(req.State),
		Title:            req.Title,
		Note:             req.Note,
		EstimatedMinutes: req.EstimatedMinutes,
	}

	if req.DueDate != "" {
		due, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid due date, expected YYYY-MM-DD"), http.StatusBadRequest)
			return
		}
		action.DueDate = due
	}
	if req.PromisedDueAt != "" {
		promised, err := time.Parse(time.RFC3339, req.PromisedDueAt)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid promised due time, expected RFC3339"), http.StatusBadRequest)
			return
		}
		action.PromisedDueAt = &promised
	}

	created, err := s.uc.Action.Create(r.Context(), action)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, actionStatus(err))
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) completeAction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	actionID := chi.URLParam(r, "actionID")

	action, err := s.uc.Action.Complete(r.Context(), userID, actionID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, actionStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, action)
}

func (s *Server) transitionAction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	actionID := chi.URLParam(r, "actionID")

	var req struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	state, err := types.ParseActionState(req.State)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid state"), http.StatusBadRequest)
		return
	}

	action, err := s.uc.Action.Transition(r.Context(), userID, actionID, state)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, actionStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, action)
}

func (s *Server) snoozeAction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	actionID := chi.URLParam(r, "actionID")

	var req struct {
		Until string `json:"until"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	until, err := time.Parse(dateLayout, req.Until)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid snooze date, expected YYYY-MM-DD"), http.StatusBadRequest)
		return
	}

	action, err := s.uc.Action.Snooze(r.Context(), userID, actionID, until)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, actionStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, action)
}

func (s *Server) wakeAction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	actionID := chi.URLParam(r, "actionID")

	action, err := s.uc.Action.Wake(r.Context(), userID, actionID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, actionStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, action)
}

func (s *Server) promiseAction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	actionID := chi.URLParam(r, "actionID")

	var req struct {
		Deadline string `json:"deadline"`
		At       string `json:"at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	var at *time.Time
	if req.At != "" {
		parsed, err := time.Parse(time.RFC3339, req.At)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid promise time, expected RFC3339"), http.StatusBadRequest)
			return
		}
		at = &parsed
	}

	action, err := s.uc.Action.SetPromise(r.Context(), userID, actionID, req.Deadline, at)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, actionStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, action)
}
