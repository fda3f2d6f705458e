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

func leadStatus(err error) int {
	if errors.Is(err, usecase.ErrLeadNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func (s *Server) listLeads(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	leads, err := s.uc.Lead.List(r.Context(), userID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string][]*model.Lead{"leads": leads})
}

func (s *Server) createLead(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req struct {
		Name             string `json:"name"`
		PreferredChannel string `json:"preferred_channel"`
		CadenceDays      int    `json:"cadence_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	lead := &model.Lead{
		UserID:           userID,
		Name:             req.Name,
		PreferredChannel: types.Channel(req.PreferredChannel),
		CadenceDays:      req.CadenceDays,
	}

	created, err := s.uc.Lead.Create(r.Context(), lead)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, leadStatus(err))
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) recordInteraction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	leadID := chi.URLParam(r, "leadID")

	var req struct {
		At string `json:"at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	var at time.Time
	if req.At != "" {
		parsed, err := time.Parse(time.RFC3339, req.At)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid interaction time, expected RFC3339"), http.StatusBadRequest)
			return
		}
		at = parsed
	}

	lead, err := s.uc.Lead.RecordInteraction(r.Context(), userID, leadID, at)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, leadStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, lead)
}
