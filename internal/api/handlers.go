package api

import (
	"net/http"

	"github.com/julianstephens/lifegrid/internal/categories"
	"github.com/julianstephens/lifegrid/internal/constants"
	"github.com/julianstephens/lifegrid/internal/errors"
	"github.com/julianstephens/lifegrid/internal/models"
	"github.com/julianstephens/lifegrid/internal/service"
)

type statusResponse struct {
	Status string `json:"status"`
	App    string `json:"app,omitempty"`
}

type dayLogRequest struct {
	Hours []*int `json:"hours"`
}

type summaryRequest struct {
	Highlight  *string `json:"highlight"`
	Reflection *string `json:"reflection"`
}

type dreamRequest struct {
	Date        models.Date `json:"date"`
	DreamState  *int        `json:"dream_state"`
	Description *string     `json:"description"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok", App: constants.AppDisplayName})
}

// handleCategories handles GET /categories - code to label map
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categories.Labels())
}

func (s *Server) handleGetDayLog(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	log, err := s.svc.GetDayLog(r.Context(), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

// handlePutDayLog handles PUT /day-log/{date} - full replacement of the grid
func (s *Server) handlePutDayLog(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dayLogRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	log, err := s.svc.SaveDayLog(r.Context(), date, req.Hours)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (s *Server) handleGetDailySummary(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	summary, err := s.svc.GetDailySummary(r.Context(), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handlePutDailySummary(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req summaryRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	summary, err := s.svc.SaveDailySummary(r.Context(), date, req.Highlight, req.Reflection)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleGetDream(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	dream, err := s.svc.GetDream(r.Context(), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dream)
}

// handlePostDream handles POST /dreams - dream_state defaults to 0
func (s *Server) handlePostDream(w http.ResponseWriter, r *http.Request) {
	var req dreamRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Date.IsZero() {
		writeError(w, r, errors.Validation("date", "date is required"))
		return
	}
	state := int(models.DreamNone)
	if req.DreamState != nil {
		state = *req.DreamState
	}
	dream, err := s.svc.SaveDream(r.Context(), req.Date, state, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dream)
}

func (s *Server) handleDeleteDream(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	status, err := s.svc.ResetDream(r.Context(), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: string(status)})
}

// handleListEvents handles GET /events?start_date=&end_date=
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "start_date")
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := queryDate(r, "end_date")
	if err != nil {
		writeError(w, r, err)
		return
	}
	events, err := s.svc.ListEvents(r.Context(), start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handlePostEvent(w http.ResponseWriter, r *http.Request) {
	var req service.EventInput
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	event, err := s.svc.CreateEvent(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteEvent(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}

func (s *Server) handleWeeklyDashboard(w http.ResponseWriter, r *http.Request) {
	weekly, err := s.svc.WeeklyDashboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, weekly)
}
