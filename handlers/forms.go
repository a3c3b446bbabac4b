// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/hydrogen-intake/cliparse"
	"github.com/danielhkuo/hydrogen-intake/export"
	"github.com/danielhkuo/hydrogen-intake/form"
	"github.com/danielhkuo/hydrogen-intake/middleware"
	"github.com/danielhkuo/hydrogen-intake/models"
	"github.com/danielhkuo/hydrogen-intake/session"
)

type FormHandler struct {
	manager *session.Manager
	cfg     cliparse.Config
}

func NewFormHandler(manager *session.Manager, cfg cliparse.Config) *FormHandler {
	return &FormHandler{manager: manager, cfg: cfg}
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, form.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, form.ErrInvalidEnumValue),
		errors.Is(err, form.ErrUnknownPreference),
		errors.Is(err, form.ErrUnknownCommand):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

func formResponse(id string, model models.FormModel, version uint64) models.FormResponse {
	units := make(map[string]string, len(model.StorageDevices))
	for _, d := range model.StorageDevices {
		units[d.ID] = d.QuantityUnit()
	}
	return models.FormResponse{
		SessionID:     id,
		Version:       version,
		Form:          model,
		QuantityUnits: units,
	}
}

// CreateForm handles POST /forms
func (h *FormHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Create()
	if err != nil {
		writeError(w, err)
		return
	}

	model, version := s.Snapshot()
	middleware.JSONResponse(w, http.StatusCreated, formResponse(s.ID(), model, version))
}

// GetForm handles GET /forms/{id}
func (h *FormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	model, version := s.Snapshot()
	middleware.JSONResponse(w, http.StatusOK, formResponse(s.ID(), model, version))
}

// ApplyCommand handles POST /forms/{id}/commands
func (h *FormHandler) ApplyCommand(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var env models.CommandEnvelope
	if err := middleware.ParseJSONBody(r, &env); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	cmd, err := form.DecodeCommand(env)
	if err != nil {
		writeError(w, err)
		return
	}

	model, version, err := s.Apply(cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, formResponse(s.ID(), model, version))
}

// ResetForm handles POST /forms/{id}/reset
func (h *FormHandler) ResetForm(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	model, version, err := s.Reset()
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, formResponse(s.ID(), model, version))
}

// GetMirror handles GET /forms/{id}/mirror
func (h *FormHandler) GetMirror(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.MirrorText()))
}

// Submit handles POST /forms/{id}/submit?format=csv|json
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.Submit(r.Context(), format)
	if err != nil {
		writeError(w, err)
		return
	}

	// A log failure does not cancel the download
	if res.Submission != nil {
		w.Header().Set("X-Submission-Id", res.Submission.ID)
	}
	w.Header().Set("Content-Type", res.Download.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Download.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Download.Body)
}

// CloseForm handles DELETE /forms/{id}
func (h *FormHandler) CloseForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.manager.Remove(id); err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionClosedResponse{
		SessionID: id,
		ClosedAt:  time.Now().UTC(),
	})
}

// ListSubmissions handles GET /submissions
func (h *FormHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.manager.Submissions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmissionsResponse{
		Submissions: subs,
		Count:       len(subs),
	})
}

// ListFormSubmissions handles GET /forms/{id}/submissions
func (h *FormHandler) ListFormSubmissions(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	subs, err := s.Submissions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmissionsResponse{
		Submissions: subs,
		Count:       len(subs),
	})
}
