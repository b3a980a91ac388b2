package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/victim-store/internal/domain"
	"github.com/msomdec/victim-store/internal/service"
)

// VictimHandler serves the JSON victim API.
type VictimHandler struct {
	victims *service.VictimService
}

// NewVictimHandler creates a new VictimHandler.
func NewVictimHandler(victims *service.VictimService) *VictimHandler {
	return &VictimHandler{victims: victims}
}

// HandleList returns every victim in insertion order.
// GET /api/victims
func (h *VictimHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	victims, err := h.victims.List(r.Context())
	if err != nil {
		slog.Error("list victims", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	writeJSON(w, http.StatusOK, toVictimDTOs(victims))
}

// HandleCreate stores a new victim.
// POST /api/victims
// Request:  {"name":"...","description":"..."}
// Response: 201 {"id":1,"name":"...","description":"..."}
func (h *VictimHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req VictimDTO
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	victim, err := h.victims.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		handleVictimError(w, "create victim", err)
		return
	}
	writeJSON(w, http.StatusCreated, toVictimDTO(victim))
}

// HandleGet returns one victim.
// GET /api/victims/{id}
func (h *VictimHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	victim, err := h.victims.Get(r.Context(), id)
	if err != nil {
		handleVictimError(w, "get victim", err)
		return
	}
	writeJSON(w, http.StatusOK, toVictimDTO(victim))
}

// HandleUpdate applies a partial update; keys absent from the body are left
// unchanged.
// PATCH /api/victims/{id}
func (h *VictimHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req victimPatchRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	victim, err := h.victims.Update(r.Context(), id, req.toPatch())
	if err != nil {
		handleVictimError(w, "update victim", err)
		return
	}
	writeJSON(w, http.StatusOK, toVictimDTO(victim))
}

// HandleReplace overwrites both fields. A field missing from the body is
// treated as empty and rejected like any other empty field.
// PUT /api/victims/{id}
func (h *VictimHandler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req VictimDTO
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	patch := domain.VictimPatch{Name: &req.Name, Description: &req.Description}
	victim, err := h.victims.Update(r.Context(), id, patch)
	if err != nil {
		handleVictimError(w, "replace victim", err)
		return
	}
	writeJSON(w, http.StatusOK, toVictimDTO(victim))
}

// HandleDelete removes a victim.
// DELETE /api/victims/{id}
func (h *VictimHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.victims.Delete(r.Context(), id); err != nil {
		handleVictimError(w, "delete victim", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleLookup resolves the id query parameter to a list of zero or one
// victims.
// GET /api/vulnerable/victim?id=
func (h *VictimHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	victims, err := h.victims.Lookup(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeValidationError(w, http.StatusBadRequest, err)
			return
		}
		slog.Error("lookup victim", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	writeJSON(w, http.StatusOK, toVictimDTOs(victims))
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid victim ID.")
		return 0, false
	}
	return id, true
}

func handleVictimError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Victim not found.")
	case errors.Is(err, domain.ErrInvalidInput):
		writeValidationError(w, http.StatusUnprocessableEntity, err)
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
