package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/victim-store/internal/domain"
	"github.com/msomdec/victim-store/internal/service"
	"github.com/msomdec/victim-store/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

// PageHandler serves the HTML victim page and its datastar actions.
type PageHandler struct {
	victims *service.VictimService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(victims *service.VictimService) *PageHandler {
	return &PageHandler{victims: victims}
}

type victimFormSignals struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleIndex renders the victim list page.
func (h *PageHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	victims, err := h.victims.List(r.Context())
	if err != nil {
		slog.Error("list victims for page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.VictimsPage(user.DisplayName, victims).Render(r.Context(), w); err != nil {
		slog.Error("render victims page", "error", err)
	}
}

// HandleCreate appends the new row and resets the form, or patches the
// form's error list when validation fails.
func (h *PageHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var signals victimFormSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	victim, err := h.victims.Create(r.Context(), signals.Name, signals.Description)
	if err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			slog.Error("create victim from page", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		sse := datastar.NewSSE(w, r)
		sse.PatchElementTempl(view.FormErrors(verr.Fields))
		return
	}

	sse := datastar.NewSSE(w, r)
	sse.PatchElementTempl(
		view.VictimRow(*victim),
		datastar.WithSelectorID(view.VictimsBodyID),
		datastar.WithModeAppend(),
	)
	sse.PatchElementTempl(view.FormErrors(nil))
	sse.MarshalAndPatchSignals(victimFormSignals{})
}

// HandleDelete removes the victim and its row. A row whose victim is already
// gone is removed as well.
func (h *PageHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.victims.Delete(r.Context(), id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("delete victim from page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	sse.RemoveElementByID(view.VictimRowID(id))
}
