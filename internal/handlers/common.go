package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/image-selector/internal/catalog"
	"github.com/lehigh-university-libraries/image-selector/internal/claim"
	"github.com/lehigh-university-libraries/image-selector/internal/models"
	"github.com/lehigh-university-libraries/image-selector/internal/sheets"
	"github.com/lehigh-university-libraries/image-selector/internal/storage"
)

// Invalidator is the refresh hook the handler needs from the store
// client.
type Invalidator interface {
	Invalidate()
}

type Handler struct {
	sessionStore *storage.SessionStore
	reader       *catalog.Reader
	coordinator  *claim.Coordinator
	store        Invalidator
}

func New(reader *catalog.Reader, coordinator *claim.Coordinator, store Invalidator) *Handler {
	return &Handler{
		sessionStore: storage.New(),
		reader:       reader,
		coordinator:  coordinator,
		store:        store,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// writeClaimError maps the claim error taxonomy onto HTTP statuses. An
// AlreadyClaimed conflict is a normal outcome, not a server fault, so it
// comes back as structured JSON the UI can render.
func (h *Handler) writeClaimError(w http.ResponseWriter, err error) {
	var conflict *claim.AlreadyClaimedError
	switch {
	case errors.As(err, &conflict):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		if encErr := json.NewEncoder(w).Encode(map[string]string{
			"error":      "already_claimed",
			"image_id":   conflict.ImageID,
			"status":     conflict.Status.String(),
			"claimed_at": conflict.ClaimedAt,
		}); encErr != nil {
			slog.Error("Unable to encode conflict response", "err", encErr)
		}
	case errors.Is(err, claim.ErrNotFound):
		h.writeError(w, "Image not found, refresh and choose another: "+err.Error(), http.StatusNotFound)
	case errors.Is(err, claim.ErrInvalidReason):
		h.writeError(w, "Report reason must not be empty", http.StatusUnprocessableEntity)
	case errors.Is(err, sheets.ErrUnreachable):
		h.writeError(w, "Catalog store unreachable: "+err.Error(), http.StatusBadGateway)
	default:
		h.writeError(w, "Claim failed: "+err.Error(), http.StatusInternalServerError)
	}
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*models.SelectionSession, bool) {
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}
