package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/image-selector/internal/claim"
	"github.com/lehigh-university-libraries/image-selector/internal/models"
)

func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		sessions := h.sessionStore.GetAll()
		sessionList := make([]*models.SelectionSession, 0, len(sessions))
		for _, session := range sessions {
			sessionList = append(sessionList, session)
		}
		h.writeJSON(w, sessionList)
	case "POST":
		claimCtx := models.NewClaimContext(
			r.URL.Query().Get("task_id"),
			r.URL.Query().Get("project_id"),
		)
		session := models.NewSelectionSession(uuid.NewString(), claimCtx)
		h.sessionStore.Set(session.ID, session)
		h.writeJSON(w, session)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	sessionID, action, _ := strings.Cut(rest, "/")

	session, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}

	switch {
	case r.Method == "GET" && action == "":
		h.writeJSON(w, session)
	case r.Method == "POST" && action == "transition":
		h.handleTransition(w, r, session)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleTransition drives the selection state machine. The confirm action
// runs the claim first and only advances the session when it succeeds; a
// lost race drops the session back to browsing so the worker can pick
// another image.
func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, session *models.SelectionSession) {
	var request struct {
		Action  string `json:"action"`
		ImageID string `json:"image_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.Action == models.ActionConfirm {
		if session.State != models.StatePreviewing {
			h.writeError(w, "Nothing previewed to confirm", http.StatusBadRequest)
			return
		}
		rec, err := h.coordinator.Claim(r.Context(), session.PreviewID, session.Context)
		if err != nil {
			var conflict *claim.AlreadyClaimedError
			if errors.As(err, &conflict) || errors.Is(err, claim.ErrNotFound) {
				session.State = models.StateBrowsing
				session.PreviewID = ""
				h.sessionStore.Set(session.ID, session)
			}
			h.writeClaimError(w, err)
			return
		}
		if err := session.Transition(models.ActionConfirm, ""); err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		session.ClaimedImageID = rec.ImageID
		session.ClaimedImageURL = rec.ImageURL
		h.sessionStore.Set(session.ID, session)
		h.writeJSON(w, session)
		return
	}

	if err := session.Transition(request.Action, request.ImageID); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.sessionStore.Set(session.ID, session)
	h.writeJSON(w, session)
}
