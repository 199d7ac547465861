package models

import (
	"fmt"
	"time"
)

// SessionState is the screen a selection session is on. The flow is a
// small state machine: Browsing -> Previewing -> {Confirmed, Browsing,
// ReportingBad}, driven by named user actions.
type SessionState string

const (
	StateBrowsing     SessionState = "browsing"
	StatePreviewing   SessionState = "previewing"
	StateConfirmed    SessionState = "confirmed"
	StateReportingBad SessionState = "reporting_bad"
)

// Session actions accepted by Transition.
const (
	ActionPreview      = "preview"
	ActionBack         = "back"
	ActionConfirm      = "confirm"
	ActionStartReport  = "start_report"
	ActionCancelReport = "cancel_report"
)

// SelectionSession tracks one worker's pass through the selection flow
type SelectionSession struct {
	ID        string       `json:"id"`
	State     SessionState `json:"state"`
	Context   ClaimContext `json:"context"`
	PreviewID string       `json:"preview_id,omitempty"`

	// Set once the session reaches Confirmed.
	ClaimedImageID  string `json:"claimed_image_id,omitempty"`
	ClaimedImageURL string `json:"claimed_image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewSelectionSession starts a session in the Browsing state.
func NewSelectionSession(id string, ctx ClaimContext) *SelectionSession {
	return &SelectionSession{
		ID:        id,
		State:     StateBrowsing,
		Context:   ctx,
		CreatedAt: time.Now(),
	}
}

// Transition applies a named user action to the session. Confirmed is
// terminal. The confirm action only moves the screen state; the claim
// itself is the caller's job and must succeed first.
func (s *SelectionSession) Transition(action, imageID string) error {
	switch action {
	case ActionPreview:
		if s.State != StateBrowsing && s.State != StatePreviewing {
			return fmt.Errorf("cannot preview from state %q", s.State)
		}
		if imageID == "" {
			return fmt.Errorf("preview requires an image_id")
		}
		s.State = StatePreviewing
		s.PreviewID = imageID
	case ActionBack:
		if s.State != StatePreviewing && s.State != StateReportingBad {
			return fmt.Errorf("cannot go back from state %q", s.State)
		}
		s.State = StateBrowsing
		s.PreviewID = ""
	case ActionConfirm:
		if s.State != StatePreviewing {
			return fmt.Errorf("cannot confirm from state %q", s.State)
		}
		s.State = StateConfirmed
	case ActionStartReport:
		if s.State != StatePreviewing {
			return fmt.Errorf("cannot report from state %q", s.State)
		}
		s.State = StateReportingBad
	case ActionCancelReport:
		if s.State != StateReportingBad {
			return fmt.Errorf("cannot cancel report from state %q", s.State)
		}
		s.State = StatePreviewing
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}
