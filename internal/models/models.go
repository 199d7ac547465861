package models

import "encoding/json"

// Status is the lifecycle state of a catalog record. The spreadsheet
// encodes it loosely in the in_use column (blank/false, true-like, or a
// "BAD" sentinel); only the sheets adapter deals with those encodings.
type Status int

const (
	StatusAvailable Status = iota
	StatusClaimed
	StatusBad
)

func (s Status) String() string {
	switch s {
	case StatusClaimed:
		return "claimed"
	case StatusBad:
		return "bad"
	default:
		return "available"
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v {
	case "claimed":
		*s = StatusClaimed
	case "bad":
		*s = StatusBad
	default:
		*s = StatusAvailable
	}
	return nil
}

// ImageRecord represents one row of the image catalog
type ImageRecord struct {
	ImageID      string   `json:"image_id"`
	ImageURL     string   `json:"image_url"`
	Domains      []string `json:"domains"`
	ImageTypes   []string `json:"image_types"`
	Status       Status   `json:"status"`
	ClaimedAt    string   `json:"claimed_at,omitempty"`
	TaskID       string   `json:"task_id,omitempty"`
	ProjectID    string   `json:"project_id,omitempty"`
	ReportReason string   `json:"report_reason,omitempty"`

	// Row is the 1-based spreadsheet row this record was read from.
	// Only valid against the snapshot it was fetched with.
	Row int `json:"-"`
}

// Available reports whether the record can still be claimed.
func (r *ImageRecord) Available() bool {
	return r.Status == StatusAvailable
}

// UnknownContextValue is substituted for task/project identifiers the
// invoking URL did not carry.
const UnknownContextValue = "UNKNOWN"

// ClaimContext identifies the task and project a claim is made for
type ClaimContext struct {
	TaskID    string `json:"task_id"`
	ProjectID string `json:"project_id"`
}

// NewClaimContext fills in the UNKNOWN defaults for missing parameters.
func NewClaimContext(taskID, projectID string) ClaimContext {
	if taskID == "" {
		taskID = UnknownContextValue
	}
	if projectID == "" {
		projectID = UnknownContextValue
	}
	return ClaimContext{TaskID: taskID, ProjectID: projectID}
}
