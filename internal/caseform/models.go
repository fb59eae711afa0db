package caseform

import (
	"time"

	"case-collector/internal/common/validation"
	"case-collector/internal/models"
	"case-collector/pkg/catalog"
)

// Status is the submission state exposed to the rendering layer.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
)

// Phase labels for the first three monthly records.
var phaseLabels = []string{"ESTRUTURAÇÃO", "OTIMIZAÇÃO", "CONSOLIDAÇÃO"}

// PhaseLabel names the narrative phase of the record at index; records past
// the third have none.
func PhaseLabel(index int) string {
	if index < 0 || index >= len(phaseLabels) {
		return ""
	}
	return phaseLabels[index]
}

// Update is the result of a mutation: the new document and the paths whose
// values changed. Errors holds the current per-field messages; it is only
// refreshed by mutations once a submit has been attempted.
type Update struct {
	Document   models.CaseSubmission `json:"document"`
	Changed    []Path                `json:"changed"`
	Errors     map[string]string     `json:"errors"`
	Recomputed map[int]MonthMetrics  `json:"recomputed,omitempty"`
}

// MonthView is a monthly record as displayed: its label, phase and metrics.
type MonthView struct {
	Index   int                `json:"index"`
	Ordinal int                `json:"ordinal"`
	Title   string             `json:"title"`
	Phase   string             `json:"phase,omitempty"`
	Record  models.MonthRecord `json:"record"`
	Metrics MonthMetrics       `json:"metrics"`
	Display MetricsDisplay     `json:"display"`
}

// SubmitOutcome describes an accepted submission.
type SubmitOutcome struct {
	Status      string    `json:"status"`
	RequestID   string    `json:"requestId"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// SessionView is the whole editing session as served by GET /case.
type SessionView struct {
	Document models.CaseSubmission `json:"document"`
	Months   []MonthView           `json:"months"`
	Errors   map[string]string     `json:"errors"`
	Status   Status                `json:"status"`
}

type SetValueRequest struct {
	Path  string      `json:"path"`
	Value interface{} `json:"value"`
}

type ToggleTagRequest struct {
	Field    string `json:"field"`
	Value    string `json:"value"`
	Included bool   `json:"included"`
}

type RemoveMonthResponse struct {
	Update
	Removed bool `json:"removed"`
}

type ValidateResponse struct {
	validation.Result
	Messages map[string]string `json:"messages"`
}

type CatalogResponse struct {
	Catalog *catalog.Catalog `json:"catalog"`
}
