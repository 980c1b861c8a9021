// internal/wizard/navigator/navigator.go

// Package navigator drives the multi-step form: one section at a time,
// forward movement gated by validation, backward movement unconditional.
package navigator

import (
	"social-support-portal/internal/common/logger"
	"social-support-portal/internal/models"
	"social-support-portal/internal/wizard/schema"
)

// Navigator holds the wizard position and the draft being edited.
type Navigator struct {
	draft  *models.ApplicationDraft
	index  int
	cached *schema.ValidationResult
	logger logger.Logger
}

func New(draft *models.ApplicationDraft, log logger.Logger) *Navigator {
	if draft == nil {
		draft = &models.ApplicationDraft{}
	}
	n := &Navigator{
		draft:  draft,
		logger: log.WithFields(map[string]interface{}{"component": "navigator"}),
	}
	n.Refresh()
	return n
}

// Draft returns the draft under edit.
func (n *Navigator) Draft() *models.ApplicationDraft {
	return n.draft
}

// Index returns the current step position (0-based).
func (n *Navigator) Index() int {
	return n.index
}

// Section returns the current step's section name.
func (n *Navigator) Section() string {
	return schema.Sections[n.index]
}

// AtLastStep reports whether the wizard sits on the final section.
func (n *Navigator) AtLastStep() bool {
	return n.index == len(schema.Sections)-1
}

// Refresh re-validates the current section and caches the result. Call it
// after any field change so CanProceed stays accurate.
func (n *Navigator) Refresh() *schema.ValidationResult {
	n.cached = schema.ValidateSection(n.Section(), n.draft)
	return n.cached
}

// CanProceed reports the cached validity of the current section.
func (n *Navigator) CanProceed() bool {
	return n.cached != nil && n.cached.IsValid
}

// Next validates the current section only. On success it advances, clamped
// to the last step; on failure it stays put and returns the field errors.
func (n *Navigator) Next() *schema.ValidationResult {
	result := n.Refresh()
	if !result.IsValid {
		n.logger.Debug("step blocked by validation", map[string]interface{}{
			"section":    n.Section(),
			"errorCount": len(result.Errors),
		})
		return result
	}

	if n.index < len(schema.Sections)-1 {
		n.index++
		n.Refresh()
	}
	return result
}

// Back moves one step toward the start. It never validates and never
// touches draft data; the floor is step zero.
func (n *Navigator) Back() {
	if n.index > 0 {
		n.index--
		n.Refresh()
	}
}

// Submit validates every section. It only succeeds from the last step; the
// caller hands the draft to the submission pipeline when the result is valid.
func (n *Navigator) Submit() *schema.ValidationResult {
	if !n.AtLastStep() {
		return &schema.ValidationResult{
			IsValid: false,
			Errors: []schema.ValidationError{{
				Field:   "wizard",
				Code:    "INVALID_VALUE",
				Message: "Submission is only available from the final step",
			}},
		}
	}
	return schema.ValidateAll(n.draft)
}
