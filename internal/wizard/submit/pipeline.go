// internal/wizard/submit/pipeline.go

// Package submit turns a finished draft into a tracked application. The
// pipeline owns the order of effects: nothing is deleted until the upstream
// accept, so a failed submission never loses user input.
package submit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"social-support-portal/internal/common/errors"
	"social-support-portal/internal/common/logger"
	"social-support-portal/internal/models"
	"social-support-portal/internal/wizard/persist"
	"social-support-portal/internal/wizard/schema"
	"social-support-portal/internal/wizard/tracker"
)

// ApplicationType labels submissions from this portal.
const ApplicationType = "Financial Support"

// ConfirmationSender delivers a post-submission confirmation. Delivery is
// best effort; the pipeline logs failures and moves on.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, app models.Application, personal models.PersonalSection) error
}

type Pipeline struct {
	submitter Submitter
	store     persist.Store
	tracker   *tracker.Tracker
	notifier  ConfirmationSender
	logger    logger.Logger
}

func NewPipeline(submitter Submitter, store persist.Store, tr *tracker.Tracker, notifier ConfirmationSender, log logger.Logger) *Pipeline {
	return &Pipeline{
		submitter: submitter,
		store:     store,
		tracker:   tr,
		notifier:  notifier,
		logger:    log.WithFields(map[string]interface{}{"component": "submit-pipeline"}),
	}
}

// Submit validates the full draft, hands it to the submitter, and on accept
// clears the session draft and appends a tracked application. On any failure
// the draft snapshot stays in place for retry.
func (p *Pipeline) Submit(ctx context.Context, session string, draft *models.ApplicationDraft) (*models.Application, *schema.ValidationResult, error) {
	result := schema.ValidateAll(draft)
	if !result.IsValid {
		return nil, result, errors.NewApplicationValidationFailedError(
			fmt.Sprintf("%d validation errors", len(result.Errors)))
	}

	status, err := p.submitter.Submit(ctx, draft)
	if err != nil {
		p.logger.Error("submission rejected", map[string]interface{}{
			"status": status,
			"error":  err.Error(),
		})
		if stdErr, ok := err.(*errors.StandardError); ok && stdErr.Code == errors.ErrCodeDuplicateApplication {
			return nil, result, stdErr
		}
		return nil, result, errors.NewSubmissionFailedError(err)
	}
	if status != 200 {
		return nil, result, errors.NewSubmissionFailedError(fmt.Errorf("unexpected status %d", status))
	}

	now := time.Now().UTC()
	app := models.Application{
		ID:                  uuid.New().String(),
		Reference:           NewReference(now),
		Type:                ApplicationType,
		Status:              models.StatusSubmitted,
		SubmittedDate:       now.Format(time.RFC3339),
		LastUpdate:          now.Format(time.RFC3339),
		EstimatedCompletion: now.AddDate(0, 0, 14).Format("2006-01-02"),
		Progress:            25,
	}

	if err := p.tracker.Append(ctx, app); err != nil {
		// The upstream accepted; surface the app anyway and log the miss.
		p.logger.Warn("tracker append failed", map[string]interface{}{"error": err.Error()})
	}

	if err := p.store.Delete(ctx, persist.DraftKey(session)); err != nil {
		p.logger.Warn("draft cleanup failed", map[string]interface{}{
			"session": session,
			"error":   err.Error(),
		})
	}

	if p.notifier != nil {
		if err := p.notifier.SendConfirmation(ctx, app, draft.Personal); err != nil {
			p.logger.Warn("confirmation delivery failed", map[string]interface{}{"error": err.Error()})
		}
	}

	p.logger.Info("application submitted", map[string]interface{}{
		"reference": app.Reference,
		"session":   session,
	})
	return &app, result, nil
}
