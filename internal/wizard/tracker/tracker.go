// internal/wizard/tracker/tracker.go

// Package tracker maintains the submitted-applications list and its status
// lifecycle. The whole list is stored as one JSON blob, rewritten on change.
package tracker

import (
	"context"
	"encoding/json"
	"time"

	"social-support-portal/internal/common/errors"
	"social-support-portal/internal/common/logger"
	"social-support-portal/internal/models"
	"social-support-portal/internal/wizard/persist"
)

// StorageKey is the blob holding the application list.
const StorageKey = "applications:v2"

// allowedTransitions is the status lifecycle. Terminal states have no exits.
var allowedTransitions = map[string][]string{
	models.StatusSubmitted:        {models.StatusInReview},
	models.StatusInReview:         {models.StatusPendingDocuments, models.StatusApproved, models.StatusRejected},
	models.StatusPendingDocuments: {models.StatusInReview},
}

// statusProgress maps each status to a tracking-screen progress value.
var statusProgress = map[string]int{
	models.StatusSubmitted:        25,
	models.StatusInReview:         50,
	models.StatusPendingDocuments: 60,
	models.StatusApproved:         100,
	models.StatusRejected:         100,
}

type Tracker struct {
	store  persist.Store
	logger logger.Logger
}

func New(store persist.Store, log logger.Logger) *Tracker {
	return &Tracker{
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "tracker"}),
	}
}

// List returns all tracked applications, newest first. A missing or corrupt
// blob yields an empty list, never an error on the read path.
func (t *Tracker) List(ctx context.Context) []models.Application {
	raw, err := t.store.Get(ctx, StorageKey)
	if err != nil {
		if err != persist.ErrNotFound {
			t.logger.Warn("application list read failed", map[string]interface{}{"error": err.Error()})
		}
		return []models.Application{}
	}

	var apps []models.Application
	if err := json.Unmarshal([]byte(raw), &apps); err != nil {
		t.logger.Warn("ignoring corrupt application list", map[string]interface{}{"error": err.Error()})
		return []models.Application{}
	}
	return apps
}

// Get returns a tracked application by ID or reference.
func (t *Tracker) Get(ctx context.Context, id string) (*models.Application, error) {
	for _, app := range t.List(ctx) {
		if app.ID == id || app.Reference == id {
			found := app
			return &found, nil
		}
	}
	return nil, errors.NewApplicationNotFoundError(id)
}

// Append adds a newly submitted application to the front of the list.
func (t *Tracker) Append(ctx context.Context, app models.Application) error {
	apps := append([]models.Application{app}, t.List(ctx)...)
	return t.write(ctx, apps)
}

// Transition moves an application to a new status, enforcing the lifecycle.
// On success LastUpdate and Progress are refreshed and notes replaced.
func (t *Tracker) Transition(ctx context.Context, id, newStatus, notes string) (*models.Application, error) {
	apps := t.List(ctx)

	for i := range apps {
		if apps[i].ID != id && apps[i].Reference != id {
			continue
		}

		if !transitionAllowed(apps[i].Status, newStatus) {
			return nil, errors.NewInvalidStatusTransitionError(apps[i].Status, newStatus)
		}

		apps[i].Status = newStatus
		apps[i].Progress = statusProgress[newStatus]
		apps[i].LastUpdate = time.Now().UTC().Format(time.RFC3339)
		if notes != "" {
			apps[i].Notes = notes
		}

		if err := t.write(ctx, apps); err != nil {
			return nil, err
		}

		t.logger.Info("application status changed", map[string]interface{}{
			"id":     apps[i].ID,
			"status": newStatus,
		})
		updated := apps[i]
		return &updated, nil
	}

	return nil, errors.NewApplicationNotFoundError(id)
}

func (t *Tracker) write(ctx context.Context, apps []models.Application) error {
	data, err := json.Marshal(apps)
	if err != nil {
		return errors.NewStorageWriteFailedError(StorageKey, err)
	}
	if err := t.store.Set(ctx, StorageKey, string(data)); err != nil {
		return errors.NewStorageWriteFailedError(StorageKey, err)
	}
	return nil
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
