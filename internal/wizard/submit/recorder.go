// internal/wizard/submit/recorder.go
package submit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"social-support-portal/internal/common/errors"
	"social-support-portal/internal/common/logger"
	"social-support-portal/internal/models"
)

// Recorder persists accepted applications in PostgreSQL. It implements
// Submitter so the pipeline can swap it in for the mock when a database is
// configured.
type Recorder struct {
	db     *sql.DB
	logger logger.Logger
}

func NewRecorder(db *sql.DB, log logger.Logger) *Recorder {
	return &Recorder{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "recorder"}),
	}
}

func (r *Recorder) Submit(ctx context.Context, draft *models.ApplicationDraft) (int, error) {
	// One open application per national ID.
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM applications
			WHERE national_id = $1 AND status NOT IN ('approved', 'rejected')
		)`, draft.Personal.NationalID).Scan(&exists)
	if err != nil {
		return 0, errors.NewDatabaseInsertFailedError(err)
	}
	if exists {
		return 409, errors.NewDuplicateApplicationError(draft.Personal.NationalID)
	}

	appID := uuid.New().String()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	draftJSON, err := json.Marshal(draft)
	if err != nil {
		return 0, errors.NewDatabaseInsertFailedError(err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO applications (
			id, national_id, applicant_name, application_data,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		appID,
		draft.Personal.NationalID,
		draft.Personal.Name,
		draftJSON,
		models.StatusSubmitted,
		createdAt,
	)
	if err != nil {
		return 0, errors.NewDatabaseInsertFailedError(err)
	}

	// Audit entry is non-critical; log and continue on failure.
	auditDetails, err := json.Marshal(map[string]interface{}{
		"nationalId": draft.Personal.NationalID,
		"city":       draft.Personal.City,
	})
	if err != nil {
		auditDetails = []byte("{}")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"application_submitted",
		"application",
		appID,
		auditDetails,
		createdAt,
	)
	if err != nil {
		r.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":         err.Error(),
			"applicationId": appID,
		})
	}

	r.logger.Info("application record created", map[string]interface{}{
		"applicationId": appID,
	})
	return 200, nil
}
