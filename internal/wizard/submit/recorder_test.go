// internal/wizard/submit/recorder_test.go
package submit

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "social-support-portal/internal/common/errors"
	"social-support-portal/internal/common/logger"
)

func TestRecorder_Submit_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("784-1990-1234567-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	recorder := NewRecorder(db, logger.NewTestLogger(t))
	status, err := recorder.Submit(context.Background(), createValidDraft())

	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecorder_Submit_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("784-1990-1234567-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	recorder := NewRecorder(db, logger.NewTestLogger(t))
	status, err := recorder.Submit(context.Background(), createValidDraft())

	assert.Equal(t, 409, status)
	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeDuplicateApplication, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecorder_Submit_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnError(assert.AnError)

	recorder := NewRecorder(db, logger.NewTestLogger(t))
	_, err = recorder.Submit(context.Background(), createValidDraft())

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeDatabaseInsertFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestRecorder_Submit_AuditFailureIsNonFatal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnError(assert.AnError)

	recorder := NewRecorder(db, logger.NewTestLogger(t))
	status, err := recorder.Submit(context.Background(), createValidDraft())

	require.NoError(t, err)
	assert.Equal(t, 200, status)
}
