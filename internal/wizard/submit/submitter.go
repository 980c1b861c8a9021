// internal/wizard/submit/submitter.go
package submit

import (
	"context"
	"time"

	"social-support-portal/internal/models"
)

// Submitter delivers a validated draft to the backing system and reports an
// HTTP-style status code.
type Submitter interface {
	Submit(ctx context.Context, draft *models.ApplicationDraft) (int, error)
}

// MockSubmitter simulates the upstream intake service: a fixed processing
// delay followed by an unconditional accept. Used when no database is
// configured.
type MockSubmitter struct {
	Delay time.Duration
}

func NewMockSubmitter() *MockSubmitter {
	return &MockSubmitter{Delay: 900 * time.Millisecond}
}

func (m *MockSubmitter) Submit(ctx context.Context, _ *models.ApplicationDraft) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-time.After(m.Delay):
		return 200, nil
	}
}
