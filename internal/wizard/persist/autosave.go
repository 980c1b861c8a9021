// internal/wizard/persist/autosave.go
package persist

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"social-support-portal/internal/common/logger"
)

// DefaultInterval matches the original autosave cadence.
const DefaultInterval = time.Second

// Autosaver periodically snapshots opaque state into a Store. It knows
// nothing about the draft shape: the owner supplies a snapshot callback
// returning the current value and a restore callback applied on hydrate.
type Autosaver struct {
	store    Store
	key      string
	interval time.Duration
	snapshot func() interface{}
	restore  func(raw json.RawMessage)
	logger   logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

func NewAutosaver(store Store, key string, interval time.Duration, snapshot func() interface{}, restore func(raw json.RawMessage), log logger.Logger) *Autosaver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Autosaver{
		store:    store,
		key:      key,
		interval: interval,
		snapshot: snapshot,
		restore:  restore,
		logger:   log.WithFields(map[string]interface{}{"component": "autosaver", "key": key}),
	}
}

// Run hydrates once from the store, then writes a snapshot every interval
// until Stop is called. Store errors never propagate: losing an autosave
// tick must not break the form.
func (a *Autosaver) Run(ctx context.Context) {
	a.hydrate(ctx)

	ctx, cancel := context.WithCancel(ctx)
	a.mu.Lock()
	a.cancel = cancel
	a.stopped = make(chan struct{})
	stopped := a.stopped
	a.mu.Unlock()

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.save(ctx)
			}
		}
	}()
}

// Stop cancels the ticker and waits for the loop to exit. No writes happen
// after Stop returns.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	cancel := a.cancel
	stopped := a.stopped
	a.cancel = nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
		<-stopped
	}
}

// Flush writes one snapshot immediately.
func (a *Autosaver) Flush(ctx context.Context) {
	a.save(ctx)
}

func (a *Autosaver) hydrate(ctx context.Context) {
	raw, err := a.store.Get(ctx, a.key)
	if err != nil {
		if err != ErrNotFound {
			a.logger.Warn("hydrate read failed", map[string]interface{}{"error": err.Error()})
		}
		return
	}

	// Corrupt snapshots are ignored; the user starts fresh.
	if !json.Valid([]byte(raw)) {
		a.logger.Warn("ignoring corrupt snapshot", nil)
		return
	}

	if a.restore != nil {
		a.restore(json.RawMessage(raw))
	}
}

func (a *Autosaver) save(ctx context.Context) {
	if a.snapshot == nil {
		return
	}

	data, err := json.Marshal(a.snapshot())
	if err != nil {
		a.logger.Warn("snapshot encode failed", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := a.store.Set(ctx, a.key, string(data)); err != nil {
		a.logger.Warn("snapshot write failed", map[string]interface{}{"error": err.Error()})
	}
}
