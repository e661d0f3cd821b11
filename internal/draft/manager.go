// Package draft owns the autosave lifecycle of an in-progress workout edit.
// One Manager exists per edit session; the editor view starts it on mount
// and stops it on unmount.
package draft

import (
	"sync"
	"time"

	"github.com/sadopc/trackit/internal/model"
	"github.com/sadopc/trackit/internal/store"
)

// DefaultInterval is the autosave cadence.
const DefaultInterval = 3 * time.Second

// Snapshot is the editor's current form state plus its edit-mode tag.
// A nil Workout means the form is not mounted; that tick is a no-op.
type Snapshot struct {
	Workout *model.Workout
	IsEdit  bool
	EditID  string
}

// SnapshotFunc is called on every tick from the manager's goroutine; it
// must be safe for concurrent use with the editor's own mutations.
type SnapshotFunc func() Snapshot

// Manager periodically snapshots the editor state into the store's single
// draft record.
type Manager struct {
	store    *store.Store
	interval time.Duration
	snapshot SnapshotFunc

	mu      sync.Mutex
	stopCh  chan struct{}
	done    chan struct{}
	saveErr error
	running bool
}

// NewManager builds a manager ticking at DefaultInterval.
func NewManager(s *store.Store, snapshot SnapshotFunc) *Manager {
	return NewManagerInterval(s, snapshot, DefaultInterval)
}

// NewManagerInterval allows tests to shrink the cadence.
func NewManagerInterval(s *store.Store, snapshot SnapshotFunc, interval time.Duration) *Manager {
	return &Manager{store: s, interval: interval, snapshot: snapshot}
}

// Start launches the autosave ticker. Starting a running manager is a
// no-op.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.running = true
	m.stopCh = make(chan struct{})
	m.done = make(chan struct{})
	go m.loop(m.stopCh, m.done)
}

// Stop cancels the ticker and waits for the loop goroutine to exit, so
// no tick can write a draft after Stop returns. Stopping a stopped or
// never started manager is a no-op.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stopCh)
	done := m.done
	m.mu.Unlock()
	<-done
}

// Running reports whether the autosave ticker is active.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Manager) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.Save()
		}
	}
}

// Save persists the current snapshot immediately. Used by every tick and
// by the editor when it wants a draft on disk before the first interval
// elapses (entering edit mode for an existing workout). A storage failure
// is kept for Err; the next tick retries by overwriting anyway.
func (m *Manager) Save() {
	snap := m.snapshot()
	if snap.Workout == nil {
		return
	}
	err := m.store.SaveDraft(model.Draft{
		Workout: *snap.Workout.Clone(),
		IsEdit:  snap.IsEdit,
		EditID:  snap.EditID,
	})
	m.mu.Lock()
	m.saveErr = err
	m.mu.Unlock()
}

// Err reports the outcome of the most recent save attempt. A non-nil
// result means the draft on disk is stale; the UI shows the state in
// its footer until a later tick succeeds.
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveErr
}

// Clear stops autosaving and deletes the draft record, used on explicit
// save and on cancel.
func (m *Manager) Clear() error {
	m.Stop()
	return m.store.ClearDraft()
}
