package storage

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ringrun/internal/games/needle/sim"
)

// RunRecorder is the part of Store a Recorder writes to.
type RunRecorder interface {
	RecordRun(mode string, snap sim.Snapshot) (int64, error)
}

// Subscriber is anything that publishes run events.
type Subscriber interface {
	Subscribe(h sim.Handler)
}

// Recorder persists every finished run of a mode exactly once.
type Recorder struct {
	store  RunRecorder
	mode   string
	logger *log.Logger

	mu     sync.Mutex
	saved  int
	lastID int64
	err    error
}

// NewRecorder creates a recorder. A nil logger disables logging.
func NewRecorder(store RunRecorder, mode string, logger *log.Logger) *Recorder {
	return &Recorder{store: store, mode: mode, logger: logger}
}

// Attach subscribes the recorder to a run's events.
func (r *Recorder) Attach(src Subscriber) {
	src.Subscribe(r.Handle)
}

// Handle processes one event; only run ends are recorded.
func (r *Recorder) Handle(e sim.Event) {
	if e.Kind != sim.EventRunEnded || e.Snapshot == nil {
		return
	}
	snap := *e.Snapshot

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.store.RecordRun(r.mode, snap)
	if err != nil {
		r.err = err
		if r.logger != nil {
			r.logger.Error("Failed to record run", "mode", r.mode, "error", err)
		}
		return
	}
	r.saved++
	r.lastID = id

	if r.logger == nil {
		return
	}
	r.logger.Info("Run recorded", "mode", r.mode, "id", id, "score", snap.Score, "streak", snap.BestStreak)
	if snap.NewHighScore {
		r.logger.Info("New high score", "mode", r.mode, "score", snap.Score)
	}
	if snap.NewBestStreak {
		r.logger.Info("New best streak", "mode", r.mode, "streak", snap.BestStreak)
	}
}

// Saved returns how many runs were recorded.
func (r *Recorder) Saved() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved
}

// LastID returns the ID of the most recently recorded run.
func (r *Recorder) LastID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastID
}

// Err returns the last recording error, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
