package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"thirdcoast.systems/clipstudio/pkg/ffmpeg"
	"thirdcoast.systems/clipstudio/pkg/utils/geometry"
)

// ErrSessionNotFound is returned when no session matches the requested ID.
var ErrSessionNotFound = errors.New("session not found")

// DefaultIdleTimeout is how long a session may sit untouched before the
// sweeper evicts it.
const DefaultIdleTimeout = 2 * time.Hour

// Prober extracts source video metadata. The default implementation shells
// out to ffprobe; tests substitute a stub.
type Prober func(ctx context.Context, path string) (*ffmpeg.ProbeResult, error)

// Manager owns the in-memory session table.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	probe  Prober
	logger *slog.Logger
}

// NewManager creates a Manager probing sources with ffprobe.
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		probe:    ffmpeg.Probe,
		logger:   logger,
	}
}

// SetProber overrides the metadata prober.
func (m *Manager) SetProber(p Prober) {
	m.probe = p
}

// Create probes the source video and opens a session for it. canvas is the
// extension's reported player viewport size.
func (m *Manager) Create(ctx context.Context, sourcePath string, canvas geometry.Size) (*Session, error) {
	info, err := m.probe(ctx, sourcePath)
	if err != nil {
		return nil, fmt.Errorf("probe source: %w", err)
	}
	if !info.HasVideo {
		return nil, fmt.Errorf("source has no video stream: %s", sourcePath)
	}
	if !canvas.Valid() {
		// No viewport reported; edit against the intrinsic frame.
		canvas = geometry.Size{Width: float64(info.Width), Height: float64(info.Height)}
	}

	s := newSession(uuid.NewString(), sourcePath,
		geometry.Size{Width: float64(info.Width), Height: float64(info.Height)},
		info.Duration, info.FPS, canvas)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("session created",
		"session_id", s.ID,
		"source", sourcePath,
		"duration", info.Duration,
		"video", fmt.Sprintf("%dx%d", info.Width, info.Height),
	)
	return s, nil
}

// Get returns the session with the given ID, or ErrSessionNotFound.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete closes a session. Missing IDs return ErrSessionNotFound.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.logger.Info("session closed", "session_id", id)
	return nil
}

// List returns all open sessions.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartSweeper evicts sessions idle longer than maxIdle until ctx ends.
func (m *Manager) StartSweeper(ctx context.Context, maxIdle time.Duration) {
	if maxIdle <= 0 {
		maxIdle = DefaultIdleTimeout
	}
	go func() {
		ticker := time.NewTicker(maxIdle / 4)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sweep(maxIdle)
			}
		}
	}()
}

func (m *Manager) sweep(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			delete(m.sessions, id)
			m.logger.Info("session evicted after idle timeout", "session_id", id)
		}
	}
}
