package raw

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Manager keeps decode sessions open across multiple calls, keyed by an
// opaque id. It serves callers that want to open a file once and then fetch
// metadata or the embedded thumbnail repeatedly before releasing it, such as
// editors building a catalog view.
//
// For one-shot decoding prefer Loader, which never leaves a session open.
// A Manager must be closed when done so that live native handles are
// released.
type Manager struct {
	dec    Decoder
	nextID atomic.Uint64

	mu       sync.Mutex
	sessions map[uint64]Session
}

// NewManager creates a session manager backed by the given decoder.
func NewManager(dec Decoder) *Manager {
	return &Manager{
		dec:      dec,
		sessions: make(map[uint64]Session),
	}
}

// Load opens the RAW file at path and registers the resulting session,
// returning its id. The session stays open until Release or Close.
func (m *Manager) Load(path string) (uint64, error) {
	if strings.IndexByte(path, 0) >= 0 {
		return 0, errors.Wrapf(ErrInvalidPath, "path %q", path)
	}

	sess, err := m.dec.Open(path)
	if err != nil {
		return 0, errors.Wrapf(ErrOpenFailed, "open %q: %v", path, err)
	}

	id := m.nextID.Add(1)

	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()

	return id, nil
}

// Metadata returns the camera metadata of the session registered under id.
func (m *Manager) Metadata(id uint64) (Metadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return Metadata{}, errors.Wrapf(ErrUnknownImage, "id %d", id)
	}
	return sess.Metadata(), nil
}

// Thumbnail returns an owned copy of the embedded preview bytes of the
// session registered under id.
func (m *Manager) Thumbnail(id uint64) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownImage, "id %d", id)
	}
	return sess.Thumbnail()
}

// Release closes and forgets the session registered under id. Releasing an
// unknown id is a no-op, matching the idempotence of closing.
func (m *Manager) Release(id uint64) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		sess.Close()
	}
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close releases every live session. The manager must not be used afterward.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[uint64]Session)
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}
