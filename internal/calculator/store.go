package calculator

import "sync"

// SessionStore holds sessions by identifier for callers that cannot own a
// Session directly, such as HTTP handlers. Calls are serialized so each
// session still sees one caller at a time.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     []Option
}

// NewSessionStore returns an empty store. opts are applied to every session
// it creates.
func NewSessionStore(opts ...Option) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

// Do runs fn with the session named id, creating the session on first use.
func (st *SessionStore) Do(id string, fn func(*Session)) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		opts := append([]Option{}, st.opts...)
		s = NewSession(append(opts, WithSessionID(id))...)
		st.sessions[id] = s
	}
	fn(s)
}

// View runs fn with the session named id if it exists and reports whether
// it did. It never creates a session.
func (st *SessionStore) View(id string, fn func(*Session)) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return false
	}
	fn(s)
	return true
}

// Len returns the number of sessions held.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
