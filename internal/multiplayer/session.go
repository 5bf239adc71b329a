package multiplayer

import "sync"

// SessionHandle is one connected player, whatever the transport.
type SessionHandle interface {
	ID() SessionID
	Name() string

	// Send queues evt for the player. It must not block.
	Send(evt SessionEvent)

	// Done is closed when the player disconnects.
	Done() <-chan struct{}
}

const defaultEventBuffer = 64

// ChannelSession is a SessionHandle backed by a buffered channel. SSH
// sessions and websocket clients drain Events and render or encode what
// they read.
type ChannelSession struct {
	id     SessionID
	name   string
	events chan SessionEvent
	done   chan struct{}
	once   sync.Once
}

// NewChannelSession creates a session that buffers up to size events.
func NewChannelSession(id SessionID, name string, size int) *ChannelSession {
	if size < 1 {
		size = defaultEventBuffer
	}
	return &ChannelSession{
		id:     id,
		name:   name,
		events: make(chan SessionEvent, size),
		done:   make(chan struct{}),
	}
}

func (s *ChannelSession) ID() SessionID { return s.id }

func (s *ChannelSession) Name() string { return s.name }

// Send never blocks. When the buffer is full the oldest event is discarded;
// snapshots carry the whole board, so only the latest one matters.
func (s *ChannelSession) Send(evt SessionEvent) {
	select {
	case <-s.done:
		return
	default:
	}

	for range 2 {
		select {
		case s.events <- evt:
			return
		default:
		}
		select {
		case <-s.events:
		default:
		}
	}
}

// Events returns the queue of pending events.
func (s *ChannelSession) Events() <-chan SessionEvent { return s.events }

func (s *ChannelSession) Done() <-chan struct{} { return s.done }

// Close ends the session. It may be called more than once.
func (s *ChannelSession) Close() {
	s.once.Do(func() { close(s.done) })
}

// SessionRegistry indexes the sessions connected to this server, across
// SSH and web. It is safe for concurrent use.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionHandle
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[SessionID]SessionHandle)}
}

func (r *SessionRegistry) Register(s SessionHandle) {
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
}

func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Get looks up a session by ID.
func (r *SessionRegistry) Get(id SessionID) (SessionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of connected sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
