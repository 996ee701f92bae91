package presence

import (
	"sort"
	"sync"
)

// Conn is a live transport handle that can receive frames.
type Conn interface {
	ID() string
	Write(msg []byte) error
}

// Registry maps user identities to their active connection. A user has at
// most one active connection; the latest registration wins.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]Conn
	byConn map[string]string
}

// New creates an empty Registry. One Registry is shared per process.
func New() *Registry {
	return &Registry{
		byUser: make(map[string]Conn),
		byConn: make(map[string]string),
	}
}

// Register binds userID to conn, replacing any previous connection for that
// user. It returns the replaced connection, if any.
func (r *Registry) Register(userID string, conn Conn) (Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The connection switches identity: release its old slot.
	if prevUser, ok := r.byConn[conn.ID()]; ok && prevUser != userID {
		if cur, ok := r.byUser[prevUser]; ok && cur.ID() == conn.ID() {
			delete(r.byUser, prevUser)
		}
	}

	prev, replaced := r.byUser[userID]
	if replaced && prev.ID() == conn.ID() {
		replaced = false
	}

	r.byUser[userID] = conn
	r.byConn[conn.ID()] = userID

	return prev, replaced
}

// Lookup returns the active connection for userID.
func (r *Registry) Lookup(userID string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.byUser[userID]
	return conn, ok
}

// UserOf returns the identity conn last registered, even if a newer
// connection has since taken over that identity.
func (r *Registry) UserOf(conn Conn) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.byConn[conn.ID()]
	return userID, ok
}

// Remove drops conn's registration. The user's presence is cleared only when
// conn is still the active connection for userID; the return value reports
// whether that happened.
func (r *Registry) Remove(userID string, conn Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byConn[conn.ID()]; ok && u == userID {
		delete(r.byConn, conn.ID())
	}

	cur, ok := r.byUser[userID]
	if !ok || cur.ID() != conn.ID() {
		return false
	}
	delete(r.byUser, userID)
	return true
}

// Online returns the ids of all present users, sorted.
func (r *Registry) Online() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.byUser))
	for id := range r.byUser {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of present users.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byUser)
}

// Send writes msg to userID's active connection. It reports false when the
// user is not present or the write fails.
func (r *Registry) Send(userID string, msg []byte) bool {
	conn, ok := r.Lookup(userID)
	if !ok {
		return false
	}
	return conn.Write(msg) == nil
}
