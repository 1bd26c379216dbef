package services

import (
	"context"
	"sync"
	"time"

	"github.com/eventnow/eventnow_backend/middleware"
	"github.com/eventnow/eventnow_backend/models"
	"github.com/eventnow/eventnow_backend/repositories"
)

// AccessState is the console access verdict for the current session.
type AccessState string

const (
	// AccessPending: no resolved session; either nothing was presented
	// or an evaluation is still in flight.
	AccessPending AccessState = "pending"
	// AccessDenied: the identity checked out but the user is not in the
	// admin directory; the session has been signed out.
	AccessDenied AccessState = "denied"
	// AccessGranted: authenticated and directory-confirmed.
	AccessGranted AccessState = "granted"
)

// SessionState is delivered to subscribers on every transition and
// returned by CurrentAccess.
type SessionState struct {
	State  AccessState `json:"state"`
	UserID string      `json:"userId,omitempty"`
	Email  string      `json:"email,omitempty"`
}

// SessionGuard decides who may use the admin console. Login performs the
// identity check followed by the directory check; a valid identity that
// is missing from the directory is signed out immediately and never gets
// a token. Every later request re-runs the directory check (see
// middleware.AdminAuth and CurrentAccess), so revoking a directory entry
// locks the account out on its next load.
type SessionGuard struct {
	identity  IdentityProvider
	directory repositories.AdminDirectory
	blacklist TokenBlacklist
	jwtSecret []byte

	mu          sync.Mutex
	state       SessionState
	subscribers map[int]func(SessionState)
	nextSubID   int
}

func NewSessionGuard(identity IdentityProvider, directory repositories.AdminDirectory, blacklist TokenBlacklist, jwtSecret []byte) *SessionGuard {
	return &SessionGuard{
		identity:    identity,
		directory:   directory,
		blacklist:   blacklist,
		jwtSecret:   jwtSecret,
		state:       SessionState{State: AccessPending},
		subscribers: make(map[int]func(SessionState)),
	}
}

// Login authenticates the operator and checks directory membership. On
// success it returns a signed session token. Identity failures surface
// uniformly as models.ErrInvalidCredentials; a non-admin identity is
// signed out and reported as models.ErrAccessDenied. The request store
// is never touched here.
func (g *SessionGuard) Login(ctx context.Context, email, password string) (string, *Session, error) {
	g.transition(SessionState{State: AccessPending})

	sess, err := g.identity.SignInWithPassword(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	isAdmin, err := g.directory.IsAdmin(ctx, sess.UserID)
	if err != nil {
		_ = g.identity.SignOut(ctx, sess.UserID)
		return "", nil, err
	}
	if !isAdmin {
		_ = g.identity.SignOut(ctx, sess.UserID)
		g.transition(SessionState{State: AccessDenied, UserID: sess.UserID})
		return "", nil, models.ErrAccessDenied
	}

	token, err := middleware.GenerateJWT(g.jwtSecret, sess.UserID, sess.Email)
	if err != nil {
		_ = g.identity.SignOut(ctx, sess.UserID)
		return "", nil, err
	}

	g.transition(SessionState{State: AccessGranted, UserID: sess.UserID, Email: sess.Email})
	return token, sess, nil
}

// CurrentAccess re-evaluates a presented token. It runs on every session
// restore, not only at login, because a previously granted account may
// since have been removed from the directory; in that case the token is
// revoked on the spot.
func (g *SessionGuard) CurrentAccess(ctx context.Context, token string) SessionState {
	if token == "" {
		return SessionState{State: AccessPending}
	}

	if g.blacklist != nil {
		if revoked, err := g.blacklist.IsRevoked(ctx, token); err == nil && revoked {
			return SessionState{State: AccessDenied}
		}
	}

	claims, err := middleware.ParseToken(g.jwtSecret, token)
	if err != nil {
		return SessionState{State: AccessDenied}
	}

	isAdmin, err := g.directory.IsAdmin(ctx, claims.UserID)
	if err != nil {
		// Fail closed: without a directory answer nobody gets in.
		return SessionState{State: AccessDenied}
	}
	if !isAdmin {
		g.revokeToken(ctx, token, claims)
		_ = g.identity.SignOut(ctx, claims.UserID)
		denied := SessionState{State: AccessDenied, UserID: claims.UserID}
		g.transition(denied)
		return denied
	}

	granted := SessionState{State: AccessGranted, UserID: claims.UserID, Email: claims.Email}
	g.transition(granted)
	return granted
}

// Logout invalidates the token for its remaining lifetime and signs the
// identity session out.
func (g *SessionGuard) Logout(ctx context.Context, token string) error {
	claims, err := middleware.ParseToken(g.jwtSecret, token)
	if err != nil {
		// Nothing usable to revoke; treat as already signed out.
		g.transition(SessionState{State: AccessPending})
		return nil
	}

	g.revokeToken(ctx, token, claims)
	if err := g.identity.SignOut(ctx, claims.UserID); err != nil {
		return err
	}

	g.transition(SessionState{State: AccessPending})
	return nil
}

// Subscribe registers a listener for session-state transitions. The
// current state is delivered immediately; afterwards the listener fires
// exactly once per transition. The returned function unsubscribes.
func (g *SessionGuard) Subscribe(fn func(SessionState)) func() {
	g.mu.Lock()
	id := g.nextSubID
	g.nextSubID++
	g.subscribers[id] = fn
	current := g.state
	g.mu.Unlock()

	fn(current)

	return func() {
		g.mu.Lock()
		delete(g.subscribers, id)
		g.mu.Unlock()
	}
}

func (g *SessionGuard) revokeToken(ctx context.Context, token string, claims *middleware.JwtCustomClaims) {
	if g.blacklist == nil {
		return
	}
	ttl := middleware.SessionTTL
	if claims.ExpiresAt > 0 {
		ttl = time.Until(time.Unix(claims.ExpiresAt, 0))
	}
	_ = g.blacklist.Revoke(ctx, token, ttl)
}

// transition updates the guard state and notifies subscribers. Setting
// the same state again is a no-op, so listeners see each transition once.
func (g *SessionGuard) transition(next SessionState) {
	g.mu.Lock()
	if g.state == next {
		g.mu.Unlock()
		return
	}
	g.state = next
	listeners := make([]func(SessionState), 0, len(g.subscribers))
	for _, fn := range g.subscribers {
		listeners = append(listeners, fn)
	}
	g.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}
