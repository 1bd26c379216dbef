package services

import (
	"context"
	"errors"
	"testing"

	"github.com/eventnow/eventnow_backend/middleware"
	"github.com/eventnow/eventnow_backend/models"
)

var testSecret = []byte("test-secret")

func adminIdentity() *mockIdentity {
	return &mockIdentity{
		signInFunc: func(ctx context.Context, email, password string) (*Session, error) {
			if email == "admin@example.com" && password == "correct" {
				return &Session{UserID: "uid-admin", Email: email}, nil
			}
			return nil, models.ErrInvalidCredentials
		},
	}
}

func directoryWith(members ...string) *mockDirectory {
	set := make(map[string]bool, len(members))
	for _, m := range members {
		set[m] = true
	}
	return &mockDirectory{
		isAdminFunc: func(ctx context.Context, userID string) (bool, error) {
			return set[userID], nil
		},
	}
}

func TestLoginGrantsAdmin(t *testing.T) {
	identity := adminIdentity()
	guard := NewSessionGuard(identity, directoryWith("uid-admin"), NewMemoryTokenBlacklist(), testSecret)

	token, sess, err := guard.Login(context.Background(), "admin@example.com", "correct")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if sess.UserID != "uid-admin" || sess.Email != "admin@example.com" {
		t.Errorf("wrong session: %+v", sess)
	}

	claims, err := middleware.ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != "uid-admin" {
		t.Errorf("token carries userID %q", claims.UserID)
	}
	if len(identity.signOutCalls) != 0 {
		t.Errorf("granted login must not sign out, got %v", identity.signOutCalls)
	}
}

func TestLoginWrongPasswordAndWrongEmailLookIdentical(t *testing.T) {
	guard := NewSessionGuard(adminIdentity(), directoryWith("uid-admin"), NewMemoryTokenBlacklist(), testSecret)

	_, _, errWrongPass := guard.Login(context.Background(), "admin@example.com", "wrong")
	_, _, errWrongEmail := guard.Login(context.Background(), "nobody@example.com", "correct")

	if !errors.Is(errWrongPass, models.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v", errWrongPass)
	}
	if !errors.Is(errWrongEmail, models.ErrInvalidCredentials) {
		t.Errorf("wrong email: got %v", errWrongEmail)
	}
	if errWrongPass.Error() != errWrongEmail.Error() {
		t.Error("credential failures must be indistinguishable")
	}
}

func TestLoginNonAdminIsSignedOutAndDenied(t *testing.T) {
	identity := &mockIdentity{
		signInFunc: func(ctx context.Context, email, password string) (*Session, error) {
			return &Session{UserID: "uid-user", Email: email}, nil
		},
	}
	guard := NewSessionGuard(identity, directoryWith("uid-admin"), NewMemoryTokenBlacklist(), testSecret)

	token, _, err := guard.Login(context.Background(), "user@example.com", "correct")
	if !errors.Is(err, models.ErrAccessDenied) {
		t.Fatalf("got %v, want ErrAccessDenied", err)
	}
	if token != "" {
		t.Error("non-admin must never receive a token")
	}
	if len(identity.signOutCalls) != 1 || identity.signOutCalls[0] != "uid-user" {
		t.Errorf("expected exactly one sign-out for uid-user, got %v", identity.signOutCalls)
	}
}

func TestLoginDirectoryErrorSignsOutAndPropagates(t *testing.T) {
	identity := &mockIdentity{
		signInFunc: func(ctx context.Context, email, password string) (*Session, error) {
			return &Session{UserID: "uid-admin", Email: email}, nil
		},
	}
	directory := &mockDirectory{
		isAdminFunc: func(ctx context.Context, userID string) (bool, error) {
			return false, models.ErrUnavailable
		},
	}
	guard := NewSessionGuard(identity, directory, NewMemoryTokenBlacklist(), testSecret)

	_, _, err := guard.Login(context.Background(), "admin@example.com", "correct")
	if !errors.Is(err, models.ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
	if len(identity.signOutCalls) != 1 {
		t.Errorf("expected sign-out on directory failure, got %v", identity.signOutCalls)
	}
}

func TestCurrentAccessStates(t *testing.T) {
	identity := adminIdentity()
	directory := directoryWith("uid-admin")
	guard := NewSessionGuard(identity, directory, NewMemoryTokenBlacklist(), testSecret)

	if state := guard.CurrentAccess(context.Background(), ""); state.State != AccessPending {
		t.Errorf("no token: got %q, want pending", state.State)
	}
	if state := guard.CurrentAccess(context.Background(), "garbage"); state.State != AccessDenied {
		t.Errorf("garbage token: got %q, want denied", state.State)
	}

	token, _, err := guard.Login(context.Background(), "admin@example.com", "correct")
	if err != nil {
		t.Fatal(err)
	}
	state := guard.CurrentAccess(context.Background(), token)
	if state.State != AccessGranted || state.UserID != "uid-admin" {
		t.Errorf("valid token: got %+v, want granted for uid-admin", state)
	}
}

func TestCurrentAccessRevokesRemovedAdmin(t *testing.T) {
	identity := adminIdentity()
	blacklist := NewMemoryTokenBlacklist()
	isMember := true
	directory := &mockDirectory{
		isAdminFunc: func(ctx context.Context, userID string) (bool, error) {
			return isMember, nil
		},
	}
	guard := NewSessionGuard(identity, directory, blacklist, testSecret)

	token, _, err := guard.Login(context.Background(), "admin@example.com", "correct")
	if err != nil {
		t.Fatal(err)
	}

	// Directory entry removed after the token was issued.
	isMember = false

	state := guard.CurrentAccess(context.Background(), token)
	if state.State != AccessDenied {
		t.Fatalf("got %q, want denied after directory removal", state.State)
	}
	revoked, err := blacklist.IsRevoked(context.Background(), token)
	if err != nil || !revoked {
		t.Errorf("token should be revoked on the spot (revoked=%v err=%v)", revoked, err)
	}
	if len(identity.signOutCalls) == 0 {
		t.Error("removed admin should be signed out")
	}
}

func TestCurrentAccessFailsClosedOnDirectoryError(t *testing.T) {
	guard := NewSessionGuard(adminIdentity(), directoryWith("uid-admin"), NewMemoryTokenBlacklist(), testSecret)
	token, _, err := guard.Login(context.Background(), "admin@example.com", "correct")
	if err != nil {
		t.Fatal(err)
	}

	failing := &mockDirectory{
		isAdminFunc: func(ctx context.Context, userID string) (bool, error) {
			return false, models.ErrUnavailable
		},
	}
	guard2 := NewSessionGuard(adminIdentity(), failing, NewMemoryTokenBlacklist(), testSecret)

	if state := guard2.CurrentAccess(context.Background(), token); state.State != AccessDenied {
		t.Errorf("directory error: got %q, want denied", state.State)
	}
}

func TestLogoutRevokesTokenAndSignsOut(t *testing.T) {
	identity := adminIdentity()
	blacklist := NewMemoryTokenBlacklist()
	guard := NewSessionGuard(identity, directoryWith("uid-admin"), blacklist, testSecret)

	token, _, err := guard.Login(context.Background(), "admin@example.com", "correct")
	if err != nil {
		t.Fatal(err)
	}

	if err := guard.Logout(context.Background(), token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	revoked, err := blacklist.IsRevoked(context.Background(), token)
	if err != nil || !revoked {
		t.Errorf("token not revoked after logout (revoked=%v err=%v)", revoked, err)
	}
	if len(identity.signOutCalls) != 1 {
		t.Errorf("expected one sign-out, got %v", identity.signOutCalls)
	}
	if state := guard.CurrentAccess(context.Background(), token); state.State != AccessDenied {
		t.Errorf("revoked token: got %q, want denied", state.State)
	}
}

func TestLogoutUnparseableTokenIsANoOp(t *testing.T) {
	identity := adminIdentity()
	guard := NewSessionGuard(identity, directoryWith("uid-admin"), NewMemoryTokenBlacklist(), testSecret)

	if err := guard.Logout(context.Background(), "not-a-token"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(identity.signOutCalls) != 0 {
		t.Errorf("nothing to sign out, got %v", identity.signOutCalls)
	}
}

func TestSubscribeDeliversCurrentStateImmediately(t *testing.T) {
	guard := NewSessionGuard(adminIdentity(), directoryWith("uid-admin"), NewMemoryTokenBlacklist(), testSecret)

	var got []SessionState
	guard.Subscribe(func(s SessionState) { got = append(got, s) })

	if len(got) != 1 || got[0].State != AccessPending {
		t.Fatalf("expected immediate pending delivery, got %v", got)
	}
}

func TestSubscribeFiresOncePerTransition(t *testing.T) {
	guard := NewSessionGuard(adminIdentity(), directoryWith("uid-admin"), NewMemoryTokenBlacklist(), testSecret)

	var got []SessionState
	guard.Subscribe(func(s SessionState) { got = append(got, s) })

	token, _, err := guard.Login(context.Background(), "admin@example.com", "correct")
	if err != nil {
		t.Fatal(err)
	}
	// Re-evaluating the same token resolves to the same granted state and
	// must not notify again.
	guard.CurrentAccess(context.Background(), token)
	guard.CurrentAccess(context.Background(), token)

	want := []AccessState{AccessPending, AccessGranted}
	if len(got) != len(want) {
		t.Fatalf("got %d notifications %v, want %d", len(got), got, len(want))
	}
	for i, state := range want {
		if got[i].State != state {
			t.Errorf("notification %d: got %q, want %q", i, got[i].State, state)
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	guard := NewSessionGuard(adminIdentity(), directoryWith("uid-admin"), NewMemoryTokenBlacklist(), testSecret)

	var got []SessionState
	unsubscribe := guard.Subscribe(func(s SessionState) { got = append(got, s) })
	unsubscribe()

	if _, _, err := guard.Login(context.Background(), "admin@example.com", "correct"); err != nil {
		t.Fatal(err)
	}

	if len(got) != 1 {
		t.Errorf("unsubscribed listener still notified: %v", got)
	}
}
