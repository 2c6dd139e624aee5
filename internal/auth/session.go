package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"techsklep/mobile/internal/domain"
	"techsklep/mobile/internal/storage"
)

// sessionKey is the device-storage key the sealed session lives under.
const sessionKey = "session"

// Backend is the slice of the REST client the session manager needs.
type Backend interface {
	Login(ctx context.Context, email string, password string) (*domain.LoginResponse, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, req domain.RegisterRequest) error
}

type persistedSession struct {
	User        domain.User `json:"user"`
	BasketID    int         `json:"basketId"`
	AccessToken string      `json:"accessToken,omitempty"`
}

// Session holds auth-scoped client state: the signed-in user, their basket
// id, and the access-token lifetime. Logout resets this state only; the cart
// snapshot is device-scoped and deliberately survives.
type Session struct {
	mu          sync.Mutex
	backend     Backend
	vault       *Vault
	loggedIn    bool
	user        domain.User
	basketID    int
	accessToken string
	tokenExpiry time.Time
}

// NewSession builds a signed-out session. vault may be nil, in which case
// the session is not persisted across restarts.
func NewSession(backend Backend, vault *Vault) *Session {
	return &Session{backend: backend, vault: vault}
}

// Restore rehydrates a persisted session. Anything wrong with the sealed
// payload leaves the session signed out; it never fails hard.
func (s *Session) Restore(ctx context.Context) {
	if s.vault == nil {
		return
	}
	data, err := s.vault.Open(ctx, sessionKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[auth] restoring session: %v", err)
		}
		return
	}
	var saved persistedSession
	if err := json.Unmarshal(data, &saved); err != nil {
		log.Printf("[auth] corrupt session payload, staying signed out: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = true
	s.user = saved.User
	s.basketID = saved.BasketID
	s.accessToken = saved.AccessToken
	s.tokenExpiry = tokenExpiry(saved.AccessToken)
}

// Login authenticates against the backend and records the session.
func (s *Session) Login(ctx context.Context, email string, password string) error {
	resp, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.loggedIn = true
	s.user = resp.User
	s.basketID = resp.BasketID
	s.accessToken = resp.AccessToken
	s.tokenExpiry = tokenExpiry(resp.AccessToken)
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// Register creates an account. The caller logs in separately afterwards.
func (s *Session) Register(ctx context.Context, req domain.RegisterRequest) error {
	return s.backend.Register(ctx, req)
}

// Logout resets auth-scoped state and drops the persisted session. The
// backend call may fail (e.g. offline); local state resets regardless and
// the error is returned for the UI to surface.
func (s *Session) Logout(ctx context.Context) error {
	err := s.backend.Logout(ctx)

	s.mu.Lock()
	s.loggedIn = false
	s.user = domain.User{}
	s.basketID = 0
	s.accessToken = ""
	s.tokenExpiry = time.Time{}
	s.mu.Unlock()

	if s.vault != nil {
		if derr := s.vault.Delete(ctx, sessionKey); derr != nil {
			log.Printf("[auth] dropping persisted session: %v", derr)
		}
	}
	return err
}

// UpdateBasketID records a new server-side basket id (the backend assigns a
// fresh one after checkout).
func (s *Session) UpdateBasketID(ctx context.Context, basketID int) {
	s.mu.Lock()
	s.basketID = basketID
	s.mu.Unlock()
	s.persist(ctx)
}

func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

func (s *Session) User() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.loggedIn
}

func (s *Session) BasketID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basketID
}

// TokenExpired reports whether the access token has a known expiry that has
// passed, meaning the user should re-authenticate. Tokenless sessions never
// expire client-side.
func (s *Session) TokenExpired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.tokenExpiry.IsZero() && now.After(s.tokenExpiry)
}

func (s *Session) persist(ctx context.Context) {
	if s.vault == nil {
		return
	}
	s.mu.Lock()
	saved := persistedSession{User: s.user, BasketID: s.basketID, AccessToken: s.accessToken}
	s.mu.Unlock()

	payload, err := json.Marshal(saved)
	if err != nil {
		log.Printf("[auth] encoding session: %v", err)
		return
	}
	if err := s.vault.Seal(ctx, sessionKey, payload); err != nil {
		log.Printf("[auth] saving session: %v", err)
	}
}

// tokenExpiry reads the exp claim without verifying the signature. The
// client is not the audience of the token; it only needs the lifetime to
// know when to prompt for a fresh login.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwtlib.RegisteredClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(token, &claims); err != nil {
		log.Printf("[auth] unreadable access token: %v", err)
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
