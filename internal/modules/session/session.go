package session

import (
	"regexp"
	"strconv"
	"time"
)

// Storage is the persistence backend for the single dealer session. The
// browser original kept the token in localStorage; here the backend is
// injectable so the store can sit on a file, a keychain, or memory in tests.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// Keys carried over from the original client storage.
const (
	tokenKey     = "dirwin-dealer-token"
	timestampKey = "dirwin-dealer-token-tokenTimestamp"
)

// jwtShape is a syntactic check only: three dot-delimited base64url-ish
// segments. It is never proof of a valid, unexpired credential.
var jwtShape = regexp.MustCompile(`^[A-Za-z0-9-_]+\.[A-Za-z0-9-_]+\.[A-Za-z0-9-_.+/=]*$`)

// Store owns the one dealer session: a bearer token plus its issuance
// timestamp. Process-wide single slot, persisted across restarts.
type Store struct {
	storage Storage
	now     func() time.Time

	// onInvalidate runs after RemoveToken clears the slot. The SPA forced a
	// full page reload here; callers wire whatever state reset they need.
	onInvalidate func()
}

// NewStore creates a session store on the given backend.
func NewStore(storage Storage) *Store {
	return &Store{storage: storage, now: time.Now}
}

// OnInvalidate registers a hook invoked whenever the session is torn down.
func (s *Store) OnInvalidate(fn func()) {
	s.onInvalidate = fn
}

// SetToken persists the bearer token and records the issuance timestamp.
func (s *Store) SetToken(token string) error {
	if err := s.storage.Set(tokenKey, token); err != nil {
		return err
	}
	return s.storage.Set(timestampKey, strconv.FormatInt(s.now().UnixMilli(), 10))
}

// Token returns the stored bearer token, or "" when logged out.
func (s *Store) Token() string {
	token, _ := s.storage.Get(tokenKey)
	return token
}

// IssuedAt reports when the current token was stored. The timestamp is
// recorded metadata only; no TTL is enforced from it.
func (s *Store) IssuedAt() (time.Time, bool) {
	raw, ok := s.storage.Get(timestampKey)
	if !ok {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

// RemoveToken clears the session slot and fires the invalidation hook.
func (s *Store) RemoveToken() error {
	if err := s.storage.Delete(tokenKey); err != nil {
		return err
	}
	if err := s.storage.Delete(timestampKey); err != nil {
		return err
	}
	if s.onInvalidate != nil {
		s.onInvalidate()
	}
	return nil
}

// IsValid reports whether a token is present and shaped like a JWT.
func (s *Store) IsValid() bool {
	token := s.Token()
	if token == "" {
		return false
	}
	return jwtShape.MatchString(token)
}
