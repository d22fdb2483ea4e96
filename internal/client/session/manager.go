// Package session keeps the signed-in user's token and profile.
//
// Session storage lives in memory for the life of the process. With
// remember-me the same token and profile are sealed with a key derived from
// the configured session key and written to local storage with an explicit
// expiry, so a later run can Restore them. Logout clears both but keeps the
// dark-mode preference.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/caseadmin/internal/client/models"
	"github.com/dmitrijs2005/caseadmin/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/caseadmin/internal/common"
	"github.com/dmitrijs2005/caseadmin/internal/cryptox"
	"github.com/dmitrijs2005/caseadmin/internal/logging"
)

// Local storage keys.
const (
	KeySession  = "session"
	KeySalt     = "session_salt"
	KeyDarkMode = "dark_mode"
)

type remembered struct {
	Token string         `json:"token"`
	User  models.AppUser `json:"user"`
}

type Manager struct {
	mu       sync.RWMutex
	token    string
	user     *models.AppUser
	claims   Claims
	darkMode bool

	local       localstore.Repository
	passphrase  []byte
	sealKey     []byte
	rememberFor time.Duration

	log logging.Logger
	now func() time.Time
}

// NewManager builds a manager. local may be nil, and an empty sessionKey
// disables remember-me persistence.
func NewManager(local localstore.Repository, sessionKey string, rememberFor time.Duration, log logging.Logger) *Manager {
	if log == nil {
		log = logging.NewNop()
	}
	return &Manager{
		local:       local,
		passphrase:  []byte(sessionKey),
		rememberFor: rememberFor,
		log:         log,
		now:         time.Now,
	}
}

// Token implements api.TokenSource. An expired token reads as empty.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.claims.Expired(m.now()) {
		return ""
	}
	return m.token
}

// User returns the signed-in profile.
func (m *Manager) User() (models.AppUser, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return models.AppUser{}, false
	}
	return *m.user, true
}

func (m *Manager) Claims() Claims {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.claims
}

func (m *Manager) IsAuthenticated() bool {
	return m.Token() != ""
}

func (m *Manager) canRemember() bool {
	return m.local != nil && len(m.passphrase) > 0
}

// key returns the sealing key, creating the salt in repo on first use. The
// derived key is cached by the caller once its writes have committed.
func (m *Manager) key(ctx context.Context, repo localstore.Repository) ([]byte, error) {
	if m.sealKey != nil {
		return m.sealKey, nil
	}
	salt, err := repo.Get(ctx, KeySalt)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		if salt, err = cryptox.NewSalt(); err != nil {
			return nil, err
		}
		if err := repo.Set(ctx, KeySalt, salt, time.Time{}); err != nil {
			return nil, err
		}
	}
	return cryptox.DeriveKey(m.passphrase, salt), nil
}

// Login stores token and user. With remember set they are also persisted
// until the earlier of the token expiry and now+rememberFor.
func (m *Manager) Login(ctx context.Context, token string, user models.AppUser, remember bool) error {
	claims, err := ParseClaims(token)
	if err != nil {
		return err
	}
	now := m.now()
	if claims.Expired(now) {
		return common.ErrSessionExpired
	}
	user.Password = ""

	m.mu.Lock()
	defer m.mu.Unlock()

	m.token, m.user, m.claims = token, &user, claims

	if !remember {
		return nil
	}
	if !m.canRemember() {
		m.log.Warn(ctx, "remember-me requested but no session key or local storage configured")
		return nil
	}

	expiresAt := now.Add(m.rememberFor)
	if !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(expiresAt) {
		expiresAt = claims.ExpiresAt
	}
	var key []byte
	err = m.local.Atomic(ctx, func(tx localstore.Repository) error {
		k, err := m.key(ctx, tx)
		if err != nil {
			return fmt.Errorf("session key: %w", err)
		}
		key = k
		sealed, err := cryptox.Seal(remembered{Token: token, User: user}, k)
		if err != nil {
			return fmt.Errorf("seal session: %w", err)
		}
		return tx.Set(ctx, KeySession, sealed, expiresAt)
	})
	if err != nil {
		return err
	}
	m.sealKey = key
	return nil
}

// Restore loads a remembered session. It reports false when none is stored;
// an expired one is removed and reported as common.ErrSessionExpired.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	if !m.canRemember() {
		return false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sealed, err := m.local.Get(ctx, KeySession)
	if err != nil {
		return false, err
	}
	if sealed == nil {
		return false, nil
	}
	key, err := m.key(ctx, m.local)
	if err != nil {
		return false, fmt.Errorf("session key: %w", err)
	}
	m.sealKey = key
	var r remembered
	if err := cryptox.Open(sealed, key, &r); err != nil {
		m.log.Warn(ctx, "dropping unreadable remembered session", "err", err)
		return false, m.local.Delete(ctx, KeySession)
	}
	claims, err := ParseClaims(r.Token)
	if err == nil && claims.Expired(m.now()) {
		err = common.ErrSessionExpired
	}
	if err != nil {
		return false, errors.Join(err, m.local.Delete(ctx, KeySession))
	}

	m.token, m.user, m.claims = r.Token, &r.User, claims
	return true, nil
}

// Clear drops the in-memory session only.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.user, m.claims = "", nil, Claims{}
}

// Logout clears session and remembered storage. The dark-mode preference
// survives.
func (m *Manager) Logout(ctx context.Context) error {
	m.Clear()
	if m.local == nil {
		return nil
	}
	return m.local.Delete(ctx, KeySession)
}

func (m *Manager) DarkMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.darkMode
}

// SetDarkMode updates the preference and persists it without expiry.
func (m *Manager) SetDarkMode(ctx context.Context, on bool) error {
	m.mu.Lock()
	m.darkMode = on
	m.mu.Unlock()
	if m.local == nil {
		return nil
	}
	v := []byte("false")
	if on {
		v = []byte("true")
	}
	return m.local.Set(ctx, KeyDarkMode, v, time.Time{})
}

// LoadPreferences reads the persisted dark-mode flag.
func (m *Manager) LoadPreferences(ctx context.Context) error {
	if m.local == nil {
		return nil
	}
	v, err := m.local.Get(ctx, KeyDarkMode)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.darkMode = string(v) == "true"
	m.mu.Unlock()
	return nil
}
