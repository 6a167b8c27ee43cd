package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DKSALL9/StayFlow/internal/catalog/domain"
	"github.com/DKSALL9/StayFlow/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for any failed sign-in attempt. The
// message never reveals which part of the credentials was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrNoSession is returned when an operation requires a signed-in user.
var ErrNoSession = errors.New("no active session")

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

const tokenTTL = 72 * time.Hour

// Manager holds the single current identity and persists it across restarts.
// At most one user is signed in at a time.
type Manager struct {
	mu        sync.RWMutex
	store     domain.Store
	current   *domain.User
	jwtSecret []byte
	logger    *logger.Logger
}

// NewManager restores any persisted session from the store. A malformed
// persisted user is discarded and treated as signed out.
func NewManager(ctx context.Context, store domain.Store, jwtSecret string, log *logger.Logger) *Manager {
	m := &Manager{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		logger:    log.Named("SessionManager"),
	}

	raw, err := store.Get(ctx, domain.KeyUser)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			m.logger.Warn("Failed to read persisted session, starting signed out", zap.Error(err))
		}
		return m
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		m.logger.Warn("Persisted session is malformed, starting signed out",
			zap.Error(fmt.Errorf("%w: %v", domain.ErrStoreRead, err)))
		return m
	}

	m.current = &user
	m.logger.Info("Session restored", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return m
}

// CurrentUser returns a copy of the signed-in user, or nil when signed out.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	user := *m.current
	user.SavedProperties = append([]string(nil), m.current.SavedProperties...)
	return &user
}

// Login signs a user in. There is no credential database; any email with a
// password of at least MinPasswordLength is accepted, and the display name is
// derived from the email local part.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || len(password) < MinPasswordLength {
		return nil, "", ErrInvalidCredentials
	}

	user := &domain.User{
		ID:              uuid.New().String(),
		Email:           email,
		Name:            nameFromEmail(email),
		SavedProperties: []string{},
	}
	return m.establish(ctx, user, "Login")
}

// Register creates a new identity and signs it in. An empty name falls back
// to the email local part.
func (m *Manager) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || len(password) < MinPasswordLength {
		return nil, "", ErrInvalidCredentials
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = nameFromEmail(email)
	}

	user := &domain.User{
		ID:              uuid.New().String(),
		Email:           email,
		Name:            name,
		SavedProperties: []string{},
	}
	return m.establish(ctx, user, "Register")
}

func (m *Manager) establish(ctx context.Context, user *domain.User, op string) (*domain.User, string, error) {
	if err := m.SaveUser(ctx, user); err != nil {
		m.logger.Error(op+": failed to persist session", zap.String("email", user.Email), zap.Error(err))
		return nil, "", err
	}

	token, err := m.issueToken(user)
	if err != nil {
		m.logger.Error(op+": failed to issue token", zap.String("user_id", user.ID), zap.Error(err))
		return nil, "", err
	}

	m.logger.Info(op+": session established", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return user, token, nil
}

// SaveUser persists the user record and makes it the current identity.
func (m *Manager) SaveUser(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := m.store.Set(ctx, domain.KeyUser, raw); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = user
	m.mu.Unlock()
	return nil
}

// Logout clears the current identity. Signing out while signed out is a
// no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	wasSignedIn := m.current != nil
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Remove(ctx, domain.KeyUser); err != nil {
		m.logger.Error("Logout: failed to clear persisted session", zap.Error(err))
		return err
	}
	if wasSignedIn {
		m.logger.Info("Logout: session cleared")
	}
	return nil
}

func (m *Manager) issueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"exp":   time.Now().Add(tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a bearer token and returns the user id it was issued
// for.
func (m *Manager) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("token missing subject")
	}
	return sub, nil
}

func nameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
