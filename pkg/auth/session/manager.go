package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cofoundr/cofoundr-backend/pkg/auth"
	"github.com/cofoundr/cofoundr-backend/pkg/config"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	redisclient "github.com/cofoundr/cofoundr-backend/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

// Context is the resolved identity attached to authenticated requests.
type Context struct {
	UserID   uuid.UUID      `json:"user_id"`
	Email    string         `json:"email"`
	Name     string         `json:"name"`
	UserType enums.UserType `json:"user_type"`
}

// ProfileResolver loads the profile behind a session, creating it from the
// token seed when the signup event has not landed yet.
type ProfileResolver interface {
	ResolveSession(ctx context.Context, seed Context) (Context, error)
}

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(userID string) string
	RevokedTokenKey(tokenID string) string
}

// Manager caches session contexts in Redis and tracks signed-out tokens.
type Manager struct {
	store     sessionStore
	keyer     sessionKeyer
	profiles  ProfileResolver
	ttl       time.Duration
	revokeTTL time.Duration
}

// RevocationChecker exposes the read-only surface needed by middleware.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, profiles ProfileResolver, cfg config.SessionConfig, jwtCfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile resolver is required")
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("session cache ttl must be positive")
	}
	return &Manager{
		store:     client,
		keyer:     client,
		profiles:  profiles,
		ttl:       cfg.CacheTTL,
		revokeTTL: jwtCfg.AccessTTL(),
	}, nil
}

// Load resolves the session for verified token claims.
func (m *Manager) Load(ctx context.Context, claims *auth.AccessTokenClaims) (Context, error) {
	if claims == nil {
		return Context{}, fmt.Errorf("claims are required")
	}
	userID, err := claims.UserID()
	if err != nil {
		return Context{}, err
	}
	return m.load(ctx, Context{
		UserID:   userID,
		Email:    strings.TrimSpace(claims.Email),
		Name:     strings.TrimSpace(claims.UserMetadata.Name),
		UserType: claims.UserMetadata.UserType,
	})
}

// Refresh drops the cached context and reloads it from the profile store.
func (m *Manager) Refresh(ctx context.Context, userID uuid.UUID) (Context, error) {
	if userID == uuid.Nil {
		return Context{}, fmt.Errorf("user id is required")
	}
	if err := m.store.Del(ctx, m.keyer.SessionKey(userID.String())); err != nil {
		return Context{}, fmt.Errorf("drop session cache: %w", err)
	}
	return m.load(ctx, Context{UserID: userID})
}

// Teardown deletes the cached context and revokes the token id until it
// would have expired anyway.
func (m *Manager) Teardown(ctx context.Context, userID uuid.UUID, tokenID string) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id is required")
	}
	if err := m.store.Del(ctx, m.keyer.SessionKey(userID.String())); err != nil {
		return fmt.Errorf("drop session cache: %w", err)
	}
	if strings.TrimSpace(tokenID) == "" {
		return nil
	}
	if err := m.store.Set(ctx, m.keyer.RevokedTokenKey(tokenID), userID.String(), m.revokeTTL); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id was signed out.
func (m *Manager) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if strings.TrimSpace(tokenID) == "" {
		return false, nil
	}
	if _, err := m.store.Get(ctx, m.keyer.RevokedTokenKey(tokenID)); err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *Manager) load(ctx context.Context, seed Context) (Context, error) {
	key := m.keyer.SessionKey(seed.UserID.String())

	raw, err := m.store.Get(ctx, key)
	switch {
	case err == nil:
		var cached Context
		if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil && cached.UserID == seed.UserID {
			return cached, nil
		}
	case !errors.Is(err, redislib.Nil):
		return Context{}, fmt.Errorf("read session cache: %w", err)
	}

	resolved, err := m.profiles.ResolveSession(ctx, seed)
	if err != nil {
		return Context{}, err
	}

	payload, err := json.Marshal(resolved)
	if err != nil {
		return Context{}, fmt.Errorf("encode session: %w", err)
	}
	if err := m.store.Set(ctx, key, string(payload), m.ttl); err != nil {
		return Context{}, fmt.Errorf("write session cache: %w", err)
	}
	return resolved, nil
}
