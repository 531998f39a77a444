package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errCacheMiss = errors.New("cache miss")

type memoryCache struct {
	mu     sync.Mutex
	values map[string]string
	counts map[string]int64
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}, counts: map[string]int64{}}
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key], _ = value.(string)
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", errCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.values, key)
		delete(c.counts, key)
	}
	return nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}

func (c *memoryCache) Expire(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}

func newAuthService(t *testing.T, cache repositories.CacheRepositoryInterface) AuthServiceInterface {
	t.Helper()
	env := newTestEnv(t)
	return NewAuthService(repositories.NewUserRepository(env.store, zap.NewNop()), cache, zap.NewNop(), testAuthConfig())
}

func TestAuthService_SignUpAndLogin(t *testing.T) {
	auth := newAuthService(t, nil)
	ctx := context.Background()

	user, err := auth.SignUp(ctx, dto.SignUpDTO{Email: "Tech@Example.com", Password: "secret1", DisplayName: "Tech"})
	require.NoError(t, err)
	assert.Equal(t, "tech@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	_, err = auth.SignUp(ctx, dto.SignUpDTO{Email: "tech@example.com", Password: "another1"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	logged, err := auth.Login(ctx, dto.LoginDTO{Email: "tech@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = auth.Login(ctx, dto.LoginDTO{Email: "tech@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = auth.Login(ctx, dto.LoginDTO{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	found, err := auth.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tech", found.DisplayName)
}

func TestAuthService_LockoutAfterFailedAttempts(t *testing.T) {
	cache := newMemoryCache()
	auth := newAuthService(t, cache)
	ctx := context.Background()

	_, err := auth.SignUp(ctx, dto.SignUpDTO{Email: "tech@example.com", Password: "secret1"})
	require.NoError(t, err)

	for i := 0; i < testAuthConfig().MaxLoginAttempts; i++ {
		_, err = auth.Login(ctx, dto.LoginDTO{Email: "tech@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	_, err = auth.Login(ctx, dto.LoginDTO{Email: "tech@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
}

func TestAuthService_Unconfigured(t *testing.T) {
	env := newUnconfiguredEnv(t)
	auth := NewAuthService(repositories.NewUserRepository(env.store, zap.NewNop()), nil, zap.NewNop(), testAuthConfig())

	_, err := auth.Login(context.Background(), dto.LoginDTO{Email: "tech@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}
