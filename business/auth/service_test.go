package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopSense/domain"
)

type stubTokenStore struct {
	savedToken  string
	savedUserID string
	savedTTL    time.Duration
	revoked     []string
	err         error
}

func (s *stubTokenStore) SaveToken(_ context.Context, token, userID string, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.savedToken = token
	s.savedUserID = userID
	s.savedTTL = ttl
	return nil
}

func (s *stubTokenStore) RevokeToken(_ context.Context, token string) error {
	if s.err != nil {
		return s.err
	}
	s.revoked = append(s.revoked, token)
	return nil
}

func TestRegisterSession_SavesToken(t *testing.T) {
	store := &stubTokenStore{}
	service := NewService(store, 2*time.Hour)

	err := service.RegisterSession(context.Background(), "u1", "tok-abc")
	require.NoError(t, err)

	assert.Equal(t, "tok-abc", store.savedToken)
	assert.Equal(t, "u1", store.savedUserID)
	assert.Equal(t, 2*time.Hour, store.savedTTL)
}

func TestRegisterSession_DefaultTTL(t *testing.T) {
	store := &stubTokenStore{}
	service := NewService(store, 0)

	require.NoError(t, service.RegisterSession(context.Background(), "u1", "tok-abc"))
	assert.Equal(t, 24*time.Hour, store.savedTTL)
}

func TestRegisterSession_RejectsEmptyArgs(t *testing.T) {
	service := NewService(&stubTokenStore{}, time.Hour)

	assert.ErrorIs(t, service.RegisterSession(context.Background(), "", "tok"), domain.ErrBadParamInput)
	assert.ErrorIs(t, service.RegisterSession(context.Background(), "u1", ""), domain.ErrBadParamInput)
}

func TestRegisterSession_StoreErrorPropagates(t *testing.T) {
	store := &stubTokenStore{err: errors.New("redis down")}
	service := NewService(store, time.Hour)

	err := service.RegisterSession(context.Background(), "u1", "tok-abc")
	assert.Error(t, err)
}

func TestRevokeSession_RemovesToken(t *testing.T) {
	store := &stubTokenStore{}
	service := NewService(store, time.Hour)

	require.NoError(t, service.RevokeSession(context.Background(), "tok-abc"))
	assert.Equal(t, []string{"tok-abc"}, store.revoked)
}

func TestNilStoreIsNoOp(t *testing.T) {
	service := NewService(nil, time.Hour)

	assert.NoError(t, service.RegisterSession(context.Background(), "u1", "tok-abc"))
	assert.NoError(t, service.RevokeSession(context.Background(), "tok-abc"))
}

func TestCancelledContext(t *testing.T) {
	service := NewService(&stubTokenStore{}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, service.RegisterSession(ctx, "u1", "tok-abc"))
	assert.Error(t, service.RevokeSession(ctx, "tok-abc"))
}
