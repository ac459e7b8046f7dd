package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
)

func newTestService() *Service {
	return NewService(
		AllowList{AdminID: 100, OwnerID: 200, GroupID: 300},
		NewMemoryAttemptStore(),
		zap.NewNop(),
	)
}

func TestAuthorizeRoles(t *testing.T) {
	svc := newTestService()

	role, err := svc.Authorize(100)
	require.NoError(t, err)
	require.Equal(t, model.UserRoleAdmin, role)

	role, err = svc.Authorize(200)
	require.NoError(t, err)
	require.Equal(t, model.UserRoleOwner, role)

	role, err = svc.Authorize(300)
	require.NoError(t, err)
	require.Equal(t, model.UserRoleOwner, role)
}

func TestAuthorizeDenied(t *testing.T) {
	svc := newTestService()

	_, err := svc.Authorize(999)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestAuthorizeUnsetIDNeverMatches(t *testing.T) {
	svc := NewService(AllowList{OwnerID: 200}, NewMemoryAttemptStore(), zap.NewNop())

	// Нулевой AdminID не должен открывать доступ для telegram_id = 0
	_, err := svc.Authorize(0)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestAuthorizeRateLimited(t *testing.T) {
	svc := newTestService()

	for i := 0; i < 5; i++ {
		_, err := svc.Authorize(999)
		require.ErrorIs(t, err, ErrAccessDenied)
	}

	_, err := svc.Authorize(999)
	require.ErrorIs(t, err, ErrRateLimited)

	// Лимит по ключу: владелец не затронут чужими попытками
	role, err := svc.Authorize(200)
	require.NoError(t, err)
	require.Equal(t, model.UserRoleOwner, role)
}
