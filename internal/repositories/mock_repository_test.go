package repositories_test

import (
	"context"
	"testing"

	"merchantgate/internal/models"
	"merchantgate/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockRepositories(t *testing.T) {
	ctx := context.Background()
	users := repositories.NewMockUserRepository()
	traders := repositories.NewMockTraderRepository()

	user := &models.User{CognitoSub: "sub-m", ConnectionMode: models.ConnectionModeSupplier}
	require.NoError(t, users.Create(ctx, user))
	assert.Error(t, users.Create(ctx, &models.User{CognitoSub: "sub-m"}))

	status, err := users.GetVerificationStatus(ctx, "sub-m")
	require.NoError(t, err)
	assert.Equal(t, models.VerificationStatusNone, status)

	_, err = users.GetInternalUserID(ctx, "nobody")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	assert.NoError(t, users.SetConnectionMode(ctx, "nobody", models.ConnectionModeBoth))

	traderType, err := traders.Upsert(ctx, user.ID, models.TraderProfile{CompanyName: "Acme", AFM: "1"})
	require.NoError(t, err)
	assert.Equal(t, models.TraderTypeSupplier, traderType)

	traderType, err = traders.Upsert(ctx, user.ID, models.TraderProfile{CompanyName: "Acme SA", AFM: "1"})
	require.NoError(t, err)
	assert.Equal(t, models.TraderTypeBoth, traderType)

	trader, err := traders.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme SA", trader.CompanyName)

	_, err = traders.GetByUserID(ctx, "nobody")
	assert.ErrorIs(t, err, repositories.ErrTraderNotFound)
}
