package impl

import (
	"context"
	"testing"

	"housing/config"
	domainerrors "housing/internal/domain/errors"
	"housing/internal/errors"
	"housing/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emailFixtures struct {
	service     usecase.EmailUsecase
	codeStore   *fakeCodeStore
	statusStore *fakeStatusStore
	sender      *recordingSender
}

func createTestEmailService(t *testing.T, codes ...string) emailFixtures {
	t.Helper()

	codeStore := newFakeCodeStore()
	statusStore := newFakeStatusStore()
	sender := newRecordingSender()

	svc := NewEmailVerificationService(EmailServiceParams{
		CodeStore:   codeStore,
		StatusStore: statusStore,
		Generator:   &sequenceGenerator{codes: codes},
		Sender:      sender,
		Config:      &config.Config{},
		Logger:      newDiscardLogger(),
	})

	return emailFixtures{
		service:     svc,
		codeStore:   codeStore,
		statusStore: statusStore,
		sender:      sender,
	}
}

func TestEmailService_SendSignupCode(t *testing.T) {
	fx := createTestEmailService(t, "123456", "654321")
	ctx := context.Background()

	require.NoError(t, fx.service.SendSignupCode(ctx, "a@x.com"))

	stored, err := fx.codeStore.GetCode(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", stored)
	assert.Equal(t, []string{"123456"}, fx.sender.sent["a@x.com"])

	// Resend overwrites the pending code rather than accumulating.
	require.NoError(t, fx.service.SendSignupCode(ctx, "a@x.com"))
	stored, err = fx.codeStore.GetCode(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "654321", stored)
}

func TestEmailService_VerifyCode_RoundTrip(t *testing.T) {
	fx := createTestEmailService(t, "123456")
	ctx := context.Background()

	require.NoError(t, fx.service.SendSignupCode(ctx, "a@x.com"))

	output, err := fx.service.VerifyCode(ctx, "a@x.com", "123456")
	require.NoError(t, err)
	assert.True(t, output.Verified)

	verified, err := fx.service.IsVerified(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, verified)

	// The code was consumed; replaying it reports expiry, not mismatch.
	_, err = fx.service.VerifyCode(ctx, "a@x.com", "123456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCodeExpired))
}

func TestEmailService_VerifyCode_Mismatch(t *testing.T) {
	fx := createTestEmailService(t, "123456")
	ctx := context.Background()

	require.NoError(t, fx.service.SendSignupCode(ctx, "a@x.com"))

	output, err := fx.service.VerifyCode(ctx, "a@x.com", "000000")
	require.NoError(t, err)
	assert.False(t, output.Verified)

	// A mismatch leaves the pending code usable.
	output, err = fx.service.VerifyCode(ctx, "a@x.com", "123456")
	require.NoError(t, err)
	assert.True(t, output.Verified)
}

func TestEmailService_VerifyCode_Expired(t *testing.T) {
	fx := createTestEmailService(t, "123456")
	ctx := context.Background()

	// Never sent: identical to expired.
	_, err := fx.service.VerifyCode(ctx, "a@x.com", "123456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCodeExpired))

	// Sent but lapsed by TTL before the verify attempt.
	require.NoError(t, fx.service.SendSignupCode(ctx, "a@x.com"))
	fx.codeStore.expire("a@x.com")

	_, err = fx.service.VerifyCode(ctx, "a@x.com", "123456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCodeExpired))
}

func TestEmailService_ClearVerified(t *testing.T) {
	fx := createTestEmailService(t, "123456")
	ctx := context.Background()

	require.NoError(t, fx.service.SendSignupCode(ctx, "a@x.com"))
	_, err := fx.service.VerifyCode(ctx, "a@x.com", "123456")
	require.NoError(t, err)

	require.NoError(t, fx.service.ClearVerified(ctx, "a@x.com"))

	verified, err := fx.service.IsVerified(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, verified)

	// Clearing an absent marker is not an error.
	require.NoError(t, fx.service.ClearVerified(ctx, "a@x.com"))
}
