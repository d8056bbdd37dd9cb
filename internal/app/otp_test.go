package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"villamarket/internal/app"
	"villamarket/internal/domain"
)

type fakeOTPStore struct {
	codes   map[string]string
	lastTTL time.Duration
}

func newFakeOTPStore() *fakeOTPStore { return &fakeOTPStore{codes: map[string]string{}} }

func (f *fakeOTPStore) Set(ctx context.Context, phone, code string, ttl time.Duration) error {
	f.codes[phone] = code
	f.lastTTL = ttl
	return nil
}

func (f *fakeOTPStore) Get(ctx context.Context, phone string) (string, bool, error) {
	c, ok := f.codes[phone]
	return c, ok, nil
}

func (f *fakeOTPStore) Del(ctx context.Context, phone string) error {
	delete(f.codes, phone)
	return nil
}

func TestOTP_GenerateStoresSixDigits(t *testing.T) {
	store := newFakeOTPStore()
	svc := app.NewOTPService(store, 5*time.Minute)

	code, err := svc.Generate(context.Background(), "+15550001111")
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "non-digit %q in code", r)
	}
	assert.Equal(t, code, store.codes["+15550001111"])
	assert.Equal(t, 5*time.Minute, store.lastTTL)
}

func TestOTP_ValidateConsumesCode(t *testing.T) {
	store := newFakeOTPStore()
	svc := app.NewOTPService(store, 5*time.Minute)

	code, err := svc.Generate(context.Background(), "+15550001111")
	require.NoError(t, err)

	require.NoError(t, svc.Validate(context.Background(), "+15550001111", code))

	// single use: the same code never validates twice
	err = svc.Validate(context.Background(), "+15550001111", code)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalid, domain.KindOf(err))
	assert.Equal(t, "Invalid OTP", domain.MessageOf(err))
}

func TestOTP_WrongCodeRejectedAndKept(t *testing.T) {
	store := newFakeOTPStore()
	svc := app.NewOTPService(store, 5*time.Minute)

	code, err := svc.Generate(context.Background(), "+15550001111")
	require.NoError(t, err)

	err = svc.Validate(context.Background(), "+15550001111", "000000")
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalid, domain.KindOf(err))

	// a wrong guess must not burn the real code
	require.NoError(t, svc.Validate(context.Background(), "+15550001111", code))
}

func TestOTP_GenerateRequiresPhone(t *testing.T) {
	svc := app.NewOTPService(newFakeOTPStore(), 5*time.Minute)
	_, err := svc.Generate(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalid, domain.KindOf(err))
}
