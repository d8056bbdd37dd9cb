package app

import (
	"context"
	crand "crypto/rand"
	"math/big"
	"time"

	"villamarket/internal/domain"
)

const otpLength = 6

// OTPService issues and validates single-use verification codes keyed by
// phone number.
type OTPService struct {
	store domain.OTPStore
	ttl   time.Duration
}

func NewOTPService(store domain.OTPStore, ttl time.Duration) *OTPService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OTPService{store: store, ttl: ttl}
}

// Generate stores a fresh code under the phone number, replacing any
// previous one, and returns it. Delivery (SMS gateway) is out of scope;
// the caller decides whether to expose the code.
func (s *OTPService) Generate(ctx context.Context, phone string) (string, error) {
	if phone == "" {
		return "", domain.E(domain.KindInvalid, "phone number is required")
	}
	code, err := randomDigits(otpLength)
	if err != nil {
		return "", domain.Wrap(domain.KindInternal, "generate otp", err)
	}
	if err := s.store.Set(ctx, phone, code, s.ttl); err != nil {
		return "", domain.Wrap(domain.KindInternal, "store otp", err)
	}
	return code, nil
}

// Validate checks the code and consumes it on success; a code never
// validates twice.
func (s *OTPService) Validate(ctx context.Context, phone, code string) error {
	stored, ok, err := s.store.Get(ctx, phone)
	if err != nil {
		return domain.Wrap(domain.KindInternal, "read otp", err)
	}
	if !ok || stored != code {
		return domain.E(domain.KindInvalid, "Invalid OTP")
	}
	if err := s.store.Del(ctx, phone); err != nil {
		return domain.Wrap(domain.KindInternal, "consume otp", err)
	}
	return nil
}

func randomDigits(n int) (string, error) {
	buf := make([]byte, n)
	ten := big.NewInt(10)
	for i := range buf {
		d, err := crand.Int(crand.Reader, ten)
		if err != nil {
			return "", err
		}
		buf[i] = byte('0' + d.Int64())
	}
	return string(buf), nil
}
