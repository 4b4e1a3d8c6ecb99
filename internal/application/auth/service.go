package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-restaurant-api/internal/domain"
	"github.com/go-restaurant-api/internal/pkg/id"
	"github.com/go-restaurant-api/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

const (
	registrationSubject = "Your OTP Verification Code"
	resetSubject        = "Your OTP for Password Reset"
)

// Service manages the one-time-code lifecycle for registration and
// password reset.
type Service interface {
	RequestRegistrationOTP(ctx context.Context, email, rawPassword string) error
	VerifyRegistrationOTP(ctx context.Context, email, code string) error
	RequestPasswordResetOTP(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type accountStore interface {
	Get(ctx context.Context, email string) (*domain.Account, error)
	Put(ctx context.Context, a *domain.Account) error
	Delete(ctx context.Context, email string) error
}

type mailer interface {
	SendEmail(ctx context.Context, to, subject, html string) error
}

type otpRecorder interface {
	OTPSent(purpose string, err error)
}

type service struct {
	accounts   accountStore
	mailer     mailer
	recorder   otpRecorder
	otpTTL     time.Duration
	bcryptCost int
	now        func() time.Time
	newCode    func() (string, error)
}

type ServiceDeps struct {
	AccountRepo accountStore
	Mailer      mailer
	Recorder    otpRecorder // optional
	OTPTTL      time.Duration
	BcryptCost  int                    // defaults to bcrypt.DefaultCost
	Now         func() time.Time       // defaults to time.Now
	NewCode     func() (string, error) // defaults to otp.NewCode
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		accounts:   deps.AccountRepo,
		mailer:     deps.Mailer,
		recorder:   deps.Recorder,
		otpTTL:     deps.OTPTTL,
		bcryptCost: deps.BcryptCost,
		now:        deps.Now,
		newCode:    deps.NewCode,
	}
	if s.otpTTL <= 0 {
		s.otpTTL = 5 * time.Minute
	}
	if s.bcryptCost == 0 {
		s.bcryptCost = bcrypt.DefaultCost
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newCode == nil {
		s.newCode = otp.NewCode
	}
	if s.recorder == nil {
		s.recorder = noopRecorder{}
	}
	return s
}

// NormalizeEmail is the canonical form under which accounts are stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) RequestRegistrationOTP(ctx context.Context, email, rawPassword string) error {
	email = NormalizeEmail(email)
	if email == "" || rawPassword == "" {
		return domain.NewError(domain.ErrValidation, "Email & Password required")
	}

	now := s.now().UTC()
	acc, err := s.accounts.Get(ctx, email)
	created := false
	switch {
	case errors.Is(err, domain.ErrNotFound):
		created = true
		acc = &domain.Account{Email: email, AccountID: id.New(), CreatedAt: now}
	case err != nil:
		return err
	}
	var prev *domain.Account
	if !created {
		prev = acc.Clone()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	code, err := s.issue(acc, domain.OTPPurposeRegister, now)
	if err != nil {
		return err
	}
	temp := string(hash)
	acc.PasswordTemp = &temp

	if err := s.accounts.Put(ctx, acc); err != nil {
		return err
	}
	if err := s.deliver(ctx, email, registrationSubject, domain.OTPPurposeRegister, code); err != nil {
		s.compensate(ctx, email, prev)
		return err
	}
	return nil
}

func (s *service) VerifyRegistrationOTP(ctx context.Context, email, code string) error {
	email = NormalizeEmail(email)
	acc, err := s.lookup(ctx, email, "User not found")
	if err != nil {
		return err
	}
	now := s.now().UTC()
	if err := s.check(ctx, acc, domain.OTPPurposeRegister, code, now); err != nil {
		return err
	}
	// A matching code without a pending password cannot complete registration.
	if acc.PasswordTemp == nil {
		return domain.NewError(domain.ErrInvalidOTP, "Invalid OTP")
	}

	acc.PasswordHash = acc.PasswordTemp
	acc.PasswordTemp = nil
	acc.ClearOTP()
	acc.Verified = true
	acc.UpdatedAt = now
	return s.accounts.Put(ctx, acc)
}

func (s *service) RequestPasswordResetOTP(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return domain.NewError(domain.ErrValidation, "Email required")
	}
	acc, err := s.lookup(ctx, email, "Email not registered")
	if err != nil {
		return err
	}
	prev := acc.Clone()

	code, err := s.issue(acc, domain.OTPPurposeReset, s.now().UTC())
	if err != nil {
		return err
	}
	if err := s.accounts.Put(ctx, acc); err != nil {
		return err
	}
	if err := s.deliver(ctx, email, resetSubject, domain.OTPPurposeReset, code); err != nil {
		s.compensate(ctx, email, prev)
		return err
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = NormalizeEmail(email)
	if email == "" || code == "" || newPassword == "" {
		return domain.NewError(domain.ErrValidation, "All fields required")
	}
	acc, err := s.lookup(ctx, email, "User not found")
	if err != nil {
		return err
	}
	now := s.now().UTC()
	if err := s.check(ctx, acc, domain.OTPPurposeReset, code, now); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	h := string(hash)
	acc.PasswordHash = &h
	acc.ClearOTP()
	acc.UpdatedAt = now
	return s.accounts.Put(ctx, acc)
}

func (s *service) lookup(ctx context.Context, email, notFoundMsg string) (*domain.Account, error) {
	if email == "" {
		return nil, domain.NewError(domain.ErrNotFound, notFoundMsg)
	}
	acc, err := s.accounts.Get(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewError(domain.ErrNotFound, notFoundMsg)
	}
	return acc, err
}

// issue stores a fresh code for purpose on acc, replacing any earlier one.
func (s *service) issue(acc *domain.Account, purpose string, now time.Time) (string, error) {
	code, err := s.newCode()
	if err != nil {
		return "", err
	}
	expires := now.Add(s.otpTTL)
	acc.OTP = &code
	acc.OTPPurpose = &purpose
	acc.OTPExpiresAt = &expires
	acc.UpdatedAt = now
	return code, nil
}

// check validates code against the pending OTP. The code must match
// exactly and belong to the same flow. The expiry instant itself counts as
// expired, and an expired code is purged on the way out.
func (s *service) check(ctx context.Context, acc *domain.Account, purpose, code string, now time.Time) error {
	if acc.OTP == nil || acc.OTPPurpose == nil || *acc.OTPPurpose != purpose || *acc.OTP != code {
		return domain.NewError(domain.ErrInvalidOTP, "Invalid OTP")
	}
	if acc.OTPExpiresAt == nil || !now.Before(*acc.OTPExpiresAt) {
		acc.ClearOTP()
		acc.UpdatedAt = now
		if err := s.accounts.Put(ctx, acc); err != nil {
			slog.Warn("could not purge expired otp", "email", acc.Email, "err", err)
		}
		return domain.NewError(domain.ErrExpiredOTP, "OTP Expired")
	}
	return nil
}

func (s *service) deliver(ctx context.Context, to, subject, purpose, code string) error {
	err := s.mailer.SendEmail(ctx, to, subject, otpHTML(code))
	s.recorder.OTPSent(purpose, err)
	if err != nil {
		slog.Error("otp delivery failed", "purpose", purpose, "to", to, "err", err)
		return &domain.Error{Kind: domain.ErrDelivery, Msg: "Failed to send OTP"}
	}
	return nil
}

// compensate undoes the write made before a failed delivery: a freshly
// created account is removed, an existing one gets its previous state back.
func (s *service) compensate(ctx context.Context, email string, prev *domain.Account) {
	// The request may have been cancelled; the rollback still has to land.
	ctx = context.WithoutCancel(ctx)
	var err error
	if prev == nil {
		err = s.accounts.Delete(ctx, email)
	} else {
		err = s.accounts.Put(ctx, prev)
	}
	if err != nil {
		slog.Error("could not roll back account after failed otp delivery", "email", email, "err", err)
	}
}

func otpHTML(code string) string {
	return fmt.Sprintf("<h2>Hello!</h2><p>Your OTP is: <b>%s</b></p>", code)
}

type noopRecorder struct{}

func (noopRecorder) OTPSent(string, error) {}
