package account

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"swiftmove/models"
	"swiftmove/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// Repository is the account data access the service needs.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	AddSavedAddress(ctx context.Context, customerID string, addr models.SavedAddress) error
}

// Service handles customer sign-in and saved addresses.
type Service interface {
	Authenticate(ctx context.Context, email, password string) (*models.Account, string, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	SaveAddresses(ctx context.Context, customerID string, addrs []models.Address) error
}

// DefaultAccountService implements Service.
type DefaultAccountService struct {
	Repo   Repository
	Logger *zap.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// TokenTTL is how long issued customer tokens stay valid.
const TokenTTL = 24 * time.Hour

// loginLimiter returns the per-email limiter, creating one on first use.
// 5 attempts per minute with a burst of 5.
func (s *DefaultAccountService) loginLimiter(email string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.limiters == nil {
		s.limiters = make(map[string]*rate.Limiter)
	}
	limiter, ok := s.limiters[email]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(time.Minute/5), 5)
		s.limiters[email] = limiter
	}
	return limiter
}

// Authenticate verifies credentials and issues a JWT. Failures are
// categorized so the caller can surface the right remediation; none of them
// mutates any wizard state.
func (s *DefaultAccountService) Authenticate(ctx context.Context, email, password string) (*models.Account, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !s.loginLimiter(email).Allow() {
		return nil, "", NewAuthError(ReasonRateLimited, "too many sign-in attempts, try again in a minute")
	}

	acct, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		s.Logger.Error("sign-in lookup failed", zap.Error(err))
		return nil, "", fmt.Errorf("authentication failed, please try again")
	}
	if acct == nil {
		return nil, "", NewAuthError(ReasonInvalidCredentials, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, "", NewAuthError(ReasonInvalidCredentials, "invalid email or password")
	}
	if acct.Role != "customer" {
		return nil, "", NewAuthError(ReasonWrongAccountType, "staff accounts cannot sign in here; use the operations dashboard")
	}
	if !acct.EmailVerified {
		return nil, "", NewAuthError(ReasonUnverifiedEmail, "verify your email address before signing in")
	}

	token, err := utils.GenerateToken(acct.ID, acct.Email, TokenTTL)
	if err != nil {
		s.Logger.Error("token generation failed", zap.Error(err))
		return nil, "", fmt.Errorf("authentication failed, please try again")
	}
	return acct, token, nil
}

// GetByID fetches a customer account.
func (s *DefaultAccountService) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return s.Repo.GetByID(ctx, id)
}

// SaveAddresses persists the used booking addresses on the account,
// auto-nicknamed with a timestamp. Called as a side effect of booking
// commit for authenticated customers.
func (s *DefaultAccountService) SaveAddresses(ctx context.Context, customerID string, addrs []models.Address) error {
	now := time.Now()
	for _, addr := range addrs {
		if !addr.Complete() {
			continue
		}
		saved := models.SavedAddress{
			Nickname:  "Booking " + now.Format("Jan 2 2006 15:04"),
			Address:   addr,
			CreatedAt: now,
		}
		if err := s.Repo.AddSavedAddress(ctx, customerID, saved); err != nil {
			return fmt.Errorf("failed to save address: %w", err)
		}
	}
	return nil
}
