package account

import (
	"context"
	"fmt"
	"testing"

	"swiftmove/models"
	"swiftmove/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeAccountRepo struct {
	byEmail map[string]*models.Account
	saved   []models.SavedAddress
	err     error
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.byEmail[email], nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*models.Account, error) {
	for _, a := range r.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("account not found")
}

func (r *fakeAccountRepo) AddSavedAddress(_ context.Context, _ string, addr models.SavedAddress) error {
	r.saved = append(r.saved, addr)
	return nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newAuthFixture(t *testing.T, acct *models.Account) (*DefaultAccountService, *fakeAccountRepo) {
	t.Helper()
	repo := &fakeAccountRepo{byEmail: map[string]*models.Account{}}
	if acct != nil {
		repo.byEmail[acct.Email] = acct
	}
	return &DefaultAccountService{Repo: repo, Logger: zap.NewNop()}, repo
}

func verifiedCustomer(t *testing.T) *models.Account {
	return &models.Account{
		ID:            "cust-1",
		Email:         "jane@example.com",
		PasswordHash:  hashPassword(t, "hunter2!"),
		Role:          "customer",
		EmailVerified: true,
	}
}

func requireAuthReason(t *testing.T, err error, reason string) {
	t.Helper()
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, reason, authErr.Reason)
}

func TestAuthenticate_Success(t *testing.T) {
	svc, _ := newAuthFixture(t, verifiedCustomer(t))

	acct, token, err := svc.Authenticate(context.Background(), "Jane@Example.com ", "hunter2!")
	require.NoError(t, err)
	require.Equal(t, "cust-1", acct.ID)
	require.NotEmpty(t, token)

	sub, email, err := utils.ExtractIDsFromToken(token)
	require.NoError(t, err)
	require.Equal(t, "cust-1", sub)
	require.Equal(t, "jane@example.com", email)
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t, verifiedCustomer(t))

	_, _, err := svc.Authenticate(context.Background(), "jane@example.com", "wrong")
	requireAuthReason(t, err, ReasonInvalidCredentials)

	// Unknown account uses the same reason so the response does not leak
	// which emails exist.
	_, _, err = svc.Authenticate(context.Background(), "nobody@example.com", "hunter2!")
	requireAuthReason(t, err, ReasonInvalidCredentials)
}

func TestAuthenticate_UnverifiedEmail(t *testing.T) {
	acct := verifiedCustomer(t)
	acct.EmailVerified = false
	svc, _ := newAuthFixture(t, acct)

	_, _, err := svc.Authenticate(context.Background(), "jane@example.com", "hunter2!")
	requireAuthReason(t, err, ReasonUnverifiedEmail)
}

func TestAuthenticate_WrongAccountType(t *testing.T) {
	acct := verifiedCustomer(t)
	acct.Role = "ops"
	svc, _ := newAuthFixture(t, acct)

	_, _, err := svc.Authenticate(context.Background(), "jane@example.com", "hunter2!")
	requireAuthReason(t, err, ReasonWrongAccountType)
}

func TestAuthenticate_RateLimited(t *testing.T) {
	svc, repo := newAuthFixture(t, verifiedCustomer(t))
	other := verifiedCustomer(t)
	other.ID = "cust-2"
	other.Email = "other@example.com"
	repo.byEmail[other.Email] = other

	for i := 0; i < 5; i++ {
		_, _, err := svc.Authenticate(context.Background(), "jane@example.com", "wrong")
		requireAuthReason(t, err, ReasonInvalidCredentials)
	}
	_, _, err := svc.Authenticate(context.Background(), "jane@example.com", "wrong")
	requireAuthReason(t, err, ReasonRateLimited)

	// The limiter is per email; another customer is unaffected.
	_, _, err = svc.Authenticate(context.Background(), "other@example.com", "hunter2!")
	require.NoError(t, err)
}

func TestSaveAddresses_SkipsIncomplete(t *testing.T) {
	svc, repo := newAuthFixture(t, nil)

	err := svc.SaveAddresses(context.Background(), "cust-1", []models.Address{
		{Line1: "1 Main St", City: "New York", State: "NY", Zip: "10001"},
		{Line1: "", City: "New York"},
	})
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)
	require.Equal(t, "10001", repo.saved[0].Address.Zip)
	require.Contains(t, repo.saved[0].Nickname, "Booking ")
}
