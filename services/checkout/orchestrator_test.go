package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"swiftmove/models"
	"swiftmove/services/pricing"
	"swiftmove/services/wizard"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memDraftStore struct {
	data map[string][]byte
}

func newMemDraftStore() *memDraftStore {
	return &memDraftStore{data: make(map[string][]byte)}
}

func (m *memDraftStore) Save(_ context.Context, draft *models.BookingDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	m.data[draft.DraftID] = raw
	return nil
}

func (m *memDraftStore) Get(_ context.Context, draftID string) (*models.BookingDraft, error) {
	raw, ok := m.data[draftID]
	if !ok {
		return nil, wizard.NewNotFoundError(draftID)
	}
	var draft models.BookingDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (m *memDraftStore) Delete(_ context.Context, draftID string) error {
	delete(m.data, draftID)
	return nil
}

type fakeGateway struct {
	createCalls int
	cancelCalls []string
	status      string
	getErr      error
}

func (g *fakeGateway) CreateIntent(_ context.Context, amountCents int64, _ map[string]string) (*PaymentIntent, error) {
	g.createCalls++
	return &PaymentIntent{
		ID:           fmt.Sprintf("pi_test_%d", g.createCalls),
		ClientSecret: "cs_test_secret",
		Status:       "requires_payment_method",
	}, nil
}

func (g *fakeGateway) GetIntent(_ context.Context, intentID string) (*PaymentIntent, error) {
	if g.getErr != nil {
		return nil, g.getErr
	}
	return &PaymentIntent{ID: intentID, Status: g.status}, nil
}

func (g *fakeGateway) CancelIntent(_ context.Context, intentID string) error {
	g.cancelCalls = append(g.cancelCalls, intentID)
	return nil
}

type fakeBookingRepo struct {
	byIntent map[string]*models.Booking
	failNext bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byIntent: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) CreateByIntent(_ context.Context, booking *models.Booking) (*models.Booking, error) {
	if r.failNext {
		r.failNext = false
		return nil, fmt.Errorf("write timeout")
	}
	if existing, ok := r.byIntent[booking.PaymentIntentID]; ok {
		return existing, nil
	}
	r.byIntent[booking.PaymentIntentID] = booking
	return booking, nil
}

func (r *fakeBookingRepo) GetByIntentID(_ context.Context, intentID string) (*models.Booking, error) {
	if b, ok := r.byIntent[intentID]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("booking not found")
}

type fakeEnqueuer struct {
	enqueued []string
}

func (f *fakeEnqueuer) EnqueueReconcile(_, intentID string, _ time.Duration) error {
	f.enqueued = append(f.enqueued, intentID)
	return nil
}

type fakeAccounts struct {
	saved map[string][]models.Address
}

func (f *fakeAccounts) Authenticate(_ context.Context, _, _ string) (*models.Account, string, error) {
	return nil, "", fmt.Errorf("not implemented")
}

func (f *fakeAccounts) GetByID(_ context.Context, _ string) (*models.Account, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeAccounts) SaveAddresses(_ context.Context, customerID string, addrs []models.Address) error {
	if f.saved == nil {
		f.saved = make(map[string][]models.Address)
	}
	f.saved[customerID] = append(f.saved[customerID], addrs...)
	return nil
}

type orchestratorFixture struct {
	orch     *Orchestrator
	store    *memDraftStore
	gateway  *fakeGateway
	bookings *fakeBookingRepo
	tasks    *fakeEnqueuer
	accounts *fakeAccounts
}

func newFixture() *orchestratorFixture {
	f := &orchestratorFixture{
		store:    newMemDraftStore(),
		gateway:  &fakeGateway{status: StatusSucceeded},
		bookings: newFakeBookingRepo(),
		tasks:    &fakeEnqueuer{},
		accounts: &fakeAccounts{},
	}
	f.orch = &Orchestrator{
		Store:    f.store,
		Sync:     pricing.NewSynchronizer(pricing.NewEngine(), zap.NewNop(), time.Second),
		Gateway:  f.gateway,
		Bookings: f.bookings,
		Accounts: f.accounts,
		Tasks:    f.tasks,
		Logger:   zap.NewNop(),
	}
	return f
}

func completeGuestDraft() *models.BookingDraft {
	draft := &models.BookingDraft{
		DraftID:  "draft-1",
		Identity: models.IdentityGuest,
		CustomerInfo: models.CustomerInfo{
			FirstName: "Jane", LastName: "Doe",
			Email: "jane@example.com", Phone: "212-555-0134",
		},
		TermsAccepted: true,
		Checkout:      models.CheckoutRecord{State: models.CheckoutNotStarted},
	}
	draft.Service.SetStandardDelivery(models.StandardDeliverySelection{ItemCount: 4})
	draft.Schedule = models.Schedule{
		PickupDate: time.Now().AddDate(0, 0, 10).Format("2006-01-02"),
		TimeWindow: models.WindowMorning,
	}
	// A Saturday would change the expected total; shift off weekends.
	for {
		day, _ := time.Parse("2006-01-02", draft.Schedule.PickupDate)
		if day.Weekday() != time.Saturday {
			break
		}
		draft.Schedule.PickupDate = day.AddDate(0, 0, 2).Format("2006-01-02")
	}
	draft.Pickup = models.Address{Line1: "1 Main St", City: "New York", State: "NY", Zip: "10001"}
	draft.Delivery = models.Address{Line1: "2 Main St", City: "New York", State: "NY", Zip: "10002"}
	return draft
}

func (f *orchestratorFixture) seed(t *testing.T, draft *models.BookingDraft) {
	t.Helper()
	require.NoError(t, f.store.Save(context.Background(), draft))
}

func TestCreateIntent_ReservesQuotedTotal(t *testing.T) {
	f := newFixture()
	f.seed(t, completeGuestDraft())

	draft, err := f.orch.CreateIntent(context.Background(), "draft-1")
	require.NoError(t, err)
	require.Equal(t, models.CheckoutIntentCreated, draft.Checkout.State)
	require.Equal(t, "pi_test_1", draft.Checkout.PaymentIntentID)
	require.Equal(t, "cs_test_secret", draft.Checkout.ClientSecret)
	require.InDelta(t, 380, draft.Checkout.AmountDollars, 0.001)
	require.Equal(t, 1, f.gateway.createCalls)
	require.Equal(t, []string{"pi_test_1"}, f.tasks.enqueued, "a reconcile check is scheduled with the intent")

	// The draft is now locked against configuration changes.
	reloaded, err := f.store.Get(context.Background(), "draft-1")
	require.NoError(t, err)
	require.True(t, reloaded.Locked())
}

func TestCreateIntent_SecondCallReturnsExistingIntent(t *testing.T) {
	f := newFixture()
	f.seed(t, completeGuestDraft())

	first, err := f.orch.CreateIntent(context.Background(), "draft-1")
	require.NoError(t, err)
	second, err := f.orch.CreateIntent(context.Background(), "draft-1")
	require.NoError(t, err)

	require.Equal(t, first.Checkout.PaymentIntentID, second.Checkout.PaymentIntentID)
	require.Equal(t, 1, f.gateway.createCalls, "a second intent must never be minted")
}

func TestCreateIntent_IncompleteDraftRejected(t *testing.T) {
	f := newFixture()
	draft := completeGuestDraft()
	draft.TermsAccepted = false
	f.seed(t, draft)

	_, err := f.orch.CreateIntent(context.Background(), "draft-1")
	var guardErr *wizard.GuardError
	require.ErrorAs(t, err, &guardErr)
	require.Equal(t, 0, f.gateway.createCalls)
}

func TestCreateIntent_FreeOrderSkipsGateway(t *testing.T) {
	f := newFixture()
	draft := completeGuestDraft()
	draft.Discount = models.Discount{
		Code:      "FIRSTMOVE",
		Validated: true,
		Descriptor: &models.DiscountDescriptor{
			Code: "FIRSTMOVE", Kind: models.DiscountPercent, Percent: 100,
		},
	}
	f.seed(t, draft)

	updated, err := f.orch.CreateIntent(context.Background(), "draft-1")
	require.NoError(t, err)
	require.Equal(t, models.CheckoutPaymentConfirmed, updated.Checkout.State, "free orders skip confirmation entirely")
	require.True(t, strings.HasPrefix(updated.Checkout.PaymentIntentID, models.FreeOrderPrefix))
	require.InDelta(t, 0, updated.Checkout.AmountDollars, 0.001)
	require.Equal(t, 0, f.gateway.createCalls, "no gateway interaction for a zero total")

	// A free order commits straight to a booking.
	booking, err := f.orch.Commit(context.Background(), "draft-1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(booking.BookingNumber, "SM-"))
	require.InDelta(t, 0, booking.AmountDollars, 0.001)
}

func TestVerifyPayment_FailureStaysAtIntentCreated(t *testing.T) {
	f := newFixture()
	f.seed(t, completeGuestDraft())
	_, err := f.orch.CreateIntent(context.Background(), "draft-1")
	require.NoError(t, err)

	f.gateway.status = "requires_payment_method"
	_, err = f.orch.VerifyPayment(context.Background(), "draft-1")
	var payErr *PaymentError
	require.ErrorAs(t, err, &payErr)

	reloaded, err := f.store.Get(context.Background(), "draft-1")
	require.NoError(t, err)
	require.Equal(t, models.CheckoutIntentCreated, reloaded.Checkout.State,
		"a declined confirmation is retryable with the same intent")

	// The retry with the same intent succeeds.
	f.gateway.status = StatusSucceeded
	confirmed, err := f.orch.VerifyPayment(context.Background(), "draft-1")
	require.NoError(t, err)
	require.Equal(t, models.CheckoutPaymentConfirmed, confirmed.Checkout.State)
	require.Equal(t, "pi_test_1", confirmed.Checkout.PaymentIntentID)
}

func TestVerifyPayment_RequiresAnIntent(t *testing.T) {
	f := newFixture()
	f.seed(t, completeGuestDraft())

	_, err := f.orch.VerifyPayment(context.Background(), "draft-1")
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
}

func TestCommit_CreatesBookingOnce(t *testing.T) {
	f := newFixture()
	f.seed(t, completeGuestDraft())
	_, err := f.orch.CreateIntent(context.Background(), "draft-1")
	require.NoError(t, err)
	_, err = f.orch.VerifyPayment(context.Background(), "draft-1")
	require.NoError(t, err)

	booking, err := f.orch.Commit(context.Background(), "draft-1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(booking.BookingNumber, "SM-"))
	require.Equal(t, "pi_test_1", booking.PaymentIntentID)
	require.Equal(t, "jane@example.com", booking.CustomerInfo.Email, "guest bookings carry raw contact fields")
	require.InDelta(t, 380, booking.AmountDollars, 0.001)

	// A duplicate commit returns the same booking, not a second one.
	again, err := f.orch.Commit(context.Background(), "draft-1")
	require.NoError(t, err)
	require.Equal(t, booking.BookingNumber, again.BookingNumber)
	require.Len(t, f.bookings.byIntent, 1)

	reloaded, err := f.store.Get(context.Background(), "draft-1")
	require.NoError(t, err)
	require.Equal(t, models.CheckoutBookingCreated, reloaded.Checkout.State)
	require.Equal(t, booking.BookingNumber, reloaded.Checkout.BookingNumber)
}

// The booking endpoints verify payment before committing; a client retry
// after a successful commit must walk the same sequence and land on the
// existing booking instead of a state conflict.
func TestBookingRetryAfterCommitReplaysExistingBooking(t *testing.T) {
	f := newFixture()
	f.seed(t, completeGuestDraft())
	_, err := f.orch.CreateIntent(context.Background(), "draft-1")
	require.NoError(t, err)
	_, err = f.orch.VerifyPayment(context.Background(), "draft-1")
	require.NoError(t, err)
	booking, err := f.orch.Commit(context.Background(), "draft-1")
	require.NoError(t, err)

	draft, err := f.orch.VerifyPayment(context.Background(), "draft-1")
	require.NoError(t, err)
	require.Equal(t, models.CheckoutBookingCreated, draft.Checkout.State)

	again, err := f.orch.Commit(context.Background(), "draft-1")
	require.NoError(t, err)
	require.Equal(t, booking.BookingNumber, again.BookingNumber)
	require.Len(t, f.bookings.byIntent, 1)
}

func TestCommit_FailureIsRetryableWithSameIntent(t *testing.T) {
	f := newFixture()
	f.seed(t, completeGuestDraft())
	_, err := f.orch.CreateIntent(context.Background(), "draft-1")
	require.NoError(t, err)
	_, err = f.orch.VerifyPayment(context.Background(), "draft-1")
	require.NoError(t, err)

	f.bookings.failNext = true
	_, err = f.orch.Commit(context.Background(), "draft-1")
	var commitErr *CommitError
	require.ErrorAs(t, err, &commitErr)
	require.Equal(t, "pi_test_1", commitErr.IntentID)
	require.Contains(t, f.tasks.enqueued, "pi_test_1", "a failed commit escalates for reconciliation")

	reloaded, err := f.store.Get(context.Background(), "draft-1")
	require.NoError(t, err)
	require.Equal(t, models.CheckoutPaymentConfirmed, reloaded.Checkout.State,
		"confirmed funds must keep a path to a booking")

	booking, err := f.orch.Commit(context.Background(), "draft-1")
	require.NoError(t, err)
	require.Equal(t, "pi_test_1", booking.PaymentIntentID)
	require.Len(t, f.bookings.byIntent, 1, "the retry commits against the same intent")
}

func TestCommit_RequiresConfirmedPayment(t *testing.T) {
	f := newFixture()
	f.seed(t, completeGuestDraft())
	_, err := f.orch.CreateIntent(context.Background(), "draft-1")
	require.NoError(t, err)

	_, err = f.orch.Commit(context.Background(), "draft-1")
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
}

func TestCommit_AuthenticatedSavesUnpinnedAddresses(t *testing.T) {
	f := newFixture()
	draft := completeGuestDraft()
	draft.Identity = models.IdentityAuthenticated
	draft.CustomerID = "cust-7"
	draft.CustomerEmail = "cust7@example.com"
	draft.CustomerInfo = models.CustomerInfo{}
	draft.Delivery.ReadOnly = true // pinned side must not be saved
	f.seed(t, draft)

	_, err := f.orch.CreateIntent(context.Background(), "draft-1")
	require.NoError(t, err)
	_, err = f.orch.VerifyPayment(context.Background(), "draft-1")
	require.NoError(t, err)

	booking, err := f.orch.Commit(context.Background(), "draft-1")
	require.NoError(t, err)
	require.Equal(t, "cust-7", booking.CustomerID)
	require.Equal(t, "cust7@example.com", booking.CustomerInfo.Email,
		"account email is recorded for discount redemption tracking")

	saved := f.accounts.saved["cust-7"]
	require.Len(t, saved, 1)
	require.Equal(t, "10001", saved[0].Zip)
}

func TestCancel_UnconfirmedIntentOnly(t *testing.T) {
	f := newFixture()
	f.seed(t, completeGuestDraft())
	_, err := f.orch.CreateIntent(context.Background(), "draft-1")
	require.NoError(t, err)

	draft, err := f.orch.Cancel(context.Background(), "draft-1")
	require.NoError(t, err)
	require.Equal(t, models.CheckoutNotStarted, draft.Checkout.State)
	require.Empty(t, draft.Checkout.PaymentIntentID)
	require.Equal(t, []string{"pi_test_1"}, f.gateway.cancelCalls)
	require.False(t, draft.Locked(), "cancellation unlocks the draft")

	// Once payment is confirmed, cancellation is no longer possible.
	_, err = f.orch.CreateIntent(context.Background(), "draft-1")
	require.NoError(t, err)
	_, err = f.orch.VerifyPayment(context.Background(), "draft-1")
	require.NoError(t, err)
	_, err = f.orch.Cancel(context.Background(), "draft-1")
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
}
