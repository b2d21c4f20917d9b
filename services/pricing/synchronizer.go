package pricing

import (
	"context"
	"sync"
	"time"

	"swiftmove/models"

	"go.uber.org/zap"
)

// Synchronizer keeps a draft's quote consistent with its price-relevant
// fields. Every recomputation is stamped with a strictly increasing sequence
// number at dispatch; a response is applied only if its number is still the
// highest dispatched for that draft, so rapid successive edits always
// converge to the quote for the final input state.
type Synchronizer struct {
	svc     QuoteService
	logger  *zap.Logger
	timeout time.Duration

	mu         sync.Mutex
	dispatched map[string]uint64
}

// NewSynchronizer wires a synchronizer over the given quote service.
func NewSynchronizer(svc QuoteService, logger *zap.Logger, timeout time.Duration) *Synchronizer {
	return &Synchronizer{
		svc:        svc,
		logger:     logger,
		timeout:    timeout,
		dispatched: make(map[string]uint64),
	}
}

// Dispatch stamps the next recomputation for the draft and records it as the
// highest in flight. The draft's PricingSeq advances with it so the counter
// survives a reload of the draft from the store.
func (s *Synchronizer) Dispatch(draft *models.BookingDraft) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.dispatched[draft.DraftID]
	if draft.PricingSeq > seq {
		seq = draft.PricingSeq
	}
	seq++
	s.dispatched[draft.DraftID] = seq
	draft.PricingSeq = seq
	return seq
}

// Apply installs a computed quote on the draft if its sequence number is
// still the highest dispatched. Late lower-numbered responses are discarded.
func (s *Synchronizer) Apply(draft *models.BookingDraft, seq uint64, quote *models.PriceQuote) bool {
	s.mu.Lock()
	latest := s.dispatched[draft.DraftID]
	if draft.PricingSeq > latest {
		latest = draft.PricingSeq
	}
	s.mu.Unlock()

	if seq < latest {
		s.logger.Debug("discarding stale quote",
			zap.String("draftId", draft.DraftID),
			zap.Uint64("seq", seq),
			zap.Uint64("latest", latest))
		return false
	}
	quote.QuoteSeq = seq
	draft.Quote = quote
	return true
}

// Forget drops per-draft dispatch state once a draft is finalized or
// abandoned.
func (s *Synchronizer) Forget(draftID string) {
	s.mu.Lock()
	delete(s.dispatched, draftID)
	s.mu.Unlock()
}

// Recompute refreshes the draft's quote. Identical fingerprints are
// deduplicated: if the applied quote already matches the current draft the
// pricing call is skipped. On failure the previous quote is left in place
// and a recoverable QuoteRefreshError is returned.
func (s *Synchronizer) Recompute(ctx context.Context, draft *models.BookingDraft) (bool, error) {
	req := BuildRequest(draft)
	fp := req.Fingerprint()
	if draft.QuoteFresh(fp) {
		return false, nil
	}

	seq := s.Dispatch(draft)

	qctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	quote, err := s.svc.Quote(qctx, req)
	if err != nil {
		s.logger.Warn("price recomputation failed, keeping previous quote",
			zap.String("draftId", draft.DraftID),
			zap.Uint64("seq", seq),
			zap.Error(err))
		return false, NewQuoteRefreshError(err.Error())
	}
	return s.Apply(draft, seq, quote), nil
}

// EnsureFresh runs the final blocking recomputation before checkout. It
// returns an error unless the draft ends up holding a quote whose
// fingerprint matches the current configuration.
func (s *Synchronizer) EnsureFresh(ctx context.Context, draft *models.BookingDraft) error {
	if _, err := s.Recompute(ctx, draft); err != nil {
		return err
	}
	fp := BuildRequest(draft).Fingerprint()
	if !draft.QuoteFresh(fp) {
		return NewQuoteRefreshError("quote does not match current configuration")
	}
	return nil
}
