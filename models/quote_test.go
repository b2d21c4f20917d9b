package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscountDescriptor_AmountOff(t *testing.T) {
	percent := DiscountDescriptor{Code: "MOVE10", Kind: DiscountPercent, Percent: 10}
	require.InDelta(t, 28.5, percent.AmountOff(285), 0.001)

	fixed := DiscountDescriptor{Code: "HAMPTONS50", Kind: DiscountFixed, Amount: 50}
	require.InDelta(t, 50, fixed.AmountOff(400), 0.001)

	// A fixed discount never drives the total negative.
	require.InDelta(t, 30, fixed.AmountOff(30), 0.001)

	full := DiscountDescriptor{Code: "FIRSTMOVE", Kind: DiscountPercent, Percent: 100}
	require.InDelta(t, 380, full.AmountOff(380), 0.001)
}

func TestBookingDraft_QuoteFresh(t *testing.T) {
	draft := &BookingDraft{}
	require.False(t, draft.QuoteFresh("abc"))

	draft.Quote = &PriceQuote{Fingerprint: "abc"}
	require.True(t, draft.QuoteFresh("abc"))
	require.False(t, draft.QuoteFresh("def"))
}
