package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnboarded(t *testing.T) {
	tests := []struct {
		status MerchantStatus
		want   bool
	}{
		{MerchantStatusNew, false},
		{MerchantStatusPending, true},
		{MerchantStatusActive, true},
		{MerchantStatusSuspended, true},
		{MerchantStatusRejected, true},
	}

	for _, tt := range tests {
		m := &Merchant{Status: tt.status}
		assert.Equal(t, tt.want, m.Onboarded(), "status %s", tt.status)
	}
}

func TestDefaultTiers(t *testing.T) {
	tiers := DefaultTiers()

	assert.Len(t, tiers, TierCount)
	for i, tier := range tiers {
		assert.NotEmpty(t, tier, "tier %d", i)
		for _, entry := range tier {
			assert.NotEmpty(t, entry.Label)
			assert.NotEmpty(t, entry.Text)
		}
	}

	// callers may mutate the returned slice without affecting later calls
	tiers[0][0].Label = "changed"
	assert.Equal(t, "Sales", DefaultTiers()[0][0].Label)
}
