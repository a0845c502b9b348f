package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// MerchantStatus represents merchant lifecycle status
type MerchantStatus string

const (
	MerchantStatusNew       MerchantStatus = "new"
	MerchantStatusPending   MerchantStatus = "pending"
	MerchantStatusActive    MerchantStatus = "active"
	MerchantStatusSuspended MerchantStatus = "suspended"
	MerchantStatusRejected  MerchantStatus = "rejected"
)

// TierEntry is one selectable option in a chat-bot conversation tier
type TierEntry struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// TierCount is the number of ordered conversation tiers a merchant configures
const TierCount = 3

// Merchant represents a storefront merchant working through onboarding.
// Progress is the highest setup step completed, 0..4, and never decreases.
type Merchant struct {
	ID               uuid.UUID      `json:"id"`
	Domain           string         `json:"domain"`
	BusinessName     string         `json:"businessName"`
	Phone            string         `json:"phone"`
	Phones           []string       `json:"phones"`
	AwayMessage      string         `json:"awayMessage"`
	SmsEnabled       bool           `json:"smsEnabled"`
	SmsTemplate      string         `json:"smsTemplate"`
	FacebookEnabled  bool           `json:"facebookEnabled"`
	TwitterEnabled   bool           `json:"twitterEnabled"`
	AgentEnabled     bool           `json:"agentEnabled"`
	CheckoutInterval int            `json:"checkoutInterval"`
	ChatEnabled      bool           `json:"chatEnabled"`
	Tiers            [][]TierEntry  `json:"tiers"`
	Progress         int            `json:"progress"`
	Status           MerchantStatus `json:"status"`
	Package          string         `json:"package"`
	PendingPackage   string         `json:"pendingPackage"`
	PendingSince     null.Time      `json:"pendingPackageSince,omitempty"`
	AnalysedAt       null.Time      `json:"analysedAt,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	DeletedAt        null.Time      `json:"-"`
}

// Onboarded reports whether the merchant has left the initial package
// selection phase. Package changes for onboarded merchants go through the
// transition policy, never direct assignment.
func (m *Merchant) Onboarded() bool {
	return m.Status != MerchantStatusNew
}
