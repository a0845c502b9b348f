package entities

import (
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// NextSetup is the submit-for-review marker carried in a step's next field
const NextSetup = "setup"

// Fixed redirect targets
const (
	RedirectPending   = "/pending"
	RedirectDashboard = "/dashboard"
)

// Step1Input carries the business-info screen submission
type Step1Input struct {
	Business    string   `json:"business"`
	Phone       string   `json:"phone"`
	Phones      []string `json:"phones"`
	AwayMessage string   `json:"awayMessage"`
	Next        string   `json:"next"`
}

// Step2Input carries the notification-channels screen submission
type Step2Input struct {
	SmsEnabled       bool   `json:"smsEnabled"`
	SmsTemplate      string `json:"smsTemplate"`
	FacebookEnabled  bool   `json:"facebookEnabled"`
	TwitterEnabled   bool   `json:"twitterEnabled"`
	AgentEnabled     bool   `json:"agentEnabled"`
	CheckoutInterval int    `json:"checkoutInterval"`
	Next             string `json:"next"`
}

// Step3Input carries the chat-tier screen submission. Tiers is the single
// encoded block holding all conversation tiers in order.
type Step3Input struct {
	ChatEnabled bool          `json:"chatEnabled"`
	Tiers       [][]TierEntry `json:"tiers"`
	Next        string        `json:"next"`
}

// Step4Input carries the package-selection screen submission. Package and
// Agree apply to new merchants; NextPackage applies to onboarded ones.
type Step4Input struct {
	Package     string `json:"package"`
	Agree       bool   `json:"agree"`
	NextPackage string `json:"nextPackage"`
	Next        string `json:"next"`
}

// StepResult is the uniform outcome of a step submission: where to send the
// merchant next and whether to acknowledge the save.
type StepResult struct {
	Redirect string `json:"redirect"`
	Saved    bool   `json:"saved"`
}

// Step1Form is the business-info screen prefill
type Step1Form struct {
	Business    string   `json:"business"`
	Phone       string   `json:"phone"`
	Phones      []string `json:"phones"`
	AwayMessage string   `json:"awayMessage"`
}

// Step2Form is the notification-channels screen prefill
type Step2Form struct {
	SmsEnabled       bool   `json:"smsEnabled"`
	SmsTemplate      string `json:"smsTemplate"`
	FacebookEnabled  bool   `json:"facebookEnabled"`
	TwitterEnabled   bool   `json:"twitterEnabled"`
	AgentEnabled     bool   `json:"agentEnabled"`
	CheckoutInterval int    `json:"checkoutInterval"`
}

// Step3Form is the chat-tier screen prefill
type Step3Form struct {
	ChatEnabled bool          `json:"chatEnabled"`
	Tiers       [][]TierEntry `json:"tiers"`
}

// Step4Form is the package-selection screen prefill
type Step4Form struct {
	Package     string `json:"package"`
	NextPackage string `json:"nextPackage"`
	Agree       bool   `json:"agree"`
}

// SetupStatusResponse summarises onboarding state for the status screen
type SetupStatusResponse struct {
	MerchantID     uuid.UUID      `json:"merchantId"`
	Status         MerchantStatus `json:"status"`
	Progress       int            `json:"progress"`
	Package        string         `json:"package"`
	PendingPackage string         `json:"pendingPackage,omitempty"`
	PendingSince   null.Time      `json:"pendingPackageSince,omitempty"`
	Message        string         `json:"message"`
}
