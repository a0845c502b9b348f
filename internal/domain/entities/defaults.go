package entities

// DefaultAwayMessage is shown to shoppers when no agent is available and the
// merchant has not written their own copy yet.
const DefaultAwayMessage = "You've stumped me! It looks like no one is available to address your questions. Please reach out to us at (222) 333-4444 or by email at email@email.com."

// DefaultTiers returns the seed conversation-tier content used to prefill the
// chat-tier screen until the merchant saves their own. Stored values always
// win; these are view defaults only.
func DefaultTiers() [][]TierEntry {
	return [][]TierEntry{
		{
			{Label: "Sales", Text: "Thank you for choosing Sales. Which of the following best applies for your inquiry?"},
			{Label: "Support", Text: "Thank you for choosing Support. Which of the following best applies for your inquiry?"},
		},
		{
			{Label: "Promotions", Text: "Thank you for choosing Promotions. Which of the following best applies for your inquiry?"},
			{Label: "Product Questions", Text: "Thank you for choosing Product Questions. Which of the following best applies for your inquiry?"},
		},
		{
			{Label: "Returns", Text: "Thank you for choosing Returns. Which of the following best applies for your inquiry?"},
			{Label: "Shipping", Text: "Thank you for choosing Shipping. Which of the following best applies for your inquiry?"},
		},
	}
}
