package payment

const (
	// StatusAuthorized means the bank approved the payment.
	StatusAuthorized = "Authorized"
	// StatusDeclined means the bank refused the payment.
	StatusDeclined = "Declined"
)

// Payment is the stored, masked outcome of one processed payment attempt.
// It never carries the full card number or the CVV and is immutable once
// created.
type Payment struct {
	ID                 string `json:"id"`
	Status             string `json:"status"`
	CardNumberLastFour string `json:"card_number_last_four"`
	ExpiryMonth        int    `json:"expiry_month"`
	ExpiryYear         int    `json:"expiry_year"`
	Currency           string `json:"currency"`
	Amount             int64  `json:"amount"`
}

// ProcessInput captures one candidate payment request. Expiry month, expiry
// year and amount are pointers so a missing field can be told apart from an
// out-of-range zero.
type ProcessInput struct {
	CardNumber  string
	ExpiryMonth *int
	ExpiryYear  *int
	Currency    string
	Amount      *int64
	CVV         string
}
