package payment

import (
	"strings"
	"time"
)

var supportedCurrencies = map[string]struct{}{
	"USD": {},
	"GBP": {},
	"EUR": {},
}

// Validate checks a payment request against every rule and returns all
// violations at once, in rule order, rather than stopping at the first
// failure. The reported messages are part of the API contract. An empty slice
// means the request is valid.
//
// Expiry recency is judged against the supplied date: a card expiring in the
// current calendar month is valid through its last day.
func Validate(input ProcessInput, today time.Time) []string {
	var errs []string

	errs = validateCardNumber(input.CardNumber, errs)
	errs = validateExpiryDate(input.ExpiryMonth, input.ExpiryYear, today, errs)
	errs = validateCurrency(input.Currency, errs)
	errs = validateAmount(input.Amount, errs)
	errs = validateCVV(input.CVV, errs)

	return errs
}

func validateCardNumber(cardNumber string, errs []string) []string {
	if strings.TrimSpace(cardNumber) == "" {
		return append(errs, "Card number is required")
	}
	if len(cardNumber) < 14 || len(cardNumber) > 19 {
		errs = append(errs, "Card number must be between 14 and 19 characters")
	}
	if !digitsOnly(cardNumber) {
		errs = append(errs, "Card number must contain only digits")
	}
	return errs
}

// validateExpiryDate checks year and month individually, then, only when both
// are present and in range, checks that the card has not expired.
func validateExpiryDate(month, year *int, today time.Time, errs []string) []string {
	if year == nil {
		errs = append(errs, "Expiry year is required")
	} else if *year < 1 || *year > 9999 {
		errs = append(errs, "Expiry year must be between 1 and 9999")
	}
	if month == nil {
		errs = append(errs, "Expiry month is required")
	} else if *month < 1 || *month > 12 {
		errs = append(errs, "Expiry month must be between 1 and 12")
	}
	if month == nil || year == nil {
		return errs
	}
	if *year < 1 || *year > 9999 || *month < 1 || *month > 12 {
		return errs
	}

	// Day zero of the following month is the last day of the expiry month.
	lastDay := time.Date(*year, time.Month(*month)+1, 0, 0, 0, 0, 0, time.UTC)
	current := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if lastDay.Before(current) {
		errs = append(errs, "Card has expired")
	}
	return errs
}

func validateCurrency(currency string, errs []string) []string {
	if strings.TrimSpace(currency) == "" {
		return append(errs, "Currency is required")
	}
	if _, ok := supportedCurrencies[currency]; !ok {
		errs = append(errs, "Currency must be one of: USD, GBP, EUR")
	}
	return errs
}

func validateAmount(amount *int64, errs []string) []string {
	if amount == nil {
		return append(errs, "Amount is required")
	}
	if *amount <= 0 {
		errs = append(errs, "Amount must be greater than zero")
	}
	return errs
}

func validateCVV(cvv string, errs []string) []string {
	if strings.TrimSpace(cvv) == "" {
		return append(errs, "CVV is required")
	}
	if len(cvv) < 3 || len(cvv) > 4 {
		errs = append(errs, "CVV must be 3 or 4 characters")
	}
	if !digitsOnly(cvv) {
		errs = append(errs, "CVV must contain only digits")
	}
	return errs
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
