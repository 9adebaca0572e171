package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// expiryWindow bounds the card expiry year to [currentYear, currentYear+n].
const expiryWindow = 20

var (
	reEmail = regexp.MustCompile(`^\S+@gmail\.com$`)
	rePhone = regexp.MustCompile(`^\d{10}$`)
	reCard  = regexp.MustCompile(`^\d{16}$`)
	reCVV   = regexp.MustCompile(`^\d{3,4}$`)
)

// CheckoutForm carries the raw billing/payment field values.
type CheckoutForm struct {
	FirstName   string
	LastName    string
	Address     string
	Town        string
	State       string
	Postcode    string
	Email       string
	Phone       string
	CardNumber  string
	ExpiryMonth string
	ExpiryYear  string
	CVV         string
}

// CheckoutResult maps failed field names to their messages. Every field is
// evaluated; a field absent from Errors passed its rules.
type CheckoutResult struct {
	Errors map[string]string
}

func (r CheckoutResult) OK() bool { return len(r.Errors) == 0 }

// Failed reports whether the named field carries an error, for template
// annotation.
func (r CheckoutResult) Failed(field string) bool {
	_, bad := r.Errors[field]
	return bad
}

type fieldRule struct {
	name  string
	label string
	value func(CheckoutForm) string
	check func(string, time.Time) string // extra rule beyond required; "" = pass
}

func pass(string, time.Time) string { return "" }

var checkoutRules = []fieldRule{
	{"f_name", "First Name", func(f CheckoutForm) string { return f.FirstName }, pass},
	{"l_name", "Last Name", func(f CheckoutForm) string { return f.LastName }, pass},
	{"street_address", "Street Address", func(f CheckoutForm) string { return f.Address }, pass},
	{"town", "Town / City", func(f CheckoutForm) string { return f.Town }, pass},
	{"state", "State", func(f CheckoutForm) string { return f.State }, pass},
	{"postcode", "Postcode / Zip", func(f CheckoutForm) string { return f.Postcode }, pass},
	{"email", "Email", func(f CheckoutForm) string { return f.Email }, checkEmail},
	{"phone", "Phone", func(f CheckoutForm) string { return f.Phone }, checkPhone},
	{"card_number", "Card Number", func(f CheckoutForm) string { return f.CardNumber }, checkCard},
	{"expiry_month", "Expiry Month", func(f CheckoutForm) string { return f.ExpiryMonth }, checkMonth},
	{"expiry_year", "Expiry Year", func(f CheckoutForm) string { return f.ExpiryYear }, checkYear},
	{"cvv", "CVV", func(f CheckoutForm) string { return f.CVV }, checkCVV},
}

// Checkout evaluates every field independently and annotates all failures in
// one pass; it never stops at the first bad field.
func Checkout(f CheckoutForm, now time.Time) CheckoutResult {
	res := CheckoutResult{Errors: map[string]string{}}
	for _, rule := range checkoutRules {
		v := strings.TrimSpace(rule.value(f))
		if v == "" {
			res.Errors[rule.name] = rule.label + " is required."
			continue
		}
		if msg := rule.check(v, now); msg != "" {
			res.Errors[rule.name] = msg
		}
	}
	return res
}

func checkEmail(v string, _ time.Time) string {
	if !reEmail.MatchString(v) {
		return "Only @gmail.com emails are allowed."
	}
	return ""
}

func checkPhone(v string, _ time.Time) string {
	if !rePhone.MatchString(v) {
		return "Phone must be 10 digits with no spaces."
	}
	return ""
}

func checkCard(v string, _ time.Time) string {
	cleaned := strings.Join(strings.Fields(v), "")
	if !reCard.MatchString(cleaned) {
		return "Card number must be exactly 16 digits."
	}
	return ""
}

func checkMonth(v string, _ time.Time) string {
	mm, err := strconv.Atoi(v)
	if err != nil || mm < 1 || mm > 12 {
		return "Month must be between 01 and 12."
	}
	return ""
}

func checkYear(v string, now time.Time) string {
	yyyy, err := strconv.Atoi(v)
	cur := now.Year()
	if err != nil || yyyy < cur || yyyy > cur+expiryWindow {
		return fmt.Sprintf("Year must be between %d and %d.", cur, cur+expiryWindow)
	}
	return ""
}

func checkCVV(v string, _ time.Time) string {
	if !reCVV.MatchString(v) {
		return "CVV must be 3 or 4 digits."
	}
	return ""
}
