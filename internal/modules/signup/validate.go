package signup

import (
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateField checks a single form field by its dotted path and returns an
// error message, or "" when the value passes. It is a pure function: form is
// only consulted for sibling state (confirm password, payment method,
// same-address flag) and is never mutated.
func ValidateField(path string, value string, form *FormData) string {
	// Shipping fields are only validated when the dealer entered a separate
	// shipping address.
	if strings.HasPrefix(path, "shippingAddress.") {
		if form != nil && form.UseSameAddress {
			return ""
		}
		path = strings.TrimPrefix(path, "shippingAddress.")
		return validateAddressField(path, value)
	}
	if strings.HasPrefix(path, "billingAddress.") {
		path = strings.TrimPrefix(path, "billingAddress.")
		return validateAddressField(path, value)
	}

	switch path {
	case "shopName":
		if strings.TrimSpace(value) == "" {
			return "Shop name is required"
		}
	case "email":
		if strings.TrimSpace(value) == "" {
			return "Email is required"
		}
		if !emailPattern.MatchString(value) {
			return "Invalid email address"
		}
	case "primaryContactEmail":
		// Optional field: empty is valid.
		if value != "" && !emailPattern.MatchString(value) {
			return "Invalid email address"
		}
	case "phone":
		if len(strings.TrimSpace(value)) < 10 {
			return "Phone number must be at least 10 digits"
		}
	case "firstName":
		if strings.TrimSpace(value) == "" {
			return "First name is required"
		}
	case "lastName":
		if strings.TrimSpace(value) == "" {
			return "Last name is required"
		}
	case "password":
		return validatePassword(value)
	case "confirmPassword":
		if strings.TrimSpace(value) == "" {
			return "Confirm password is required"
		}
		if form != nil && value != form.Password {
			return "Passwords don't match"
		}
	case "preferredPaymentMethod":
		switch PaymentMethod(value) {
		case PaymentCreditCard, PaymentZelle, PaymentPayPal:
		default:
			return "Select a valid payment method"
		}
	case "paymentMethodId":
		if form == nil {
			return ""
		}
		switch form.PreferredPayment {
		case PaymentPayPal:
			if strings.TrimSpace(value) == "" {
				return "PayPal ID is required"
			}
		case PaymentZelle:
			if strings.TrimSpace(value) == "" {
				return "Zelle ID is required"
			}
		}
	case "termsAccepted":
		if value != "true" {
			return "You must accept the terms and conditions"
		}
	}
	return ""
}

// validatePassword applies the rule chain in order and reports only the
// first failure: length, lowercase, uppercase, number, special character.
func validatePassword(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Password is required"
	}
	if len(value) < 8 {
		return "Password must be at least 8 characters"
	}
	if !containsFunc(value, unicode.IsLower) {
		return "Password must contain at least one lowercase letter"
	}
	if !containsFunc(value, unicode.IsUpper) {
		return "Password must contain at least one uppercase letter"
	}
	if !containsFunc(value, unicode.IsDigit) {
		return "Password must contain at least one number"
	}
	if !containsFunc(value, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		return "Password must contain at least one special character"
	}
	return ""
}

func validateAddressField(field, value string) string {
	switch field {
	case "street":
		if strings.TrimSpace(value) == "" {
			return "Street address is required"
		}
	case "city":
		if strings.TrimSpace(value) == "" {
			return "City is required"
		}
	case "state":
		if strings.TrimSpace(value) == "" {
			return "State is required"
		}
	case "zipCode":
		if len(strings.TrimSpace(value)) < 5 {
			return "Zip code must be at least 5 digits"
		}
	case "country":
		if strings.TrimSpace(value) == "" {
			return "Country is required"
		}
	}
	return ""
}

func containsFunc(s string, fn func(rune) bool) bool {
	for _, r := range s {
		if fn(r) {
			return true
		}
	}
	return false
}

// stepFields maps each wizard step to the fields its Next/Submit must pass.
var stepFields = [StepCount][]string{
	{"shopName"},
	{"email", "password", "confirmPassword"},
	{"phone", "firstName", "lastName", "primaryContactEmail"},
	{
		"billingAddress.street", "billingAddress.city", "billingAddress.state",
		"billingAddress.zipCode", "billingAddress.country",
		"preferredPaymentMethod", "paymentMethodId",
		"shippingAddress.street", "shippingAddress.city", "shippingAddress.state",
		"shippingAddress.zipCode", "shippingAddress.country",
	},
	{"termsAccepted"},
}

// ValidateStep runs every validator for the given step. The returned map
// holds only failing fields, keyed by dotted path; ok is true when all pass.
func ValidateStep(step int, form *FormData) (map[string]string, bool) {
	errs := map[string]string{}
	if step < 0 || step >= StepCount {
		return errs, false
	}
	for _, field := range stepFields[step] {
		if msg := ValidateField(field, form.Field(field), form); msg != "" {
			errs[field] = msg
		}
	}
	return errs, len(errs) == 0
}
