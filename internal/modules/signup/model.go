package signup

import "strconv"

// PaymentMethod is the dealer's preferred payout method.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentZelle      PaymentMethod = "zelle"
	PaymentPayPal     PaymentMethod = "paypal"
)

// Address is one postal address block on the signup form.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// FormData is the full signup wizard payload. Field names on the wire match
// the dealer API contract.
type FormData struct {
	ShopName            string        `json:"shopName"`
	Email               string        `json:"email"`
	Phone               string        `json:"phone"`
	FirstName           string        `json:"firstName"`
	LastName            string        `json:"lastName"`
	PrimaryContactEmail string        `json:"primaryContactEmail"`
	Password            string        `json:"password"`
	ConfirmPassword     string        `json:"confirmPassword"`
	PreferredPayment    PaymentMethod `json:"preferredPaymentMethod"`
	PaymentMethodID     string        `json:"paymentMethodId"`
	BillingAddress      Address       `json:"billingAddress"`
	ShippingAddress     Address       `json:"shippingAddress"`
	UseSameAddress      bool          `json:"useSameAddress"`
	TermsAccepted       bool          `json:"termsAccepted"`
}

// NewFormData returns the wizard's initial form state.
func NewFormData() *FormData {
	return &FormData{PreferredPayment: PaymentCreditCard}
}

// Field reads a form value by its dotted path ("billingAddress.city").
// Booleans are rendered as "true"/"false"; unknown paths read as "".
func (f *FormData) Field(path string) string {
	switch path {
	case "shopName":
		return f.ShopName
	case "email":
		return f.Email
	case "phone":
		return f.Phone
	case "firstName":
		return f.FirstName
	case "lastName":
		return f.LastName
	case "primaryContactEmail":
		return f.PrimaryContactEmail
	case "password":
		return f.Password
	case "confirmPassword":
		return f.ConfirmPassword
	case "preferredPaymentMethod":
		return string(f.PreferredPayment)
	case "paymentMethodId":
		return f.PaymentMethodID
	case "useSameAddress":
		return strconv.FormatBool(f.UseSameAddress)
	case "termsAccepted":
		return strconv.FormatBool(f.TermsAccepted)
	case "billingAddress.street":
		return f.BillingAddress.Street
	case "billingAddress.city":
		return f.BillingAddress.City
	case "billingAddress.state":
		return f.BillingAddress.State
	case "billingAddress.zipCode":
		return f.BillingAddress.ZipCode
	case "billingAddress.country":
		return f.BillingAddress.Country
	case "shippingAddress.street":
		return f.ShippingAddress.Street
	case "shippingAddress.city":
		return f.ShippingAddress.City
	case "shippingAddress.state":
		return f.ShippingAddress.State
	case "shippingAddress.zipCode":
		return f.ShippingAddress.ZipCode
	case "shippingAddress.country":
		return f.ShippingAddress.Country
	}
	return ""
}

// SetField writes a form value by its dotted path. Boolean fields accept
// anything strconv.ParseBool does; unknown paths are ignored.
func (f *FormData) SetField(path, value string) {
	switch path {
	case "shopName":
		f.ShopName = value
	case "email":
		f.Email = value
	case "phone":
		f.Phone = value
	case "firstName":
		f.FirstName = value
	case "lastName":
		f.LastName = value
	case "primaryContactEmail":
		f.PrimaryContactEmail = value
	case "password":
		f.Password = value
	case "confirmPassword":
		f.ConfirmPassword = value
	case "preferredPaymentMethod":
		f.PreferredPayment = PaymentMethod(value)
	case "paymentMethodId":
		f.PaymentMethodID = value
	case "useSameAddress":
		b, err := strconv.ParseBool(value)
		if err == nil {
			f.UseSameAddress = b
		}
	case "termsAccepted":
		b, err := strconv.ParseBool(value)
		if err == nil {
			f.TermsAccepted = b
		}
	case "billingAddress.street":
		f.BillingAddress.Street = value
	case "billingAddress.city":
		f.BillingAddress.City = value
	case "billingAddress.state":
		f.BillingAddress.State = value
	case "billingAddress.zipCode":
		f.BillingAddress.ZipCode = value
	case "billingAddress.country":
		f.BillingAddress.Country = value
	case "shippingAddress.street":
		f.ShippingAddress.Street = value
	case "shippingAddress.city":
		f.ShippingAddress.City = value
	case "shippingAddress.state":
		f.ShippingAddress.State = value
	case "shippingAddress.zipCode":
		f.ShippingAddress.ZipCode = value
	case "shippingAddress.country":
		f.ShippingAddress.Country = value
	}
}

// ShopSuggestion is one entry from the remote shop directory lookup.
type ShopSuggestion struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
	MainText    string `json:"main_text"`
}
