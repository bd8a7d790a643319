package signup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dirwin/dealerportal/internal/gateway"
)

// StepCount is the number of wizard steps.
const StepCount = 5

// StepNames labels the wizard steps in order.
var StepNames = [StepCount]string{
	"Shop Information",
	"Account Details",
	"Contact Details",
	"Address",
	"Review & Submit",
}

// errShopNotSelected gates step 0: a non-empty shop name is not enough, the
// dealer must pick a suggestion from the directory lookup.
const errShopNotSelected = "Please search and select your shop from the list"

// minShopQueryLen is the shortest free-text input that triggers a lookup.
const minShopQueryLen = 3

// ShopDirectory looks up shop suggestions for the free-text shop name input.
type ShopDirectory interface {
	SearchShops(ctx context.Context, businessName string) ([]ShopSuggestion, error)
}

// Registrar submits the completed signup payload to the dealer API.
type Registrar interface {
	Register(ctx context.Context, form *FormData) error
}

// Wizard drives the five-step dealer signup: it owns the form data, the step
// index, and the per-field error map, and gates every forward transition on
// the step validator.
type Wizard struct {
	directory ShopDirectory
	registrar Registrar
	logger    *slog.Logger

	form         *FormData
	step         int
	errs         map[string]string
	shopSelected bool
}

// NewWizard creates a wizard at step 0 with a blank form.
func NewWizard(directory ShopDirectory, registrar Registrar, logger *slog.Logger) *Wizard {
	return &Wizard{
		directory: directory,
		registrar: registrar,
		logger:    logger,
		form:      NewFormData(),
		errs:      map[string]string{},
	}
}

// Step returns the active step index, 0 through 4.
func (w *Wizard) Step() int { return w.step }

// Form exposes the live form state.
func (w *Wizard) Form() *FormData { return w.form }

// Errors returns the current field-path -> message map.
func (w *Wizard) Errors() map[string]string { return w.errs }

// Error returns the message for one field, or "".
func (w *Wizard) Error(field string) string { return w.errs[field] }

// SetField writes one field and clears any stale error on it, mirroring the
// form's input-change behaviour. The useSameAddress path goes through
// SetUseSameAddress for its snapshot side effect.
func (w *Wizard) SetField(path, value string) {
	if path == "useSameAddress" {
		w.SetUseSameAddress(value == "true")
		return
	}
	w.form.SetField(path, value)
	delete(w.errs, path)
}

// SetUseSameAddress toggles address mirroring. Turning it on snapshots the
// current billing address into shipping; turning it off clears shipping to
// empty values so the dealer types a fresh address.
func (w *Wizard) SetUseSameAddress(same bool) {
	w.form.UseSameAddress = same
	if same {
		w.form.ShippingAddress = w.form.BillingAddress
		for _, field := range []string{
			"shippingAddress.street", "shippingAddress.city", "shippingAddress.state",
			"shippingAddress.zipCode", "shippingAddress.country",
		} {
			delete(w.errs, field)
		}
	} else {
		w.form.ShippingAddress = Address{}
	}
}

// SearchShops queries the shop directory once the input has at least three
// characters. Any pending selection is discarded: typing always invalidates
// the confirmed-shop flag.
func (w *Wizard) SearchShops(ctx context.Context, input string) ([]ShopSuggestion, error) {
	w.shopSelected = false
	w.form.ShopName = ""

	input = strings.TrimSpace(input)
	if len(input) < minShopQueryLen {
		return nil, nil
	}

	suggestions, err := w.directory.SearchShops(ctx, input)
	if err != nil {
		w.errs["shopName"] = gateway.UserMessage(err)
		return nil, fmt.Errorf("shop lookup: %w", err)
	}
	return suggestions, nil
}

// SelectShop confirms one suggestion from the directory, copying its main
// text into the shop name and setting the flag Next requires on step 0.
func (w *Wizard) SelectShop(suggestion ShopSuggestion) {
	name := suggestion.MainText
	if name == "" {
		name = suggestion.Description
	}
	w.form.ShopName = name
	w.shopSelected = true
	delete(w.errs, "shopName")
}

// ShopSelected reports whether a directory suggestion has been confirmed.
func (w *Wizard) ShopSelected() bool { return w.shopSelected }

// Next validates the active step and advances on success. It reports whether
// the step changed; on failure the error map holds the reasons. Step 0
// additionally requires a confirmed shop selection.
func (w *Wizard) Next() bool {
	if w.step >= StepCount-1 {
		return false
	}

	errs, ok := ValidateStep(w.step, w.form)
	if w.step == 0 && !w.shopSelected {
		errs["shopName"] = errShopNotSelected
		ok = false
	}
	w.errs = errs
	if !ok {
		return false
	}

	w.step++
	return true
}

// Back retreats one step without validation.
func (w *Wizard) Back() bool {
	if w.step == 0 {
		return false
	}
	w.step--
	return true
}

// Submit is only available on the final step: it validates the review step
// and posts the full payload. On failure the server's message (or a generic
// network message) is returned without advancing; the wizard stays usable
// for resubmission. On success the error state is reset and the caller is
// expected to route to login.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.step != StepCount-1 {
		return fmt.Errorf("submit is only available on the final step")
	}

	errs, ok := ValidateStep(w.step, w.form)
	w.errs = errs
	if !ok {
		return fmt.Errorf("form has validation errors")
	}

	if err := w.registrar.Register(ctx, w.form); err != nil {
		w.logger.Error("signup submission failed", "error", err)
		return fmt.Errorf("%s", gateway.UserMessage(err))
	}

	w.errs = map[string]string{}
	w.logger.Info("signup submitted", "shop", w.form.ShopName, "email", w.form.Email)
	return nil
}
