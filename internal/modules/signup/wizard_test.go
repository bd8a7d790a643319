package signup

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/dirwin/dealerportal/internal/gateway"
)

type stubDirectory struct {
	suggestions []ShopSuggestion
	err         error
	queries     []string
}

func (s *stubDirectory) SearchShops(ctx context.Context, businessName string) ([]ShopSuggestion, error) {
	s.queries = append(s.queries, businessName)
	if s.err != nil {
		return nil, s.err
	}
	return s.suggestions, nil
}

type stubRegistrar struct {
	err   error
	forms []*FormData
}

func (s *stubRegistrar) Register(ctx context.Context, form *FormData) error {
	if s.err != nil {
		return s.err
	}
	s.forms = append(s.forms, form)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWizard(directory *stubDirectory, registrar *stubRegistrar) *Wizard {
	return NewWizard(directory, registrar, testLogger())
}

// fillValidForm pushes a fully valid signup into the wizard's form.
func fillValidForm(w *Wizard) {
	form := w.Form()
	form.Email = "dealer@example.com"
	form.Password = "Abc123!@"
	form.ConfirmPassword = "Abc123!@"
	form.Phone = "5551234567"
	form.FirstName = "Ada"
	form.LastName = "Lovelace"
	form.BillingAddress = validAddress()
	form.UseSameAddress = true
	form.TermsAccepted = true
}

func TestNextWithoutConfirmedShopSelection(t *testing.T) {
	w := newTestWizard(&stubDirectory{}, &stubRegistrar{})
	w.Form().ShopName = "Ace Bikes" // typed, not selected

	if w.Next() {
		t.Fatal("Next advanced without a confirmed shop selection")
	}
	if w.Step() != 0 {
		t.Fatalf("step = %d, want 0", w.Step())
	}
	if got := w.Error("shopName"); got != "Please search and select your shop from the list" {
		t.Fatalf("shopName error = %q", got)
	}
}

func TestShopSearchAndSelection(t *testing.T) {
	directory := &stubDirectory{suggestions: []ShopSuggestion{
		{PlaceID: "p1", MainText: "Ace Bikes", Description: "Ace Bikes, Denver, CO"},
	}}
	w := newTestWizard(directory, &stubRegistrar{})

	// Too short: no lookup fires.
	if _, err := w.SearchShops(context.Background(), "Ac"); err != nil {
		t.Fatalf("short query errored: %v", err)
	}
	if len(directory.queries) != 0 {
		t.Fatalf("lookup fired below the minimum length: %v", directory.queries)
	}

	suggestions, err := w.SearchShops(context.Background(), "Ace")
	if err != nil {
		t.Fatalf("SearchShops: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("suggestions = %v", suggestions)
	}

	w.SelectShop(suggestions[0])
	if !w.ShopSelected() {
		t.Fatal("selection flag not set")
	}
	if w.Form().ShopName != "Ace Bikes" {
		t.Fatalf("shopName = %q", w.Form().ShopName)
	}
	if !w.Next() {
		t.Fatalf("Next failed after selection: %v", w.Errors())
	}

	// Typing again invalidates the confirmed selection.
	if _, err := w.SearchShops(context.Background(), "Ace B"); err != nil {
		t.Fatalf("SearchShops: %v", err)
	}
	if w.ShopSelected() {
		t.Fatal("typing should clear the confirmed selection")
	}
}

func TestWizardWalkThroughAndSubmit(t *testing.T) {
	directory := &stubDirectory{suggestions: []ShopSuggestion{{PlaceID: "p1", MainText: "Ace Bikes"}}}
	registrar := &stubRegistrar{}
	w := newTestWizard(directory, registrar)

	suggestions, err := w.SearchShops(context.Background(), "Ace")
	if err != nil {
		t.Fatalf("SearchShops: %v", err)
	}
	w.SelectShop(suggestions[0])
	fillValidForm(w)

	for step := 0; step < StepCount-1; step++ {
		if !w.Next() {
			t.Fatalf("Next failed at step %d: %v", step, w.Errors())
		}
	}
	if w.Step() != StepCount-1 {
		t.Fatalf("step = %d, want %d", w.Step(), StepCount-1)
	}
	// No skipping past the last step.
	if w.Next() {
		t.Fatal("Next advanced past the final step")
	}

	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(registrar.forms) != 1 {
		t.Fatalf("registrar received %d forms", len(registrar.forms))
	}
	if len(w.Errors()) != 0 {
		t.Fatalf("errors not cleared after submit: %v", w.Errors())
	}
}

func TestSubmitOnlyOnFinalStep(t *testing.T) {
	w := newTestWizard(&stubDirectory{}, &stubRegistrar{})
	if err := w.Submit(context.Background()); err == nil {
		t.Fatal("Submit allowed before the final step")
	}
}

func TestSubmitSurfacesServerMessage(t *testing.T) {
	registrar := &stubRegistrar{err: &gateway.APIError{
		Status:  http.StatusConflict,
		Message: "Email already registered",
	}}
	directory := &stubDirectory{suggestions: []ShopSuggestion{{PlaceID: "p1", MainText: "Ace Bikes"}}}
	w := newTestWizard(directory, registrar)

	suggestions, _ := w.SearchShops(context.Background(), "Ace")
	w.SelectShop(suggestions[0])
	fillValidForm(w)
	for step := 0; step < StepCount-1; step++ {
		if !w.Next() {
			t.Fatalf("Next failed at step %d: %v", step, w.Errors())
		}
	}

	err := w.Submit(context.Background())
	if err == nil {
		t.Fatal("Submit succeeded against a failing registrar")
	}
	if err.Error() != "Email already registered" {
		t.Fatalf("submit error = %q, want the server's message", err.Error())
	}
	if w.Step() != StepCount-1 {
		t.Fatal("failed submit must not change the step")
	}

	// Network-level failures get the generic message.
	registrar.err = io.ErrUnexpectedEOF
	err = w.Submit(context.Background())
	if err == nil || err.Error() != "Network error. Please try again." {
		t.Fatalf("network failure error = %v", err)
	}
}

func TestBack(t *testing.T) {
	w := newTestWizard(&stubDirectory{}, &stubRegistrar{})
	if w.Back() {
		t.Fatal("Back worked at step 0")
	}

	directory := &stubDirectory{suggestions: []ShopSuggestion{{PlaceID: "p1", MainText: "Ace Bikes"}}}
	w = newTestWizard(directory, &stubRegistrar{})
	suggestions, _ := w.SearchShops(context.Background(), "Ace")
	w.SelectShop(suggestions[0])
	if !w.Next() {
		t.Fatalf("Next: %v", w.Errors())
	}
	if !w.Back() {
		t.Fatal("Back failed at step 1")
	}
	if w.Step() != 0 {
		t.Fatalf("step = %d after Back", w.Step())
	}
}

func TestUseSameAddressSnapshotAndClear(t *testing.T) {
	w := newTestWizard(&stubDirectory{}, &stubRegistrar{})
	form := w.Form()
	form.BillingAddress = validAddress()
	form.ShippingAddress = Address{Street: "9 Old Rd"}

	w.SetUseSameAddress(true)
	if form.ShippingAddress != form.BillingAddress {
		t.Fatalf("shipping not snapshotted: %+v", form.ShippingAddress)
	}

	// Later billing edits must not leak into the snapshot.
	form.BillingAddress.City = "Boulder"
	if form.ShippingAddress.City != "Springfield" {
		t.Fatalf("snapshot aliased billing address: %+v", form.ShippingAddress)
	}

	w.SetUseSameAddress(false)
	if form.ShippingAddress != (Address{}) {
		t.Fatalf("shipping not cleared: %+v", form.ShippingAddress)
	}
}

func TestSetFieldClearsStaleError(t *testing.T) {
	w := newTestWizard(&stubDirectory{}, &stubRegistrar{})
	w.Next() // seeds a shopName error
	if w.Error("shopName") == "" {
		t.Fatal("expected a shopName error")
	}
	w.SetField("shopName", "Ace Bikes")
	if w.Error("shopName") != "" {
		t.Fatal("input change should clear the field's error")
	}
}
