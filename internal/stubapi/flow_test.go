package stubapi_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dirwin/dealerportal/internal/gateway"
	"github.com/dirwin/dealerportal/internal/modules/auth"
	"github.com/dirwin/dealerportal/internal/modules/orders"
	"github.com/dirwin/dealerportal/internal/modules/profile"
	"github.com/dirwin/dealerportal/internal/modules/session"
	"github.com/dirwin/dealerportal/internal/modules/signup"
	"github.com/dirwin/dealerportal/internal/notify"
	"github.com/dirwin/dealerportal/internal/stubapi"
)

// fixture wires the full client stack against an in-process dealer API, the
// same way cmd/dealerctl does it in main.
type fixture struct {
	api      *stubapi.Server
	client   *gateway.Client
	sessions *session.Store
	logger   *slog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := stubapi.New()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewStore(session.NewMemoryStorage())
	client := gateway.New(server.URL, 5*time.Second, sessions, logger)
	return &fixture{api: api, client: client, sessions: sessions, logger: logger}
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

var _ notify.Notifier = (*recordingNotifier)(nil)

func TestSignupThroughWizardThenLogin(t *testing.T) {
	fx := newFixture(t)
	fx.api.SeedSuggestions([]signup.ShopSuggestion{
		{PlaceID: "p1", Description: "Ace Bikes, Springfield, IL", MainText: "Ace Bikes"},
	})

	remote := signup.NewRemoteAPI(fx.client)
	wizard := signup.NewWizard(remote, remote, fx.logger)
	ctx := context.Background()

	suggestions, err := wizard.SearchShops(ctx, "Ace")
	if err != nil {
		t.Fatalf("SearchShops: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("suggestions = %d, want 1", len(suggestions))
	}
	wizard.SelectShop(suggestions[0])
	if !wizard.Next() {
		t.Fatalf("step 0 failed: %v", wizard.Errors())
	}

	wizard.SetField("email", "new@dealer.example")
	wizard.SetField("password", "Abc123!@")
	wizard.SetField("confirmPassword", "Abc123!@")
	if !wizard.Next() {
		t.Fatalf("step 1 failed: %v", wizard.Errors())
	}

	wizard.SetField("phone", "2175550134")
	wizard.SetField("firstName", "Nora")
	wizard.SetField("lastName", "Shore")
	wizard.SetField("primaryContactEmail", "owner@dealer.example")
	if !wizard.Next() {
		t.Fatalf("step 2 failed: %v", wizard.Errors())
	}

	wizard.SetField("billingAddress.street", "1 Main St")
	wizard.SetField("billingAddress.city", "Springfield")
	wizard.SetField("billingAddress.state", "IL")
	wizard.SetField("billingAddress.zipCode", "62701")
	wizard.SetField("billingAddress.country", "USA")
	wizard.SetField("paymentMethodId", "4242424242424242")
	wizard.SetUseSameAddress(true)
	if !wizard.Next() {
		t.Fatalf("step 3 failed: %v", wizard.Errors())
	}

	wizard.SetField("termsAccepted", "true")
	if err := wizard.Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// The registered account must be able to log in with the same password.
	logins := auth.NewService(auth.NewRemoteAPI(fx.client), fx.sessions, fx.logger)
	if err := logins.Login(ctx, "new@dealer.example", "Abc123!@"); err != nil {
		t.Fatalf("Login after signup: %v", err)
	}
	if !fx.sessions.IsValid() {
		t.Fatal("session token missing after login")
	}
}

func TestLoginWrongPasswordShowsServerMessage(t *testing.T) {
	fx := newFixture(t)
	fx.api.SeedDealer("dealer@example.com", "secret1", "Ace Bikes")

	logins := auth.NewService(auth.NewRemoteAPI(fx.client), fx.sessions, fx.logger)
	err := logins.Login(context.Background(), "dealer@example.com", "wrong")
	if err == nil {
		t.Fatal("login succeeded with a wrong password")
	}
	// The dealer sees the server's own message, not the session-expiry text.
	if err.Error() != "Invalid credentials" {
		t.Fatalf("login error shown = %q, want %q", err.Error(), "Invalid credentials")
	}
	if fx.sessions.Token() != "" {
		t.Fatal("no session may be stored on failed login")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	fx := newFixture(t)
	fx.api.SeedDealer("dealer@example.com", "secret1", "Ace Bikes")

	ctx := context.Background()
	logins := auth.NewService(auth.NewRemoteAPI(fx.client), fx.sessions, fx.logger)
	if err := logins.Login(ctx, "dealer@example.com", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	profiles := profile.NewService(profile.NewRemoteAPI(fx.client), fx.sessions, fx.logger)
	p, err := profiles.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.ShopName != "Ace Bikes" {
		t.Fatalf("shopName = %q", p.ShopName)
	}

	p.City = "Chicago"
	updated, err := profiles.Update(ctx, p)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.City != "Chicago" {
		t.Fatalf("city after update = %q", updated.City)
	}

	again, err := profiles.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.City != "Chicago" {
		t.Fatalf("city after reload = %q", again.City)
	}
}

func TestOrdersAcceptFlow(t *testing.T) {
	fx := newFixture(t)
	dealerID := fx.api.SeedDealer("dealer@example.com", "secret1", "Ace Bikes")
	fx.api.SeedOrders([]orders.Order{
		{
			OrderID:     "o1",
			OrderNumber: "#1001",
			FirstName:   "Sam",
			LastName:    "Rider",
			TotalPrice:  decimal.NewFromFloat(899.00),
			AssemblyFee: decimal.NewFromFloat(49.99),
			Assignment:  orders.AssignmentPending,
			CreatedAt:   time.Now().UTC(),
		},
	})

	ctx := context.Background()
	logins := auth.NewService(auth.NewRemoteAPI(fx.client), fx.sessions, fx.logger)
	if err := logins.Login(ctx, "dealer@example.com", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	notifier := &recordingNotifier{}
	ctl := orders.NewController(orders.NewRemoteAPI(fx.client), fx.sessions, notifier, fx.logger, dealerID)
	if err := ctl.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(ctl.Orders()) != 1 {
		t.Fatalf("orders = %d, want 1", len(ctl.Orders()))
	}

	if err := ctl.RequestAction(orders.AssignmentApproved, "o1"); err != nil {
		t.Fatalf("RequestAction: %v", err)
	}
	if err := ctl.ConfirmAction(ctx); err != nil {
		t.Fatalf("ConfirmAction: %v", err)
	}

	stored, ok := fx.api.Order("o1")
	if !ok {
		t.Fatal("order o1 lost")
	}
	if stored.Assignment != orders.AssignmentApproved {
		t.Fatalf("assignment = %q", stored.Assignment)
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != "Successfully approved order request." {
		t.Fatalf("success toasts = %v", notifier.successes)
	}
}

func TestPasswordRecoveryFlow(t *testing.T) {
	fx := newFixture(t)
	fx.api.SeedDealer("dealer@example.com", "secret1", "Ace Bikes")

	ctx := context.Background()
	remote := auth.NewRemoteAPI(fx.client)
	recovery := auth.NewRecovery(remote, fx.logger)

	if _, err := recovery.RequestOTP(ctx, "dealer@example.com"); err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}
	if _, err := recovery.VerifyOTP(ctx, "000000"); err == nil {
		t.Fatal("wrong OTP must fail")
	}
	if _, err := recovery.VerifyOTP(ctx, stubapi.FixedOTP); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if _, err := recovery.ResetPassword(ctx, "newpass7", "newpass7"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	logins := auth.NewService(remote, fx.sessions, fx.logger)
	if err := logins.Login(ctx, "dealer@example.com", "secret1"); err == nil {
		t.Fatal("old password must no longer work")
	}
	if err := logins.Login(ctx, "dealer@example.com", "newpass7"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}
