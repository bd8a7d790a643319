package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dirwin/dealerportal/internal/modules/signup"
)

// prompter reads line-oriented answers from stdin.
type prompter struct {
	reader *bufio.Reader
}

func newPrompter() *prompter {
	return &prompter{reader: bufio.NewReader(os.Stdin)}
}

func (p *prompter) ask(label string) string {
	fmt.Print(label)
	line, _ := p.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (p *prompter) askBool(label string) bool {
	answer := strings.ToLower(p.ask(label + " [y/N]: "))
	return answer == "y" || answer == "yes"
}

// stepPrompts lists, per wizard step, the fields collected from the dealer.
var stepPrompts = [signup.StepCount][]struct {
	path  string
	label string
}{
	1: {
		{"email", "Email: "},
		{"password", "Password: "},
		{"confirmPassword", "Confirm password: "},
	},
	2: {
		{"phone", "Phone: "},
		{"firstName", "First name: "},
		{"lastName", "Last name: "},
		{"primaryContactEmail", "Primary contact email (optional): "},
	},
	3: {
		{"billingAddress.street", "Billing street: "},
		{"billingAddress.city", "Billing city: "},
		{"billingAddress.state", "Billing state: "},
		{"billingAddress.zipCode", "Billing zip code: "},
		{"billingAddress.country", "Billing country: "},
	},
}

// runSignup walks the five-step wizard on the terminal. Each step loops
// until its validators pass, mirroring the form's blocked-Next behaviour.
func (a *app) runSignup(ctx context.Context, wizard *signup.Wizard) error {
	reader := newPrompter()
	fmt.Println("Dealer registration")

	for {
		step := wizard.Step()
		fmt.Printf("\nStep %d of %d — %s\n", step+1, signup.StepCount, signup.StepNames[step])

		switch step {
		case 0:
			if err := a.promptShop(ctx, reader, wizard); err != nil {
				return err
			}
		case 3:
			a.promptFields(reader, wizard, step)
			a.promptPayment(reader, wizard)
			a.promptShipping(reader, wizard)
		case signup.StepCount - 1:
			a.promptReview(reader, wizard)
			if err := wizard.Submit(ctx); err != nil {
				printErrors(wizard)
				fmt.Printf("Signup failed: %v\n", err)
				if !reader.askBool("Try again?") {
					return err
				}
				continue
			}
			fmt.Println("Signup successful! Please log in.")
			return nil
		default:
			a.promptFields(reader, wizard, step)
		}

		if !wizard.Next() {
			printErrors(wizard)
		}
	}
}

func (a *app) promptShop(ctx context.Context, reader *prompter, wizard *signup.Wizard) error {
	for {
		input := reader.ask("Search your shop (3+ characters): ")
		suggestions, err := wizard.SearchShops(ctx, input)
		if err != nil {
			fmt.Printf("Lookup failed: %s\n", wizard.Error("shopName"))
			continue
		}
		if len(suggestions) == 0 {
			fmt.Println("No matches found, keep typing your business name.")
			continue
		}

		for i, s := range suggestions {
			fmt.Printf("  %d) %s — %s\n", i+1, s.MainText, s.Description)
		}
		choice := reader.ask("Pick a number (or press enter to search again): ")
		var idx int
		if _, err := fmt.Sscanf(choice, "%d", &idx); err != nil || idx < 1 || idx > len(suggestions) {
			continue
		}
		wizard.SelectShop(suggestions[idx-1])
		return nil
	}
}

func (a *app) promptFields(reader *prompter, wizard *signup.Wizard, step int) {
	for _, field := range stepPrompts[step] {
		wizard.SetField(field.path, reader.ask(field.label))
	}
}

func (a *app) promptPayment(reader *prompter, wizard *signup.Wizard) {
	method := reader.ask("Preferred payment method (credit_card/zelle/paypal) [credit_card]: ")
	if method == "" {
		method = string(signup.PaymentCreditCard)
	}
	wizard.SetField("preferredPaymentMethod", method)
	if method == string(signup.PaymentZelle) || method == string(signup.PaymentPayPal) {
		wizard.SetField("paymentMethodId", reader.ask("Payment account ID: "))
	}
}

func (a *app) promptShipping(reader *prompter, wizard *signup.Wizard) {
	if reader.askBool("Use billing address for shipping?") {
		wizard.SetUseSameAddress(true)
		return
	}
	wizard.SetUseSameAddress(false)
	for _, field := range []struct{ path, label string }{
		{"shippingAddress.street", "Shipping street: "},
		{"shippingAddress.city", "Shipping city: "},
		{"shippingAddress.state", "Shipping state: "},
		{"shippingAddress.zipCode", "Shipping zip code: "},
		{"shippingAddress.country", "Shipping country: "},
	} {
		wizard.SetField(field.path, reader.ask(field.label))
	}
}

func (a *app) promptReview(reader *prompter, wizard *signup.Wizard) {
	form := wizard.Form()
	fmt.Println("Review your details:")
	fmt.Printf("  Shop:  %s\n", form.ShopName)
	fmt.Printf("  Email: %s\n", form.Email)
	fmt.Printf("  Name:  %s %s\n", form.FirstName, form.LastName)
	fmt.Printf("  Bill:  %s, %s, %s %s, %s\n",
		form.BillingAddress.Street, form.BillingAddress.City,
		form.BillingAddress.State, form.BillingAddress.ZipCode, form.BillingAddress.Country)
	if reader.askBool("Accept the terms of service?") {
		wizard.SetField("termsAccepted", "true")
	}
}

func printErrors(wizard *signup.Wizard) {
	for field, msg := range wizard.Errors() {
		fmt.Printf("  ! %s: %s\n", field, msg)
	}
}
