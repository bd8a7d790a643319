package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/dirwin/dealerportal/internal/modules/auth"
	"github.com/dirwin/dealerportal/internal/modules/profile"
)

func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "dealer account email")
	password := fs.String("password", "", "dealer account password")
	fs.Parse(args)

	if err := a.auth.Login(ctx, *email, *password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Println("Login successful!")
	return nil
}

func (a *app) runLogout() error {
	if err := a.auth.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func (a *app) runForgotPassword(ctx context.Context, recovery *auth.Recovery) error {
	reader := newPrompter()

	email := reader.ask("Account email: ")
	message, err := recovery.RequestOTP(ctx, email)
	if err != nil {
		return err
	}
	fmt.Println(message)

	otp := reader.ask("OTP from your email: ")
	message, err = recovery.VerifyOTP(ctx, otp)
	if err != nil {
		return err
	}
	fmt.Println(message)

	password := reader.ask("New password: ")
	confirm := reader.ask("Confirm new password: ")
	message, err = recovery.ResetPassword(ctx, password, confirm)
	if err != nil {
		return err
	}
	fmt.Println(message)
	return nil
}

func (a *app) runProfile(ctx context.Context) error {
	if !a.sessions.IsValid() {
		return fmt.Errorf("not logged in — run `dealerctl login` first")
	}

	p, err := a.profiles.Load(ctx)
	if err != nil {
		return err
	}
	printProfile(p)
	return nil
}

func (a *app) runProfileUpdate(ctx context.Context, args []string) error {
	if !a.sessions.IsValid() {
		return fmt.Errorf("not logged in — run `dealerctl login` first")
	}

	fs := flag.NewFlagSet("profile-update", flag.ExitOnError)
	shopName := fs.String("shop-name", "", "shop name")
	phone := fs.String("phone", "", "phone number")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	contactEmail := fs.String("contact-email", "", "primary contact email")
	fs.Parse(args)

	updated, err := a.profiles.Update(ctx, &profile.Profile{
		ShopName:            *shopName,
		Phone:               *phone,
		FirstName:           *firstName,
		LastName:            *lastName,
		PrimaryContactEmail: *contactEmail,
	})
	if err != nil {
		return err
	}
	fmt.Println("Profile updated.")
	printProfile(updated)
	return nil
}

func printProfile(p *profile.Profile) {
	fmt.Printf("Shop:    %s\n", p.ShopName)
	fmt.Printf("Name:    %s %s\n", p.FirstName, p.LastName)
	fmt.Printf("Email:   %s\n", p.Email)
	fmt.Printf("Phone:   %s\n", p.Phone)
	if p.City != "" || p.State != "" {
		fmt.Printf("Address: %s, %s, %s %s, %s\n", p.Street, p.City, p.State, p.ZipCode, p.Country)
	}
}
