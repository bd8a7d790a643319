package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dirwin/dealerportal/internal/config"
	"github.com/dirwin/dealerportal/internal/gateway"
	"github.com/dirwin/dealerportal/internal/logging"
	"github.com/dirwin/dealerportal/internal/modules/auth"
	"github.com/dirwin/dealerportal/internal/modules/profile"
	"github.com/dirwin/dealerportal/internal/modules/session"
	"github.com/dirwin/dealerportal/internal/modules/signup"
	"github.com/dirwin/dealerportal/internal/notify"
)

const usage = `dealerctl — dirwin dealer portal client

Commands:
  login              sign in and store the session token
  logout             clear the stored session
  signup             run the five-step dealer registration wizard
  forgot-password    recover account access via emailed OTP
  profile            show the dealer profile
  profile-update     edit profile fields
  orders             list assembly orders (--page, --page-size, --search)
  orders-accept      accept an order assignment (--order)
  orders-reject      reject an order assignment (--order)
  invoice            download an order's invoice PDF (--order, --out)
`

// app bundles the wired-up services every command draws from.
type app struct {
	cfg      config.Config
	sessions *session.Store
	client   *gateway.Client
	auth     *auth.Service
	authAPI  *auth.RemoteAPI
	profiles *profile.Service
	notifier notify.Notifier
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: no .env file found, relying on system environment variables")
	}

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	logger := logging.New(cfg.Logging)
	sessions := session.NewStore(session.NewFileStorage(cfg.TokenPath))
	// Teardown after a 401 nudges the dealer back to login. An explicit
	// logout also removes the token, so skip the notice there.
	if os.Args[1] != "logout" {
		sessions.OnInvalidate(func() {
			fmt.Fprintln(os.Stderr, "Session expired. Run `dealerctl login` to sign in again.")
		})
	}
	client := gateway.New(cfg.ServerURL, cfg.HTTPTimeout, sessions, logger)
	authAPI := auth.NewRemoteAPI(client)

	a := &app{
		cfg:      cfg,
		sessions: sessions,
		client:   client,
		auth:     auth.NewService(authAPI, sessions, logger),
		authAPI:  authAPI,
		profiles: profile.NewService(profile.NewRemoteAPI(client), sessions, logger),
		notifier: notify.NewLogNotifier(logger),
	}

	signupAPI := signup.NewRemoteAPI(client)

	ctx := context.Background()
	switch os.Args[1] {
	case "login":
		err = a.runLogin(ctx, os.Args[2:])
	case "logout":
		err = a.runLogout()
	case "signup":
		err = a.runSignup(ctx, signup.NewWizard(signupAPI, signupAPI, logger))
	case "forgot-password":
		err = a.runForgotPassword(ctx, auth.NewRecovery(authAPI, logger))
	case "profile":
		err = a.runProfile(ctx)
	case "profile-update":
		err = a.runProfileUpdate(ctx, os.Args[2:])
	case "orders", "orders-accept", "orders-reject", "invoice":
		err = a.runOrders(ctx, os.Args[1], os.Args[2:], logger)
	default:
		fmt.Print(usage)
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}
