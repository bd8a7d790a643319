// Package stubapi is an in-process, in-memory rendition of the dealer REST
// API used as a fixture by gateway and flow integration tests. It is not a
// production server: the real API is an external collaborator.
package stubapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dirwin/dealerportal/internal/modules/orders"
	"github.com/dirwin/dealerportal/internal/modules/profile"
	"github.com/dirwin/dealerportal/internal/modules/signup"
)

// FixedOTP is the one-time password the fixture always issues.
const FixedOTP = "424242"

type dealer struct {
	profile      profile.Profile
	passwordHash string
}

// Server holds the in-memory dealer API state behind a chi router.
type Server struct {
	router chi.Router

	mu          sync.Mutex
	dealers     map[string]*dealer // keyed by email
	orders      []orders.Order
	resetTokens map[string]string // reset token -> email
	pendingOTP  map[string]bool   // email -> OTP requested
	suggestions []signup.ShopSuggestion

	jwtSecret []byte
}

// New creates an empty fixture server.
func New() *Server {
	s := &Server{
		dealers:     map[string]*dealer{},
		resetTokens: map[string]string{},
		pendingOTP:  map[string]bool{},
		jwtSecret:   []byte("stubapi-test-secret"),
	}

	r := chi.NewRouter()
	r.Post("/dealer/login", s.handleLogin)
	r.Post("/dealer/signup", s.handleSignup)
	r.Post("/dealer/forgot-password", s.handleForgotPassword)
	r.Post("/dealer/verify-otp", s.handleVerifyOTP)
	r.Post("/dealer/reset-password", s.handleResetPassword)
	r.Get("/dealer/profile", s.handleProfile)
	r.Post("/update/dealer", s.handleUpdateDealer)
	r.Post("/get_assembly_orders", s.handleAssemblyOrders)
	r.Post("/order/manage", s.handleManageOrder)
	r.Get("/invoice/generate/{orderId}", s.handleInvoice)
	r.Post("/getBussinessDetails", s.handleBusinessDetails)
	s.router = r

	return s
}

// ServeHTTP makes the fixture mountable on httptest.NewServer.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ── seeding helpers ──────────────────────────────────────────────────────────

// SeedDealer registers a dealer and returns its ID.
func (s *Server) SeedDealer(email, password, shopName string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.dealers[email] = &dealer{
		profile: profile.Profile{
			ID:        id,
			Email:     email,
			ShopName:  shopName,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		},
		passwordHash: string(hash),
	}
	return id
}

// SeedOrders replaces the fixture's assembly orders.
func (s *Server) SeedOrders(list []orders.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = list
}

// SeedSuggestions sets the shop directory results.
func (s *Server) SeedSuggestions(list []signup.ShopSuggestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = list
}

// Order returns a seeded order by ID for assertions.
func (s *Server) Order(orderID string) (orders.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return orders.Order{}, false
}

// MintToken issues a valid bearer token for a seeded dealer.
func (s *Server) MintToken(email string) string {
	s.mu.Lock()
	d, ok := s.dealers[email]
	s.mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("stubapi: no dealer seeded for %s", email))
	}
	return s.mintToken(d.profile.ID)
}

func (s *Server) mintToken(dealerID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   dealerID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		panic(err)
	}
	return token
}

// authenticate resolves the bearer token to a dealer, or writes a 401.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (*dealer, bool) {
	header := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.dealers {
		if d.profile.ID == subject {
			return d, true
		}
	}
	writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	return nil, false
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
