package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dirwin/dealerportal/internal/gateway"
	"github.com/dirwin/dealerportal/internal/modules/session"
)

// Service loads and edits the dealer profile, tearing the session down when
// the server answers 401.
type Service struct {
	api      API
	sessions *session.Store
	logger   *slog.Logger
}

// NewService creates the profile service.
func NewService(api API, sessions *session.Store, logger *slog.Logger) *Service {
	return &Service{api: api, sessions: sessions, logger: logger}
}

// Load fetches the authenticated dealer's profile.
func (s *Service) Load(ctx context.Context) (*Profile, error) {
	p, err := s.api.Profile(ctx)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			_ = s.sessions.RemoveToken()
			return nil, gateway.ErrUnauthorized
		}
		s.logger.Error("failed to load dealer profile", "error", err)
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// Update saves profile edits and returns the server's updated record.
func (s *Service) Update(ctx context.Context, p *Profile) (*Profile, error) {
	updated, err := s.api.UpdateProfile(ctx, p)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			_ = s.sessions.RemoveToken()
			return nil, gateway.ErrUnauthorized
		}
		s.logger.Error("failed to update dealer profile", "error", err)
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.logger.Info("dealer profile updated", "dealerId", updated.ID)
	return updated, nil
}
