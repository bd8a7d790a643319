package auth

import (
	"context"

	"github.com/dirwin/dealerportal/internal/gateway"
)

// RemoteAPI is the dealer-API implementation of the auth API.
type RemoteAPI struct {
	client *gateway.Client
}

// NewRemoteAPI creates the auth adapter over the shared gateway client.
func NewRemoteAPI(client *gateway.Client) *RemoteAPI {
	return &RemoteAPI{client: client}
}

func (r *RemoteAPI) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := r.client.Post(ctx, "/dealer/login", payload, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (r *RemoteAPI) RequestOTP(ctx context.Context, email string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	payload := map[string]string{"email": email}
	if err := r.client.Post(ctx, "/dealer/forgot-password", payload, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (r *RemoteAPI) VerifyOTP(ctx context.Context, email, otp string) (string, string, error) {
	var resp struct {
		ResetToken string `json:"resetToken"`
		Token      string `json:"token"`
		Message    string `json:"message"`
	}
	payload := map[string]string{"email": email, "otp": otp}
	if err := r.client.Post(ctx, "/dealer/verify-otp", payload, &resp); err != nil {
		return "", "", err
	}

	// Some server revisions return the reset token under "token".
	resetToken := resp.ResetToken
	if resetToken == "" {
		resetToken = resp.Token
	}
	return resetToken, resp.Message, nil
}

func (r *RemoteAPI) ResetPassword(ctx context.Context, resetToken, password string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	payload := map[string]string{"token": resetToken, "password": password}
	if err := r.client.Post(ctx, "/dealer/reset-password", payload, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
