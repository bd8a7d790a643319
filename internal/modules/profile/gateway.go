package profile

import (
	"context"
	"net/http"

	"github.com/dirwin/dealerportal/internal/gateway"
)

// RemoteAPI is the dealer-API implementation of the profile API.
type RemoteAPI struct {
	client *gateway.Client
}

// NewRemoteAPI creates the profile adapter over the shared gateway client.
func NewRemoteAPI(client *gateway.Client) *RemoteAPI {
	return &RemoteAPI{client: client}
}

// Both profile endpoints wrap the record in a "data" envelope.
type profileEnvelope struct {
	Data Profile `json:"data"`
}

func (r *RemoteAPI) Profile(ctx context.Context) (*Profile, error) {
	var resp profileEnvelope
	if err := r.client.Do(ctx, http.MethodGet, "/dealer/profile", true, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (r *RemoteAPI) UpdateProfile(ctx context.Context, p *Profile) (*Profile, error) {
	var resp profileEnvelope
	if err := r.client.PostAuthed(ctx, "/update/dealer", p, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
