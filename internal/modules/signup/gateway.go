package signup

import (
	"context"

	"github.com/dirwin/dealerportal/internal/gateway"
)

// RemoteAPI is the dealer-API implementation of ShopDirectory and Registrar.
type RemoteAPI struct {
	client *gateway.Client
}

// NewRemoteAPI creates the signup adapter over the shared gateway client.
func NewRemoteAPI(client *gateway.Client) *RemoteAPI {
	return &RemoteAPI{client: client}
}

// shopSuggestionDTO matches the places-style shape the directory endpoint
// returns.
type shopSuggestionDTO struct {
	PlaceID              string `json:"place_id"`
	Description          string `json:"description"`
	StructuredFormatting struct {
		MainText string `json:"main_text"`
	} `json:"structured_formatting"`
	Terms []struct {
		Value string `json:"value"`
	} `json:"terms"`
}

// SearchShops implements ShopDirectory. Endpoint path spelling is the API's.
func (r *RemoteAPI) SearchShops(ctx context.Context, businessName string) ([]ShopSuggestion, error) {
	var resp struct {
		Results []shopSuggestionDTO `json:"results"`
	}
	payload := map[string]string{"businessName": businessName}
	if err := r.client.Post(ctx, "/getBussinessDetails", payload, &resp); err != nil {
		return nil, err
	}

	suggestions := make([]ShopSuggestion, 0, len(resp.Results))
	for _, dto := range resp.Results {
		mainText := dto.StructuredFormatting.MainText
		if mainText == "" && len(dto.Terms) > 0 {
			mainText = dto.Terms[0].Value
		}
		suggestions = append(suggestions, ShopSuggestion{
			PlaceID:     dto.PlaceID,
			Description: dto.Description,
			MainText:    mainText,
		})
	}
	return suggestions, nil
}

// Register implements Registrar by posting the full form payload.
func (r *RemoteAPI) Register(ctx context.Context, form *FormData) error {
	return r.client.Post(ctx, "/dealer/signup", form, nil)
}
