package orders

import (
	"context"
	"io"

	"github.com/dirwin/dealerportal/internal/gateway"
)

// RemoteAPI is the dealer-API implementation of the orders API.
type RemoteAPI struct {
	client *gateway.Client
}

// NewRemoteAPI creates the orders adapter over the shared gateway client.
func NewRemoteAPI(client *gateway.Client) *RemoteAPI {
	return &RemoteAPI{client: client}
}

func (r *RemoteAPI) FetchOrders(ctx context.Context, req PageRequest) (*PageResult, error) {
	var result PageResult
	if err := r.client.PostAuthed(ctx, "/get_assembly_orders", req, &result); err != nil {
		return nil, err
	}
	if result.Orders == nil {
		result.Orders = []Order{}
	}
	return &result, nil
}

func (r *RemoteAPI) ManageOrder(ctx context.Context, actionType Assignment, orderID string) error {
	payload := struct {
		ActionType Assignment `json:"actionType"`
		OrderID    string     `json:"orderId"`
	}{ActionType: actionType, OrderID: orderID}
	return r.client.PostAuthed(ctx, "/order/manage", payload, nil)
}

func (r *RemoteAPI) InvoiceURL(orderID string) string {
	return r.client.URL("/invoice/generate/" + orderID)
}

func (r *RemoteAPI) DownloadInvoice(ctx context.Context, orderID string, w io.Writer) error {
	return r.client.Download(ctx, "/invoice/generate/"+orderID, w)
}
