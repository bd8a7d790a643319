package orders

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/dirwin/dealerportal/internal/gateway"
	"github.com/dirwin/dealerportal/internal/modules/session"
	"github.com/dirwin/dealerportal/internal/notify"
)

// API is the slice of the dealer API the orders controller depends on.
type API interface {
	// FetchOrders returns one page of assembly orders for the dealer.
	FetchOrders(ctx context.Context, req PageRequest) (*PageResult, error)
	// ManageOrder accepts or rejects an order assignment.
	ManageOrder(ctx context.Context, actionType Assignment, orderID string) error
	// InvoiceURL is the direct link to an order's invoice PDF.
	InvoiceURL(orderID string) string
	// DownloadInvoice streams an order's invoice PDF into w.
	DownloadInvoice(ctx context.Context, orderID string, w io.Writer) error
}

// Controller drives the paginated assembly orders list: it owns the fetched
// page, the paging/search state, and the pending accept/reject confirmation.
// State is replaced wholesale on every successful fetch; a failed fetch
// leaves the previous page intact. Responses from superseded fetches are
// discarded by generation.
type Controller struct {
	api      API
	sessions *session.Store
	notifier notify.Notifier
	logger   *slog.Logger
	dealerID string

	mu           sync.Mutex
	orders       []Order
	pagination   Pagination
	searchQuery  string
	confirmation *ConfirmationRequest
	generation   uint64
}

// NewController creates an orders controller for one dealer.
func NewController(api API, sessions *session.Store, notifier notify.Notifier, logger *slog.Logger, dealerID string) *Controller {
	return &Controller{
		api:        api,
		sessions:   sessions,
		notifier:   notifier,
		logger:     logger,
		dealerID:   dealerID,
		pagination: DefaultPagination(),
	}
}

// Orders returns the current page's rows.
func (c *Controller) Orders() []Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orders
}

// Pagination returns the current paging snapshot.
func (c *Controller) Pagination() Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

// SearchQuery returns the active free-text filter.
func (c *Controller) SearchQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchQuery
}

// Refresh fetches the current page. On 401 the session is torn down and
// gateway.ErrUnauthorized returned; the caller must redirect to login. On
// any other failure the previous page stays untouched.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	generation := c.generation
	req := PageRequest{
		DealerID:    c.dealerID,
		Pagination:  c.pagination,
		SearchQuery: c.searchQuery,
	}
	c.mu.Unlock()

	result, err := c.api.FetchOrders(ctx, req)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			_ = c.sessions.RemoveToken()
			return gateway.ErrUnauthorized
		}
		c.logger.Error("failed to fetch assembly orders", "error", err, "page", req.Pagination.CurrentPage)
		c.notifier.Error("Error occurred while fetching orders")
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		// A newer fetch superseded this one.
		c.logger.Debug("discarding stale orders response", "generation", generation)
		return nil
	}
	c.orders = result.Orders
	c.pagination = result.Pagination
	return nil
}

// ChangePage moves to the given zero-based page and refetches.
func (c *Controller) ChangePage(ctx context.Context, newPageZeroBased int) error {
	c.mu.Lock()
	c.pagination.CurrentPage = newPageZeroBased + 1
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// ChangePageSize sets the page size, resets to the first page, and
// refetches.
func (c *Controller) ChangePageSize(ctx context.Context, newSize int) error {
	c.mu.Lock()
	c.pagination.ItemsPerPage = newSize
	c.pagination.CurrentPage = 1
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetSearchQuery replaces the filter, resets to the first page, and
// refetches. Input is not debounced; the page reset bounds repeated
// keystrokes to first-page fetches and stale responses are discarded.
func (c *Controller) SetSearchQuery(ctx context.Context, query string) error {
	c.mu.Lock()
	c.searchQuery = query
	c.pagination.CurrentPage = 1
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// RequestAction opens a confirmation for an accept/reject. Nothing is sent
// to the server until ConfirmAction.
func (c *Controller) RequestAction(actionType Assignment, orderID string) error {
	if actionType != AssignmentApproved && actionType != AssignmentRejected {
		return fmt.Errorf("invalid action type %q", actionType)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirmation = &ConfirmationRequest{ActionType: actionType, OrderID: orderID}
	return nil
}

// Confirmation returns the pending request, or nil.
func (c *Controller) Confirmation() *ConfirmationRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmation
}

// DismissAction drops the pending confirmation without side effects.
func (c *Controller) DismissAction() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirmation = nil
}

// ConfirmAction consumes the pending confirmation and posts it. On success
// the current page is refetched and a success toast emitted; on failure the
// order's assignment is left unchanged — the row only changes after a
// successful refetch.
func (c *Controller) ConfirmAction(ctx context.Context) error {
	c.mu.Lock()
	pending := c.confirmation
	c.confirmation = nil
	c.mu.Unlock()

	if pending == nil {
		return fmt.Errorf("no action awaiting confirmation")
	}

	if err := c.api.ManageOrder(ctx, pending.ActionType, pending.OrderID); err != nil {
		c.logger.Error("order action failed",
			"error", err, "orderId", pending.OrderID, "action", pending.ActionType)
		c.notifier.Error("Error occurred while processing action")
		return err
	}

	if err := c.Refresh(ctx); err != nil {
		return err
	}
	c.notifier.Success(fmt.Sprintf("Successfully %s order request.", strings.ToLower(string(pending.ActionType))))
	return nil
}

// InvoiceURL returns the direct invoice link for an order.
func (c *Controller) InvoiceURL(orderID string) string {
	return c.api.InvoiceURL(orderID)
}

// DownloadInvoice streams the invoice PDF for an order into w.
func (c *Controller) DownloadInvoice(ctx context.Context, orderID string, w io.Writer) error {
	if err := c.api.DownloadInvoice(ctx, orderID, w); err != nil {
		c.logger.Error("invoice download failed", "error", err, "orderId", orderID)
		return err
	}
	return nil
}
