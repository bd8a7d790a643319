package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assignment is the dealer's response state on an assembly order.
type Assignment string

const (
	AssignmentPending  Assignment = "PENDING"
	AssignmentApproved Assignment = "APPROVED"
	AssignmentRejected Assignment = "REJECTED"
)

// LineItem is one product on an assembly order.
type LineItem struct {
	Title string `json:"title"`
}

// Order is one assembly order row as the dealer API returns it. Orders live
// only for the duration of one fetched page; nothing is cached across pages.
type Order struct {
	OrderID         string          `json:"orderId"`
	OrderNumber     string          `json:"orderNumber"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	State           string          `json:"state"`
	City            string          `json:"city"`
	LineItems       []LineItem      `json:"lineItems"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Currency        string          `json:"currency"`
	FinancialStatus string          `json:"financialStatus"`
	AssemblyFee     decimal.Decimal `json:"assemblyFee"`
	Assignment      Assignment      `json:"assignment,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Pagination is the server's paging snapshot. currentPage is 1-based and,
// when totalPages > 0, stays within [1, totalPages].
type Pagination struct {
	HasPrevious  bool `json:"hasPrevious"`
	HasNext      bool `json:"hasNext"`
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	ItemsPerPage int  `json:"itemsPerPage"`
	TotalItems   int  `json:"totalItems"`
}

// DefaultPagination is the initial paging state before the first fetch.
func DefaultPagination() Pagination {
	return Pagination{CurrentPage: 1, ItemsPerPage: 5, HasNext: true, TotalPages: 1}
}

// PageRequest is the fetch payload for one page of assembly orders.
type PageRequest struct {
	DealerID    string     `json:"dealerId"`
	Pagination  Pagination `json:"pagination"`
	SearchQuery string     `json:"searchQuery"`
}

// PageResult is one fetched page.
type PageResult struct {
	Orders     []Order    `json:"orderData"`
	Pagination Pagination `json:"pagination"`
}

// ConfirmationRequest is a pending accept/reject awaiting the dealer's
// confirmation. It is consumed when confirmed or dismissed.
type ConfirmationRequest struct {
	ActionType Assignment
	OrderID    string
}
