package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dirwin/dealerportal/internal/modules/orders"
)

func (a *app) runOrders(ctx context.Context, command string, args []string, logger *slog.Logger) error {
	if !a.sessions.IsValid() {
		return fmt.Errorf("not logged in — run `dealerctl login` first")
	}

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	page := fs.Int("page", 1, "page number (1-based)")
	pageSize := fs.Int("page-size", 5, "orders per page")
	search := fs.String("search", "", "free-text filter")
	orderID := fs.String("order", "", "order id")
	outPath := fs.String("out", "", "output file for invoice download")
	fs.Parse(args)

	// The dealer id rides on every orders request, so resolve the profile
	// first; a 401 here sends the dealer back to login.
	p, err := a.profiles.Load(ctx)
	if err != nil {
		return err
	}

	controller := orders.NewController(
		orders.NewRemoteAPI(a.client), a.sessions, a.notifier, logger, p.ID)

	switch command {
	case "orders":
		if err := controller.ChangePageSize(ctx, *pageSize); err != nil {
			return err
		}
		if *search != "" {
			if err := controller.SetSearchQuery(ctx, *search); err != nil {
				return err
			}
		}
		if *page > 1 {
			if err := controller.ChangePage(ctx, *page-1); err != nil {
				return err
			}
		}
		printOrders(controller)
		return nil

	case "orders-accept", "orders-reject":
		if *orderID == "" {
			return fmt.Errorf("--order is required")
		}
		action := orders.AssignmentApproved
		prompt := "Accept this order at the stated assembly rate?"
		if command == "orders-reject" {
			action = orders.AssignmentRejected
			prompt = "Are you sure you want to reject this order?"
		}
		if err := controller.RequestAction(action, *orderID); err != nil {
			return err
		}
		if !newPrompter().askBool(prompt) {
			controller.DismissAction()
			fmt.Println("Cancelled.")
			return nil
		}
		return controller.ConfirmAction(ctx)

	case "invoice":
		if *orderID == "" {
			return fmt.Errorf("--order is required")
		}
		path := *outPath
		if path == "" {
			path = fmt.Sprintf("invoice_%s.pdf", *orderID)
		}
		out, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer out.Close()
		if err := controller.DownloadInvoice(ctx, *orderID, out); err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", path)
		return nil
	}
	return fmt.Errorf("unknown command %q", command)
}

func printOrders(controller *orders.Controller) {
	list := controller.Orders()
	if len(list) == 0 {
		fmt.Println("No orders found.")
		return
	}

	for _, o := range list {
		assignment := string(o.Assignment)
		if assignment == "" {
			assignment = "-"
		}
		fmt.Printf("#%s  %s %s  %s, %s  fee %s  %s  [%s]\n",
			o.OrderNumber, o.FirstName, o.LastName, o.City, o.State,
			o.AssemblyFee.StringFixed(2), o.CreatedAt.Format("2006-01-02"), assignment)
	}

	pg := controller.Pagination()
	fmt.Printf("Page %d of %d (%d orders)\n", pg.CurrentPage, pg.TotalPages, pg.TotalItems)
}
