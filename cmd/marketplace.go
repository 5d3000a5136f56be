// ABOUTME: Marketplace command group for the ryze CLI
// ABOUTME: Browses products and starts purchase checkouts

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
)

var marketplaceCmd = &cobra.Command{
	Use:     "marketplace",
	Aliases: []string{"market"},
	Short:   "Browse marketplace products",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runMarketplaceList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var marketplaceBuyCmd = &cobra.Command{
	Use:   "buy <product-id>",
	Short: "Start a checkout for a product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runMarketplaceBuy(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var marketplaceVerifyCmd = &cobra.Command{
	Use:   "verify <session-id>",
	Short: "Verify a checkout after the provider redirect",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runMarketplaceVerify(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var marketplaceShowCmd = &cobra.Command{
	Use:   "show <product-id>",
	Short: "Show one marketplace product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runMarketplaceShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	marketplaceCmd.AddCommand(marketplaceShowCmd)
	marketplaceCmd.AddCommand(marketplaceBuyCmd)
	marketplaceCmd.AddCommand(marketplaceVerifyCmd)
	rootCmd.AddCommand(marketplaceCmd)
}

// runMarketplaceList prints marketplace products
func runMarketplaceList(ctx context.Context, w io.Writer) int {
	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	products, err := client.Products(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, products)
		return 0
	}

	if len(products) == 0 {
		fmt.Fprintln(w, "No products")
		return 0
	}
	fmt.Fprintf(w, "%-6s %-40s %-10s %s\n", "ID", "NAME", "PRICE", "SELLER")
	for _, p := range products {
		fmt.Fprintf(w, "%-6d %-40s $%-9.2f %s\n", p.ID, truncate(p.Name, 40), p.Price, p.SellerName)
	}
	return 0
}

// runMarketplaceShow prints one product
func runMarketplaceShow(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid product id %q\n", arg)
		return 2
	}

	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	product, err := client.Product(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, product)
		return 0
	}
	fmt.Fprintf(w, "%s  $%.2f\n", product.Name, product.Price)
	fmt.Fprintf(w, "Sold by %s\n\n", product.SellerName)
	fmt.Fprintln(w, product.Description)
	return 0
}

// runMarketplaceBuy starts a product checkout
func runMarketplaceBuy(ctx context.Context, w io.Writer, arg string) int {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid product id %q\n", arg)
		return 2
	}

	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	checkout, err := client.PurchaseProduct(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}

	fmt.Fprintln(w, "Open this URL in your browser to pay:")
	fmt.Fprintln(w, checkout.CheckoutURL)
	fmt.Fprintf(w, "\nThen run: ryze marketplace verify %s\n", checkout.SessionID)
	return 0
}

// runMarketplaceVerify confirms a checkout session
func runMarketplaceVerify(ctx context.Context, w io.Writer, sessionID string) int {
	client, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	record, err := client.VerifyPurchase(ctx, sessionID)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", formatAPIError(err))
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, record)
		return 0
	}
	fmt.Fprintf(w, "Purchase %s\n", record.Status)
	return 0
}
