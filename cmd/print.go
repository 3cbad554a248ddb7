package cmd

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/chrisdamba/foodstore/internal/checkout"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/storefront"
)

func printItems(w io.Writer, items []models.MenuItem) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tRESTAURANT\tCATEGORY\tPRICE\tRATING")
	for _, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.1f\n",
			item.ID, item.Name, item.Restaurant, item.Category, checkout.FormatMoney(item.Price), item.Rating)
	}
	tw.Flush()
}

func printRestaurants(w io.Writer, restaurants []models.Restaurant) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCUISINE\tRATING\tDELIVERY")
	for _, r := range restaurants {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%s\n", r.ID, r.Name, r.Cuisine, r.Rating, r.DeliveryTime)
	}
	tw.Flush()
}

func printLines(w io.Writer, lines []storefront.CartLine) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tTOTAL")
	for _, line := range lines {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n",
			line.ID, line.Name, line.Quantity, checkout.FormatMoney(line.Price), line.AmountDisplay)
	}
	tw.Flush()
}

func printAmounts(w io.Writer, amounts storefront.Amounts) {
	fmt.Fprintf(w, "Subtotal:     %s\n", amounts.Subtotal)
	fmt.Fprintf(w, "Delivery fee: %s\n", amounts.DeliveryFee)
	fmt.Fprintf(w, "Tax (8%%):     %s\n", amounts.Tax)
	fmt.Fprintf(w, "Total:        %s\n", amounts.Total)
}

func printCart(w io.Writer, cart storefront.Cart) {
	if cart.Empty {
		fmt.Fprintln(w, "Your cart is empty")
		return
	}
	printLines(w, cart.Lines)
	fmt.Fprintln(w)
	printAmounts(w, cart.Amounts)
	if cart.Notice != "" {
		fmt.Fprintln(w, cart.Notice)
	}
	fmt.Fprintf(w, "%s (%s)\n", cart.CheckoutText, cart.CheckoutPath)
}

// printFieldErrors lists visible errors in field order and reports whether
// there were any.
func printFieldErrors(w io.Writer, errs map[string]string) bool {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "%s: %s\n", field, errs[field])
	}
	return len(fields) > 0
}
