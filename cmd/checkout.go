package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisdamba/foodstore/internal/checkout"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/storefront"
	"github.com/chrisdamba/foodstore/internal/validation"
)

var checkoutFields = []formFlag{
	{"address", validation.FieldAddress, "", "street address"},
	{"city", validation.FieldCity, "", "city"},
	{"zip", validation.FieldZipCode, "", "6-digit postal code"},
	{"phone", validation.FieldPhone, "", "10-digit phone number"},
	{"payment", validation.FieldPaymentMethod, models.PaymentCard, "payment method: card or cash"},
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return withApp(cmd.Context(), out, func(app *storefront.App) error {
			if redirect := app.Checkout().Redirect; redirect != "" {
				switch redirect {
				case models.RouteLogin:
					return fmt.Errorf("please login first (foodstore login)")
				default:
					return fmt.Errorf("your cart is empty (foodstore menu, foodstore cart add ID)")
				}
			}

			if err := fillForm(cmd, checkoutFields, app.CheckoutChange); err != nil {
				return err
			}
			if _, err := app.SubmitCheckout(); err != nil {
				if errors.Is(err, checkout.ErrInvalidForm) {
					printFieldErrors(cmd.ErrOrStderr(), app.Checkout().Form.Errors)
					return errReported
				}
				return err
			}

			fmt.Fprintln(out, "Placing order...")
			if err := app.Scheduler().Drain(cmd.Context()); err != nil {
				return err
			}

			view := app.Checkout()
			if view.Receipt == nil {
				return fmt.Errorf("order was not placed")
			}
			fmt.Fprintf(out, "Order %s placed\n\n", view.Receipt.OrderID)
			printLines(out, view.Lines)
			fmt.Fprintln(out)
			printAmounts(out, view.Amounts)
			d := view.Receipt.Delivery
			fmt.Fprintf(out, "\nDelivering to %s, %s %s (%s), paying by %s\n", d.Address, d.City, d.ZipCode, d.Phone, d.PaymentMethod)
			return nil
		})
	},
}

func init() {
	addFormFlags(checkoutCmd, checkoutFields)
	rootCmd.AddCommand(checkoutCmd)
}
