package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisdamba/foodstore/internal/storefront"
	"github.com/chrisdamba/foodstore/internal/validation"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show or change the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cartShowCmd.RunE(cmd, args)
	},
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart and its totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return withApp(cmd.Context(), out, func(app *storefront.App) error {
			printCart(out, app.Cart())
			return nil
		})
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add ID",
	Short: "Add one of a menu item to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := validation.ParseWholeNumber(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		out := cmd.OutOrStdout()
		return withApp(cmd.Context(), out, func(app *storefront.App) error {
			if err := app.AddToCart(id); err != nil {
				return err
			}
			fmt.Fprintf(out, "Added. Cart has %d item(s)\n", app.Header().CartCount)
			return nil
		})
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set ID QTY",
	Short: "Set the quantity of a cart line; 0 removes it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := validation.ParseWholeNumber(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		quantity, err := validation.ParseWholeNumber(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		out := cmd.OutOrStdout()
		return withApp(cmd.Context(), out, func(app *storefront.App) error {
			outcome, err := app.SetQuantity(id, quantity)
			if err != nil {
				return err
			}
			switch {
			case outcome.ConfirmRemoval:
				// a terminal invocation is its own confirmation
				app.RemoveItem(id)
				fmt.Fprintln(out, "Removed")
			case outcome.Notice != "":
				fmt.Fprintln(out, outcome.Notice)
				return errReported
			}
			printCart(out, app.Cart())
			return nil
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := validation.ParseWholeNumber(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		out := cmd.OutOrStdout()
		return withApp(cmd.Context(), out, func(app *storefront.App) error {
			app.RemoveItem(id)
			printCart(out, app.Cart())
			return nil
		})
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return withApp(cmd.Context(), out, func(app *storefront.App) error {
			app.ClearCart()
			fmt.Fprintln(out, "Cart cleared")
			return nil
		})
	},
}

func init() {
	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartSetCmd, cartRemoveCmd, cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}
