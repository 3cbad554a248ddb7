package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisdamba/foodstore/internal/storefront"
	"github.com/chrisdamba/foodstore/internal/validation"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "List menu items, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return withApp(cmd.Context(), out, func(app *storefront.App) error {
			if cmd.Flags().Changed("search") {
				search, _ := cmd.Flags().GetString("search")
				app.SetSearch(search)
			}
			if cmd.Flags().Changed("category") {
				category, _ := cmd.Flags().GetString("category")
				app.SetCategory(category)
			}
			menu := app.Menu()
			fmt.Fprintf(out, "Categories: %v (selected: %s)\n", menu.Categories, menu.Category)
			if menu.Query != "" {
				fmt.Fprintf(out, "Search: %q\n", menu.Query)
			}
			if menu.Empty {
				fmt.Fprintln(out, "No items found")
				return nil
			}
			printItems(out, menu.Items)
			return nil
		})
	},
}

var restaurantsCmd = &cobra.Command{
	Use:   "restaurants",
	Short: "List restaurants and featured dishes, or one restaurant's menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return withApp(cmd.Context(), out, func(app *storefront.App) error {
			if cmd.Flags().Changed("id") {
				raw, _ := cmd.Flags().GetString("id")
				id, err := validation.ParseWholeNumber(raw)
				if err != nil {
					return fmt.Errorf("invalid restaurant id %q", raw)
				}
				page, err := app.Restaurant(id)
				if err != nil {
					return err
				}
				r := page.Restaurant
				fmt.Fprintf(out, "%s (%s, %.1f, %s)\n\n", r.Name, r.Cuisine, r.Rating, r.DeliveryTime)
				printItems(out, page.Items)
				return nil
			}
			home := app.Home()
			printRestaurants(out, home.Restaurants)
			fmt.Fprintln(out, "\nFeatured:")
			printItems(out, home.Featured)
			return nil
		})
	},
}

func init() {
	menuCmd.Flags().String("search", "", "case-insensitive name search")
	menuCmd.Flags().String("category", "", "category to show, \"All\" for every category")
	restaurantsCmd.Flags().String("id", "", "show the menu of this restaurant")
	rootCmd.AddCommand(menuCmd, restaurantsCmd)
}
