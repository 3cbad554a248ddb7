package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/chrisdamba/foodstore/internal/catalog"
	"github.com/chrisdamba/foodstore/internal/factories"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/repositories"
	"github.com/chrisdamba/foodstore/internal/repositories/postgres"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the postgres catalog",
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the postgres catalog with the static or a synthetic one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		from, _ := cmd.Flags().GetString("from")
		batchSize, _ := cmd.Flags().GetInt("batch-size")

		var restaurants []models.Restaurant
		var items []models.MenuItem
		switch from {
		case models.CatalogStatic:
			restaurants, items = catalog.DefaultData()
		case models.CatalogSynthetic:
			restaurants, items = factories.NewSyntheticSource(
				cfg.Catalog.SyntheticRestaurants, cfg.Catalog.SyntheticItems, cfg.Catalog.Seed,
			).Generate()
		default:
			return fmt.Errorf("unsupported seed source: %q", from)
		}
		// reject inconsistent data before touching the database
		if _, err := catalog.New(restaurants, items); err != nil {
			return fmt.Errorf("invalid catalog: %w", err)
		}

		pool, err := postgres.Connect(ctx, cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			return err
		}

		bar := progressbar.NewOptions(len(restaurants)+len(items),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("seeding catalog"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		err = repositories.SeedCatalog(ctx,
			postgres.NewRestaurantRepository(pool),
			postgres.NewMenuItemRepository(pool),
			restaurants, items, batchSize,
			func(n int) { _ = bar.Add(n) },
		)
		if err != nil {
			return err
		}
		_ = bar.Finish()
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded and verified %d restaurants and %d menu items\n", len(restaurants), len(items))
		return nil
	},
}

func init() {
	catalogSeedCmd.Flags().String("from", models.CatalogSynthetic, "catalog to write: static or synthetic")
	catalogSeedCmd.Flags().Int("batch-size", 100, "records per COPY batch")
	catalogCmd.AddCommand(catalogSeedCmd)
	rootCmd.AddCommand(catalogCmd)
}
