package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/chrisdamba/foodstore/internal/activity"
	"github.com/chrisdamba/foodstore/internal/catalog"
	"github.com/chrisdamba/foodstore/internal/factories"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/repositories"
	"github.com/chrisdamba/foodstore/internal/repositories/postgres"
	"github.com/chrisdamba/foodstore/internal/scheduler"
	"github.com/chrisdamba/foodstore/internal/session"
	"github.com/chrisdamba/foodstore/internal/storage"
	"github.com/chrisdamba/foodstore/internal/storefront"
)

// runtime owns everything a command needs for one invocation.
type runtime struct {
	app      *storefront.App
	db       *storage.BoltStore
	recorder *activity.Recorder
}

// openApp is the composition root: state file, catalog, store, flows and the
// optional activity journal.
func openApp(ctx context.Context, out io.Writer) (*runtime, error) {
	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}

	db, err := storage.OpenBolt(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state file: %w", err)
	}

	bus := EventBus.New()
	rt := &runtime{db: db}

	dest, err := activity.NewDestination(cfg.Activity, out)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create activity destination: %w", err)
	}
	if dest != nil {
		rt.recorder, err = activity.NewRecorder(bus, dest)
		if err != nil {
			dest.Close()
			db.Close()
			return nil, fmt.Errorf("failed to start activity recorder: %w", err)
		}
	}

	store := session.Open(db, bus)
	rt.app = storefront.New(cat, store, scheduler.New(scheduler.SystemClock), storefront.OptionsFromConfig(cfg))
	return rt, nil
}

func (rt *runtime) Close() error {
	var errs []error
	if rt.recorder != nil {
		if err := rt.recorder.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close activity journal: %w", err))
		}
	}
	if err := rt.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close state file: %w", err))
	}
	return errors.Join(errs...)
}

// withApp runs fn against a freshly opened storefront and closes it after.
func withApp(ctx context.Context, out io.Writer, fn func(app *storefront.App) error) error {
	rt, err := openApp(ctx, out)
	if err != nil {
		return err
	}
	runErr := fn(rt.app)
	if err := rt.Close(); err != nil {
		zap.S().Errorw("shutdown failed", "error", err)
	}
	return runErr
}

func loadCatalog(ctx context.Context, cfg *models.Config) (*catalog.Catalog, error) {
	switch cfg.Catalog.Source {
	case models.CatalogSynthetic:
		src := factories.NewSyntheticSource(cfg.Catalog.SyntheticRestaurants, cfg.Catalog.SyntheticItems, cfg.Catalog.Seed)
		return catalog.Load(ctx, src)
	case models.CatalogPostgres:
		pool, err := postgres.Connect(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		src := repositories.NewCatalogSource(
			postgres.NewRestaurantRepository(pool),
			postgres.NewMenuItemRepository(pool),
		)
		return catalog.Load(ctx, src)
	default:
		return catalog.Load(ctx, catalog.NewStaticSource())
	}
}
