package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/storage-booking/internal/config"
	"github.com/iliyamo/storage-booking/internal/database"
	"github.com/iliyamo/storage-booking/internal/repository"
	"github.com/iliyamo/storage-booking/internal/repository/memstore"
	"github.com/iliyamo/storage-booking/internal/repository/mongostore"
	"github.com/iliyamo/storage-booking/internal/service"
	"github.com/iliyamo/storage-booking/internal/utils"
)

// openStore connects the driver selected by STORE_DRIVER.  With migrate it
// also creates the MySQL schema or the Mongo indexes.
func openStore(ctx context.Context, cfg config.Config, migrate bool) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		db, err := database.Open(ctx, cfg.MySQL)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := database.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return repository.NewSQLStore(db), nil
	case config.DriverMongo:
		mdb, err := database.OpenMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		s := mongostore.New(mdb)
		if migrate {
			if err := s.EnsureIndexes(ctx); err != nil {
				_ = s.Close(context.Background())
				return nil, err
			}
		}
		return s, nil
	case config.DriverMemory:
		utils.Logger.Warn("using the in-memory store; data is lost on exit")
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the MySQL schema or the MongoDB indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			store, err := openStore(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())
			utils.Logger.Infof("%s store is up to date", cfg.StoreDriver)
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace the catalog with the sample data set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			store, err := openStore(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())
			res, err := service.LoadSampleData(cmd.Context(), store)
			if err != nil {
				return err
			}
			utils.Logger.Infof("seeded %d physical units, %d virtual units, %d images",
				res.PhysicalUnits, res.VirtualUnits, res.ImageAssets)
			return nil
		},
	}
}
