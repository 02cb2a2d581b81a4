// Package cli implements newsctl, a terminal front end for browsing headlines
// and managing favourites against the same storage the service uses.
package cli

import (
	"context"
	"log/slog"

	"github.com/giannis84/news-favourites/internal/config"
	"github.com/giannis84/news-favourites/internal/database"
	"github.com/giannis84/news-favourites/internal/favourites"
	"github.com/giannis84/news-favourites/internal/logging"
	"github.com/giannis84/news-favourites/internal/newsapi"
	"github.com/spf13/cobra"
)

type app struct {
	cfg   *config.Config
	kv    database.Store
	store *favourites.Store
	news  *newsapi.Client
}

// Execute runs newsctl with the process arguments.
func Execute(ctx context.Context) error {
	a := &app{}
	defer a.close()
	return newRootCmd(a).ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "newsctl",
		Short:        "Browse top headlines and manage favourite articles",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.AddCommand(newHeadlinesCmd(a))
	root.AddCommand(newCategoriesCmd())
	root.AddCommand(newFavouritesCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadBase()
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger := logging.NewLoggerTo(cmd.ErrOrStderr(), slog.LevelWarn)
	cmd.SetContext(logging.NewContextWithLogger(cmd.Context(), logger))

	a.news = newsapi.NewClient(newsapi.Config{
		BaseURL: cfg.NewsAPI.BaseURL,
		APIKey:  cfg.NewsAPI.APIKey,
		Country: cfg.NewsAPI.Country,
		Timeout: cfg.NewsAPI.Timeout,
	})
	return nil
}

// favourites opens storage and loads the list on first use.
func (a *app) favourites(ctx context.Context) (*favourites.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	kv, err := database.Open(database.Options{
		Driver:      a.cfg.Storage.Driver,
		SQLitePath:  a.cfg.Storage.SQLitePath,
		PostgresDSN: a.cfg.PostgresConnString(),
		Namespace:   a.cfg.Storage.Namespace,
	})
	if err != nil {
		return nil, err
	}
	a.kv = kv
	a.store = favourites.New(ctx, kv)
	return a.store, nil
}

func (a *app) close() error {
	if a.kv == nil {
		return nil
	}
	err := a.kv.Close()
	a.kv, a.store = nil, nil
	return err
}
