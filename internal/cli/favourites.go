package cli

import (
	"github.com/giannis84/news-favourites/internal/handlers"
	"github.com/giannis84/news-favourites/internal/models"
	"github.com/spf13/cobra"
)

func newFavouritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favourites",
		Aliases: []string{"favorites", "fav"},
		Short:   "Manage favourite articles",
	}

	cmd.AddCommand(newFavouritesListCmd(a))
	cmd.AddCommand(newFavouritesAddCmd(a))
	cmd.AddCommand(newFavouritesRemoveCmd(a))
	cmd.AddCommand(newFavouritesToggleCmd(a))
	return cmd
}

func newFavouritesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favourite articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.favourites(cmd.Context())
			if err != nil {
				return err
			}

			list := handlers.GetFavourites(store)
			renderHeader(cmd.OutOrStdout(), "Favourites")
			renderFavourites(cmd.OutOrStdout(), list)
			return nil
		},
	}
}

// articleFlags binds the favourite fields to flags shared by add and toggle.
func articleFlags(cmd *cobra.Command, article *models.FavouriteArticle) {
	cmd.Flags().StringVar(&article.URL, "url", "", "article URL (required)")
	cmd.Flags().StringVar(&article.Title, "title", "", "article title (required)")
	cmd.Flags().StringVar(&article.Description, "description", "", "article description")
	cmd.Flags().StringVar(&article.ImageURL, "image", "", "article image URL")
	cmd.MarkFlagRequired("url")
}

func newFavouritesAddCmd(a *app) *cobra.Command {
	var article models.FavouriteArticle

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an article to favourites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.favourites(cmd.Context())
			if err != nil {
				return err
			}

			if err := handlers.AddFavourite(cmd.Context(), store, article); err != nil {
				return err
			}
			renderSuccess(cmd.OutOrStdout(), "Added to favourites: "+article.URL)
			return nil
		},
	}
	articleFlags(cmd, &article)
	return cmd
}

func newFavouritesRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <url>",
		Short: "Remove an article from favourites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.favourites(cmd.Context())
			if err != nil {
				return err
			}

			if err := handlers.RemoveFavourite(cmd.Context(), store, args[0]); err != nil {
				return err
			}
			renderSuccess(cmd.OutOrStdout(), "Removed from favourites: "+args[0])
			return nil
		},
	}
}

func newFavouritesToggleCmd(a *app) *cobra.Command {
	var article models.FavouriteArticle

	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Add the article if it is not a favourite, remove it otherwise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.favourites(cmd.Context())
			if err != nil {
				return err
			}

			favourite, err := handlers.ToggleFavourite(cmd.Context(), store, article)
			if err != nil {
				return err
			}
			if favourite {
				renderSuccess(cmd.OutOrStdout(), "Added to favourites: "+article.URL)
			} else {
				renderSuccess(cmd.OutOrStdout(), "Removed from favourites: "+article.URL)
			}
			return nil
		},
	}
	articleFlags(cmd, &article)
	return cmd
}
