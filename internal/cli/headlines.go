package cli

import (
	"fmt"

	"github.com/giannis84/news-favourites/internal/handlers"
	"github.com/giannis84/news-favourites/internal/models"
	"github.com/spf13/cobra"
)

func newHeadlinesCmd(a *app) *cobra.Command {
	var category, query string

	cmd := &cobra.Command{
		Use:   "headlines",
		Short: "Show top headlines by category or free-text search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			articles, err := handlers.GetNews(ctx, a.news, category, query)
			if err != nil {
				return err
			}

			store, err := a.favourites(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if query != "" {
				renderHeader(out, fmt.Sprintf("Results for %q (%d)", query, len(articles)))
			} else {
				name := models.DefaultCategory
				if c, ok := models.LookupCategory(category); ok {
					name = c.Name
				} else if c, ok := models.LookupCategory(name); ok {
					name = c.Name
				}
				renderHeader(out, fmt.Sprintf("%s (%d)", name, len(articles)))
			}
			renderArticles(out, articles, store.IsFavourite)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", models.DefaultCategory, "news category (see 'newsctl categories')")
	cmd.Flags().StringVarP(&query, "query", "q", "", "free-text search, takes precedence over --category")
	return cmd
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the available news categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, c := range models.Categories {
				fmt.Fprintf(out, "%-14s %s\n", c.ID, metaStyle.Render(c.Name))
			}
			return nil
		},
	}
}
