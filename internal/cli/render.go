package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/giannis84/news-favourites/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	starStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

const (
	favouriteMark = "★"
	noMark        = " "
	dateLayout    = "02/01/2006 15:04"
)

func renderHeader(w io.Writer, text string) {
	fmt.Fprintf(w, "\n%s\n\n", headerStyle.Render(text))
}

func renderArticles(w io.Writer, articles []models.Article, isFavourite func(string) bool) {
	if len(articles) == 0 {
		fmt.Fprintln(w, metaStyle.Render("No articles found."))
		return
	}

	for _, a := range articles {
		mark := noMark
		if isFavourite(a.URL) {
			mark = starStyle.Render(favouriteMark)
		}

		meta := []string{}
		if a.Source.Name != "" {
			meta = append(meta, "Fonte: "+a.Source.Name)
		}
		if !a.PublishedAt.IsZero() {
			meta = append(meta, a.PublishedAt.Local().Format(dateLayout))
		}

		fmt.Fprintf(w, "%s %s\n", mark, titleStyle.Render(a.Title))
		if len(meta) > 0 {
			fmt.Fprintf(w, "  %s\n", metaStyle.Render(strings.Join(meta, " · ")))
		}
		fmt.Fprintf(w, "  %s\n\n", a.URL)
	}
}

func renderFavourites(w io.Writer, list []models.FavouriteArticle) {
	if len(list) == 0 {
		fmt.Fprintln(w, metaStyle.Render("No favourites yet."))
		return
	}

	for i, f := range list {
		fmt.Fprintf(w, "%2d. %s\n", i+1, titleStyle.Render(f.Title))
		if f.Description != "" {
			fmt.Fprintf(w, "    %s\n", metaStyle.Render(f.Description))
		}
		fmt.Fprintf(w, "    %s\n", f.URL)
	}
}

func renderSuccess(w io.Writer, text string) {
	fmt.Fprintln(w, successStyle.Render(text))
}
