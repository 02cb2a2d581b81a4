package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/giannis84/news-favourites/internal/favourites"
	"github.com/giannis84/news-favourites/internal/models"
)

// ErrAlreadyFavourite is returned by AddFavourite when the url is already in the list.
var ErrAlreadyFavourite = errors.New("article is already a favourite")

// NewsSource is the news retrieval service as seen by the handlers.
type NewsSource interface {
	ByCategory(ctx context.Context, category string) ([]models.Article, error)
	Search(ctx context.Context, query string) ([]models.Article, error)
}

func GetFavourites(store *favourites.Store) []models.FavouriteArticle {
	return store.List()
}

// AddFavourite validates and stores article. The store itself appends duplicates,
// so the check against an existing url happens here.
func AddFavourite(ctx context.Context, store *favourites.Store, article models.FavouriteArticle) error {
	article = normalize(article)
	if err := validateFavourite(&article); err != nil {
		return err
	}
	if store.IsFavourite(article.URL) {
		return ErrAlreadyFavourite
	}

	store.Add(ctx, article)
	return nil
}

func RemoveFavourite(ctx context.Context, store *favourites.Store, url string) error {
	url = strings.TrimSpace(url)
	if err := ValidateArticleURL(url); err != nil {
		return err
	}

	store.Remove(ctx, url)
	return nil
}

// ToggleFavourite favourites article, or unfavourites it when its url is already stored.
// It returns whether the article is a favourite afterwards.
func ToggleFavourite(ctx context.Context, store *favourites.Store, article models.FavouriteArticle) (bool, error) {
	article = normalize(article)
	if err := validateFavourite(&article); err != nil {
		return false, err
	}

	return store.Toggle(ctx, article), nil
}

func IsFavourite(store *favourites.Store, url string) (bool, error) {
	url = strings.TrimSpace(url)
	if err := ValidateArticleURL(url); err != nil {
		return false, err
	}

	return store.IsFavourite(url), nil
}

// GetNews searches by query when one is given and lists the category otherwise.
// An empty category means models.DefaultCategory.
func GetNews(ctx context.Context, news NewsSource, category, query string) ([]models.Article, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	query = strings.TrimSpace(query)
	if category == "" {
		category = models.DefaultCategory
	}

	if err := validateNewsRequest(category, query); err != nil {
		return nil, err
	}

	if query != "" {
		return news.Search(ctx, query)
	}
	return news.ByCategory(ctx, category)
}

func normalize(a models.FavouriteArticle) models.FavouriteArticle {
	a.URL = strings.TrimSpace(a.URL)
	a.ImageURL = strings.TrimSpace(a.ImageURL)
	a.Title = strings.TrimSpace(a.Title)
	return a
}
