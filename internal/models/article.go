// Article and favourite model definitions

package models

import "time"

// FavouriteArticle is the persisted form of an article the user marked as favourite.
// URL identifies the entry within the favourites list.
type FavouriteArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"urlToImage"`
	URL         string `json:"url"`
}

type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article is a single record returned by the news retrieval service.
type Article struct {
	Source      Source    `json:"source"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"urlToImage"`
	PublishedAt time.Time `json:"publishedAt"`
	Content     string    `json:"content"`
}

// Favourite returns the identifying fields of the article that get persisted.
func (a *Article) Favourite() FavouriteArticle {
	return FavouriteArticle{
		Title:       a.Title,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		URL:         a.URL,
	}
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const DefaultCategory = "general"

// Categories lists the news categories the retrieval service accepts.
var Categories = []Category{
	{ID: "general", Name: "Geral"},
	{ID: "technology", Name: "Tecnologia"},
	{ID: "business", Name: "Negócios"},
	{ID: "sports", Name: "Esportes"},
	{ID: "entertainment", Name: "Entretenimento"},
	{ID: "health", Name: "Saúde"},
	{ID: "science", Name: "Ciência"},
}

// LookupCategory returns the category with the given id.
func LookupCategory(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
