package handlers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/giannis84/news-favourites/internal/models"
)

const (
	maxURLLength         = 2048
	maxTitleLength       = 512
	maxDescriptionLength = 4096
	maxQueryLength       = 500
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// validate collects errors and returns a *ValidationError if any exist.
func validate(checks ...func() string) error {
	var errs []string
	for _, check := range checks {
		if msg := check(); msg != "" {
			errs = append(errs, msg)
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func requireNonEmpty(field, value string) string {
	if strings.TrimSpace(value) == "" {
		return fmt.Sprintf("%s is required", field)
	}
	return ""
}

func checkMaxLength(field, value string, max int) string {
	if len(value) > max {
		return fmt.Sprintf("%s exceeds maximum length of %d", field, max)
	}
	return ""
}

// checkHTTPURL accepts empty values; required-ness is checked separately.
func checkHTTPURL(field, value string) string {
	if value == "" {
		return ""
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Sprintf("%s must be an absolute http(s) URL", field)
	}
	return ""
}

func checkCategory(value string) string {
	if _, ok := models.LookupCategory(value); ok {
		return ""
	}
	ids := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		ids = append(ids, c.ID)
	}
	return fmt.Sprintf("category has invalid value %q (allowed: %s)", value, strings.Join(ids, ", "))
}

// validateFavourite validates a favourite before it is stored. Only url and title are required.
func validateFavourite(a *models.FavouriteArticle) error {
	return validate(
		func() string { return requireNonEmpty("url", a.URL) },
		func() string { return checkMaxLength("url", a.URL, maxURLLength) },
		func() string { return checkHTTPURL("url", a.URL) },
		func() string { return requireNonEmpty("title", a.Title) },
		func() string { return checkMaxLength("title", a.Title, maxTitleLength) },
		func() string { return checkMaxLength("description", a.Description, maxDescriptionLength) },
		func() string { return checkMaxLength("urlToImage", a.ImageURL, maxURLLength) },
		func() string { return checkHTTPURL("urlToImage", a.ImageURL) },
	)
}

// ValidateArticleURL validates a url used as a favourites lookup key.
func ValidateArticleURL(u string) error {
	return validate(
		func() string { return requireNonEmpty("url", u) },
		func() string { return checkMaxLength("url", u, maxURLLength) },
	)
}

func validateNewsRequest(category, query string) error {
	return validate(
		func() string { return checkMaxLength("q", query, maxQueryLength) },
		func() string {
			if query != "" {
				return ""
			}
			return checkCategory(category)
		},
	)
}
