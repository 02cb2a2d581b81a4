package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/giannis84/news-favourites/internal/config"
	"github.com/giannis84/news-favourites/internal/favourites"
	"github.com/giannis84/news-favourites/internal/handlers"
	"github.com/giannis84/news-favourites/internal/logging"
	"github.com/giannis84/news-favourites/internal/models"
	"github.com/giannis84/news-favourites/internal/newsapi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// RegisterAPIRoutes sets up the news and favourites API routes.
// HTTP concerns are handled here, while business logic is delegated to the handlers package.
func RegisterAPIRoutes(store *favourites.Store, news handlers.NewsSource, rateLimit config.RateLimitConfig) func(r chi.Router) {
	return func(r chi.Router) {
		r.Route("/api/v1", func(r chi.Router) {
			r.Use(favourites.Provider(store))
			r.Route("/news", func(r chi.Router) {
				// The upstream news API has a request quota; limit per client before spending it.
				if rateLimit.Requests > 0 {
					r.Use(httprate.LimitByIP(rateLimit.Requests, rateLimit.Window))
				}
				r.Get("/", getNewsRoute(news))
				r.Get("/categories", getCategoriesRoute())
			})
			r.Route("/favourites", func(r chi.Router) {
				r.Get("/", getFavouritesRoute())
				r.Post("/", addFavouriteRoute())
				r.Delete("/", removeFavouriteRoute())
				r.Get("/status", favouriteStatusRoute())
				r.Post("/toggle", toggleFavouriteRoute())
			})
		})
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type NewsResponse struct {
	Category string           `json:"category,omitempty"`
	Query    string           `json:"query,omitempty"`
	Count    int              `json:"count"`
	Articles []models.Article `json:"articles"`
}

type FavouriteStatusResponse struct {
	URL       string `json:"url"`
	Favourite bool   `json:"favourite"`
}

func getNewsRoute(news handlers.NewsSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		category := r.URL.Query().Get("category")
		query := r.URL.Query().Get("q")

		logging.Log(ctx).Layer("routes").Op("getNews").Category(category).Query(query).
			Info("received get news request")

		articles, err := handlers.GetNews(ctx, news, category, query)
		if err != nil {
			var validationErr *handlers.ValidationError
			var apiErr *newsapi.APIError
			switch {
			case errors.As(err, &validationErr):
				logging.Log(ctx).Layer("routes").Category(category).Query(query).Err(err).
					Warn("invalid get news request")
				respondWithError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, newsapi.ErrMissingAPIKey):
				logging.Log(ctx).Layer("routes").Err(err).Error("news api is not configured")
				respondWithError(w, http.StatusServiceUnavailable, "News service is not configured")
			case errors.As(err, &apiErr):
				logging.Log(ctx).Layer("routes").Int("upstream_status", apiErr.StatusCode).
					Str("upstream_code", apiErr.Code).Err(err).Error("news api returned an error")
				respondWithError(w, http.StatusBadGateway, "News service error: "+apiErr.Message)
			default:
				logging.Log(ctx).Layer("routes").Category(category).Query(query).Err(err).
					Error("failed to fetch news")
				respondWithError(w, http.StatusBadGateway, "Failed to fetch news")
			}
			return
		}

		resp := NewsResponse{Count: len(articles), Articles: articles}
		if query != "" {
			resp.Query = query
		} else {
			resp.Category = category
			if resp.Category == "" {
				resp.Category = models.DefaultCategory
			}
		}

		logging.Log(ctx).Layer("routes").Op("getNews").Int("count", len(articles)).
			Int("status_code", http.StatusOK).Info("news retrieved successfully")
		respondWithJSON(w, http.StatusOK, resp)
	}
}

func getCategoriesRoute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, models.Categories)
	}
}

func getFavouritesRoute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		store := favourites.FromContext(ctx)

		list := handlers.GetFavourites(store)

		logging.Log(ctx).Layer("routes").Op("getFavourites").
			Int("count", len(list)).Int("status_code", http.StatusOK).
			Info("favourites retrieved successfully")
		respondWithJSON(w, http.StatusOK, list)
	}
}

func addFavouriteRoute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		store := favourites.FromContext(ctx)

		var req models.FavouriteArticle
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logging.Log(ctx).Layer("routes").Op("addFavourite").Err(err).
				Error("failed to decode request body")
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		logging.Log(ctx).Layer("routes").Op("addFavourite").Article(req.URL).
			Info("received add favourite request")

		err := handlers.AddFavourite(ctx, store, req)
		if err != nil {
			var validationErr *handlers.ValidationError
			if errors.As(err, &validationErr) {
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			if errors.Is(err, handlers.ErrAlreadyFavourite) {
				logging.Log(ctx).Layer("routes").Article(req.URL).Warn("favourite already exists")
				respondWithError(w, http.StatusConflict, "Favourite already exists")
				return
			}
			logging.Log(ctx).Layer("routes").Article(req.URL).Err(err).Error("failed to add favourite")
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		logging.Log(ctx).Layer("routes").Op("addFavourite").Article(req.URL).
			Int("status_code", http.StatusCreated).Info("favourite added successfully")
		respondWithJSON(w, http.StatusCreated, map[string]string{"message": "Favourite added successfully"})
	}
}

func removeFavouriteRoute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		store := favourites.FromContext(ctx)
		url := r.URL.Query().Get("url")

		logging.Log(ctx).Layer("routes").Op("removeFavourite").Article(url).
			Info("received remove favourite request")

		if err := handlers.RemoveFavourite(ctx, store, url); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		logging.Log(ctx).Layer("routes").Op("removeFavourite").Article(url).
			Int("status_code", http.StatusOK).Info("favourite removed successfully")
		respondWithJSON(w, http.StatusOK, map[string]string{"message": "Favourite removed successfully"})
	}
}

func favouriteStatusRoute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		store := favourites.FromContext(ctx)
		url := r.URL.Query().Get("url")

		favourite, err := handlers.IsFavourite(store, url)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, FavouriteStatusResponse{URL: url, Favourite: favourite})
	}
}

func toggleFavouriteRoute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		store := favourites.FromContext(ctx)

		var req models.FavouriteArticle
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logging.Log(ctx).Layer("routes").Op("toggleFavourite").Err(err).
				Error("failed to decode request body")
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		favourite, err := handlers.ToggleFavourite(ctx, store, req)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		logging.Log(ctx).Layer("routes").Op("toggleFavourite").Article(req.URL).
			Bool("favourite", favourite).Info("favourite toggled")
		respondWithJSON(w, http.StatusOK, FavouriteStatusResponse{URL: req.URL, Favourite: favourite})
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}
