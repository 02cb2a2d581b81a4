package favourites

import (
	"context"
	"errors"
	"net/http"
)

// ErrNoStore signals that favourites were requested outside a Provider scope.
var ErrNoStore = errors.New("favourites: no store in context, the handler must run inside favourites.Provider")

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the Store attached by NewContext or Provider.
// It panics with ErrNoStore when there is none: there is no valid fallback.
func FromContext(ctx context.Context) *Store {
	s, ok := ctx.Value(contextKey{}).(*Store)
	if !ok || s == nil {
		panic(ErrNoStore)
	}
	return s
}

// Provider is middleware that makes s available to downstream handlers through FromContext.
func Provider(s *Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s)))
		})
	}
}
