// Package favourites keeps the user's favourite articles in memory and mirrors
// every change into durable key-value storage.
//
// Persistence is best-effort: storage failures are logged and never returned to
// callers. A mutation only replaces the in-memory list after its write succeeded,
// so a failed add or remove leaves the list exactly as it was.
package favourites

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/giannis84/news-favourites/internal/database"
	"github.com/giannis84/news-favourites/internal/logging"
	"github.com/giannis84/news-favourites/internal/models"
)

// StorageKey is the durable storage key holding the JSON-encoded favourites list.
const StorageKey = "favorites"

// Recorder receives operation outcomes. *metrics.Metrics satisfies it.
type Recorder interface {
	FavouriteOp(op string, ok bool)
	FavouritesCount(n int)
}

type noopRecorder struct{}

func (noopRecorder) FavouriteOp(string, bool) {}
func (noopRecorder) FavouritesCount(int)      {}

// Option configures a Store.
type Option func(*Store)

// WithRecorder reports operation outcomes to r.
func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		if r != nil {
			s.rec = r
		}
	}
}

// Store owns the favourites list for the lifetime of the process.
type Store struct {
	kv  database.KVStore
	rec Recorder

	loadOnce sync.Once

	// mu is held for the whole of a mutation, including the storage write,
	// so overlapping Add/Remove calls are applied one after the other.
	mu    sync.RWMutex
	items []models.FavouriteArticle
}

// New creates a Store backed by kv and loads the persisted list.
func New(ctx context.Context, kv database.KVStore, opts ...Option) *Store {
	s := NewUnloaded(kv, opts...)
	s.Load(ctx)
	return s
}

// NewUnloaded creates a Store without reading storage. Until Load runs the list
// is empty and every query reports false.
func NewUnloaded(kv database.KVStore, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		rec:   noopRecorder{},
		items: []models.FavouriteArticle{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted list into memory. Only the first call has an effect.
// A missing record, a read failure, or an unparseable payload all leave the list empty.
func (s *Store) Load(ctx context.Context) {
	s.loadOnce.Do(func() { s.load(ctx) })
}

func (s *Store) load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		logging.Log(ctx).Layer("favourites").Op("LoadFavourites").Key(StorageKey).Err(err).
			Error("failed to read favourites")
		s.rec.FavouriteOp("load", false)
		return
	}
	if !ok || raw == "" {
		logging.Log(ctx).Layer("favourites").Op("LoadFavourites").Key(StorageKey).
			Debug("no stored favourites")
		s.rec.FavouriteOp("load", true)
		return
	}

	items, err := decode(raw)
	if err != nil {
		logging.Log(ctx).Layer("favourites").Op("LoadFavourites").Key(StorageKey).Err(err).
			Error("failed to parse stored favourites")
		s.rec.FavouriteOp("load", false)
		return
	}

	s.items = items
	s.rec.FavouriteOp("load", true)
	s.rec.FavouritesCount(len(items))
	logging.Log(ctx).Layer("favourites").Op("LoadFavourites").Int("count", len(items)).
		Info("favourites loaded")
}

// Add appends article to the list and persists the result.
// An article already in the list is appended again.
func (s *Store) Add(ctx context.Context, article models.FavouriteArticle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.add(ctx, article)
}

func (s *Store) add(ctx context.Context, article models.FavouriteArticle) bool {
	next := make([]models.FavouriteArticle, len(s.items), len(s.items)+1)
	copy(next, s.items)
	next = append(next, article)

	if err := s.persist(ctx, next); err != nil {
		logging.Log(ctx).Layer("favourites").Op("AddFavourite").Article(article.URL).Err(err).
			Error("failed to add favourite")
		s.rec.FavouriteOp("add", false)
		return false
	}

	s.commit(next)
	s.rec.FavouriteOp("add", true)
	logging.Log(ctx).Layer("favourites").Op("AddFavourite").Article(article.URL).
		Int("count", len(next)).Debug("favourite added")
	return true
}

// Remove drops every entry with the given url and persists the result.
// The write happens even when nothing matched.
func (s *Store) Remove(ctx context.Context, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(ctx, url)
}

func (s *Store) remove(ctx context.Context, url string) bool {
	next := make([]models.FavouriteArticle, 0, len(s.items))
	for _, item := range s.items {
		if item.URL != url {
			next = append(next, item)
		}
	}

	if err := s.persist(ctx, next); err != nil {
		logging.Log(ctx).Layer("favourites").Op("RemoveFavourite").Article(url).Err(err).
			Error("failed to remove favourite")
		s.rec.FavouriteOp("remove", false)
		return false
	}

	s.commit(next)
	s.rec.FavouriteOp("remove", true)
	logging.Log(ctx).Layer("favourites").Op("RemoveFavourite").Article(url).
		Int("count", len(next)).Debug("favourite removed")
	return true
}

// Toggle removes article when its url is already a favourite and adds it otherwise.
// It reports whether the url is a favourite afterwards.
func (s *Store) Toggle(ctx context.Context, article models.FavouriteArticle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contains(article.URL) {
		s.remove(ctx, article.URL)
	} else {
		s.add(ctx, article)
	}
	return s.contains(article.URL)
}

// IsFavourite reports whether any entry has the given url.
func (s *Store) IsFavourite(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.contains(url)
}

// List returns a copy of the current favourites in insertion order.
func (s *Store) List() []models.FavouriteArticle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.items)
}

// Ping checks that the backing storage is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

func (s *Store) contains(url string) bool {
	return slices.ContainsFunc(s.items, func(item models.FavouriteArticle) bool {
		return item.URL == url
	})
}

func (s *Store) commit(next []models.FavouriteArticle) {
	s.items = next
	s.rec.FavouritesCount(len(next))
}

// persist writes the whole list. The write is detached from ctx cancellation:
// once issued, a mutation runs to completion or failure.
func (s *Store) persist(ctx context.Context, items []models.FavouriteArticle) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding favourites: %w", err)
	}
	return s.kv.Set(context.WithoutCancel(ctx), StorageKey, string(data))
}

func decode(raw string) ([]models.FavouriteArticle, error) {
	var items []models.FavouriteArticle
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decoding favourites: %w", err)
	}
	if items == nil {
		items = []models.FavouriteArticle{}
	}
	return items, nil
}
