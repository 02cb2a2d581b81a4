package cli

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/giannis84/news-favourites/internal/handlers"
	"github.com/giannis84/news-favourites/internal/newsapi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Plain output so assertions do not depend on the terminal running the tests.
	lipgloss.SetColorProfile(termenv.Ascii)
	m.Run()
}

const headlinesBody = `{
	"status": "ok",
	"totalResults": 2,
	"articles": [
		{"source": {"id": null, "name": "Example Wire"}, "title": "Go 1.30 released", "url": "https://example.com/go", "publishedAt": "2026-01-02T03:04:05Z"},
		{"source": {"id": null, "name": "Example Wire"}, "title": "Rain expected", "url": "https://example.com/rain", "publishedAt": "2026-01-02T04:05:06Z"}
	]
}`

type fakeNewsAPI struct {
	mu      sync.Mutex
	queries []url.Values
}

func (f *fakeNewsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.queries = append(f.queries, r.URL.Query())
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(headlinesBody))
}

func (f *fakeNewsAPI) last() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return nil
	}
	return f.queries[len(f.queries)-1]
}

// setupEnv points newsctl at a temporary SQLite file and a fake news API.
func setupEnv(t *testing.T) *fakeNewsAPI {
	t.Helper()
	dir := t.TempDir()

	api := &fakeNewsAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	t.Setenv("CONFIG_PATH", filepath.Join(dir, "missing.yaml"))
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "favourites.db"))
	t.Setenv("STORAGE_NAMESPACE", "cli-test")
	t.Setenv("NEWS_API_KEY", "test-key")
	t.Setenv("NEWS_API_BASE_URL", srv.URL)
	return api
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCategories(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "categories")
	require.NoError(t, err)
	for _, id := range []string{"general", "technology", "business", "sports", "entertainment", "health", "science"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "Tecnologia")
}

func TestFavourites_AddListRemove(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "favourites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No favourites yet.")

	_, err = run(t, "favourites", "add", "--url", "https://example.com/a", "--title", "Article A", "--description", "first")
	require.NoError(t, err)
	_, err = run(t, "fav", "add", "--url", "https://example.com/b", "--title", "Article B")
	require.NoError(t, err)

	// Each invocation reopens storage, so the list must come back from disk.
	out, err = run(t, "favourites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Article A")
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "Article B")
	assert.Less(t, bytes.Index([]byte(out), []byte("Article A")), bytes.Index([]byte(out), []byte("Article B")))

	out, err = run(t, "favourites", "remove", "https://example.com/a")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed from favourites")

	out, err = run(t, "favourites", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Article A")
	assert.Contains(t, out, "Article B")
}

func TestFavourites_AddRejectsDuplicate(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "favourites", "add", "--url", "https://example.com/a", "--title", "Article A")
	require.NoError(t, err)

	_, err = run(t, "favourites", "add", "--url", "https://example.com/a", "--title", "Article A")
	require.Error(t, err)
	assert.True(t, errors.Is(err, handlers.ErrAlreadyFavourite))
}

func TestFavourites_AddValidates(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "relative url", args: []string{"--url", "/relative", "--title", "T"}},
		{name: "missing title", args: []string{"--url", "https://example.com/x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"favourites", "add"}, tt.args...)...)
			var validationErr *handlers.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestFavourites_RequiresURLFlag(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "favourites", "add", "--title", "T")
	require.Error(t, err)
}

func TestFavourites_Toggle(t *testing.T) {
	setupEnv(t)

	args := []string{"favourites", "toggle", "--url", "https://example.com/t", "--title", "Toggled"}

	out, err := run(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Added to favourites")

	out, err = run(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed from favourites")

	out, err = run(t, "favourites", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Toggled")
}

func TestHeadlines_MarksFavourites(t *testing.T) {
	api := setupEnv(t)

	_, err := run(t, "favourites", "add", "--url", "https://example.com/go", "--title", "Go 1.30 released")
	require.NoError(t, err)

	out, err := run(t, "headlines", "--category", "technology")
	require.NoError(t, err)
	assert.Contains(t, out, "Tecnologia (2)")
	assert.Contains(t, out, "★")
	assert.Contains(t, out, "Go 1.30 released")
	assert.Contains(t, out, "Fonte: Example Wire")
	assert.Contains(t, out, "https://example.com/rain")

	q := api.last()
	require.NotNil(t, q)
	assert.Equal(t, "technology", q.Get("category"))
	assert.Equal(t, "us", q.Get("country"))
}

func TestHeadlines_QueryTakesPrecedence(t *testing.T) {
	api := setupEnv(t)

	out, err := run(t, "headlines", "-c", "sports", "-q", "golang")
	require.NoError(t, err)
	assert.Contains(t, out, `Results for "golang" (2)`)
	assert.NotContains(t, out, "★")

	q := api.last()
	require.NotNil(t, q)
	assert.Equal(t, "golang", q.Get("q"))
	assert.Empty(t, q.Get("category"))
}

func TestHeadlines_UnknownCategory(t *testing.T) {
	api := setupEnv(t)

	_, err := run(t, "headlines", "--category", "astrology")
	var validationErr *handlers.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Nil(t, api.last(), "the news API must not be called for an invalid category")
}

func TestHeadlines_MissingAPIKey(t *testing.T) {
	setupEnv(t)
	t.Setenv("NEWS_API_KEY", "")

	_, err := run(t, "headlines")
	require.ErrorIs(t, err, newsapi.ErrMissingAPIKey)
}

func TestInit_RejectsUnknownDriver(t *testing.T) {
	setupEnv(t)
	t.Setenv("STORAGE_DRIVER", "redis")

	_, err := run(t, "categories")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage driver")
}
