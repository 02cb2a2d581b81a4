package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetrics_ExposedOnHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.FavouriteOp("add", true)
	m.FavouriteOp("add", false)
	m.FavouritesCount(3)
	m.NewsRequest("category", true, 120*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`newsfav_favourite_operations_total{operation="add",result="ok"} 1`,
		`newsfav_favourite_operations_total{operation="add",result="error"} 1`,
		`newsfav_favourites 3`,
		`newsfav_news_api_requests_total{kind="category",result="ok"} 1`,
		`newsfav_news_api_request_duration_seconds_count 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected metrics output to contain %q", want)
		}
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.FavouriteOp("add", true)
	m.FavouritesCount(1)
	m.NewsRequest("search", false, time.Second)
}
