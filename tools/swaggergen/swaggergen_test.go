package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/giannis84/news-favourites/internal/config"
	"github.com/giannis84/news-favourites/internal/routes"
	"github.com/go-chi/chi/v5"
)

func operationFor(item *PathItem, method string) *Operation {
	switch method {
	case http.MethodGet:
		return item.Get
	case http.MethodPost:
		return item.Post
	case http.MethodDelete:
		return item.Delete
	}
	return nil
}

// Every registered API route must be documented.
func TestBuildPaths_CoversRegisteredRoutes(t *testing.T) {
	r := chi.NewRouter()
	routes.RegisterAPIRoutes(nil, nil, config.RateLimitConfig{})(r)

	paths := buildPaths()
	walked := 0
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		walked++
		route = strings.TrimSuffix(route, "/")
		item, ok := paths[route]
		if !ok {
			t.Errorf("route %s %s is not documented", method, route)
			return nil
		}
		if operationFor(item, method) == nil {
			t.Errorf("route %s %s has no documented operation", method, route)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk routes: %v", err)
	}
	if walked == 0 {
		t.Fatal("expected registered routes")
	}
}

func TestBuildSpec_RefsResolve(t *testing.T) {
	spec := buildSpec()

	var check func(where string, s Schema)
	check = func(where string, s Schema) {
		if s.Ref != "" {
			name := strings.TrimPrefix(s.Ref, "#/components/schemas/")
			if _, ok := spec.Components.Schemas[name]; !ok {
				t.Errorf("%s: unresolved ref %s", where, s.Ref)
			}
		}
		if s.Items != nil {
			check(where, *s.Items)
		}
		for name, p := range s.Properties {
			check(where+"."+name, p)
		}
	}

	for name, s := range spec.Components.Schemas {
		check(name, s)
	}
	for path, item := range spec.Paths {
		for _, op := range []*Operation{item.Get, item.Post, item.Delete} {
			if op == nil {
				continue
			}
			if op.RequestBody != nil {
				for _, mt := range op.RequestBody.Content {
					check(path, mt.Schema)
				}
			}
			for code, resp := range op.Responses {
				for _, mt := range resp.Content {
					check(path+" "+code, mt.Schema)
				}
			}
		}
	}
}

func TestCategoryIDs(t *testing.T) {
	ids := categoryIDs()
	if len(ids) != 7 || ids[0] != "general" {
		t.Fatalf("unexpected category ids: %v", ids)
	}
}
