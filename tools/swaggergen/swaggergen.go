// Command swaggergen generates OpenAPI 3.0 specification files (JSON and YAML)
// for the News Favourites API and writes them to the api/ directory.
//
// Usage:
//
//	go run ./tools/swaggergen
//
// # For Contributors
//
// When you modify the API (add/change endpoints, request/response schemas, etc.),
// update this file to keep the swagger spec in sync:
//
//  1. Endpoints: Edit buildPaths() to add/modify path items and operations
//  2. Schemas: Edit buildSchemas() to add/modify request/response types
//  3. Regenerate: Run `go run ./tools/swaggergen` from the project root
//  4. Verify: Check api/swagger.yaml and api/swagger.json for correctness
//
// Helper functions:
//   - errContent(): Returns standard error response content (reuse for error responses)
//   - jsonContent(): Wraps a schema reference as application/json content
//   - articleURLParam(): Returns the ?url= query parameter definition
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/giannis84/news-favourites/internal/models"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Lightweight OpenAPI 3.0 types
// ---------------------------------------------------------------------------

type OpenAPI struct {
	OpenAPI    string               `json:"openapi"              yaml:"openapi"`
	Info       Info                 `json:"info"                 yaml:"info"`
	Paths      map[string]*PathItem `json:"paths"                yaml:"paths"`
	Components Components           `json:"components"           yaml:"components"`
}

type Info struct {
	Title       string `json:"title"       yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version"     yaml:"version"`
}

type PathItem struct {
	Get    *Operation `json:"get,omitempty"    yaml:"get,omitempty"`
	Post   *Operation `json:"post,omitempty"   yaml:"post,omitempty"`
	Delete *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
}

type Operation struct {
	Tags        []string            `json:"tags"                  yaml:"tags"`
	Summary     string              `json:"summary"               yaml:"summary"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string              `json:"operationId"           yaml:"operationId"`
	Parameters  []Parameter         `json:"parameters,omitempty"  yaml:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"             yaml:"responses"`
}

type Parameter struct {
	Name        string `json:"name"        yaml:"name"`
	In          string `json:"in"          yaml:"in"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required"    yaml:"required"`
	Schema      Schema `json:"schema"      yaml:"schema"`
}

type RequestBody struct {
	Required    bool                 `json:"required"              yaml:"required"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Content     map[string]MediaType `json:"content"               yaml:"content"`
}

type MediaType struct {
	Schema Schema `json:"schema" yaml:"schema"`
}

type Response struct {
	Description string               `json:"description"       yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type Schema struct {
	Type                 string            `json:"type,omitempty"                 yaml:"type,omitempty"`
	Format               string            `json:"format,omitempty"               yaml:"format,omitempty"`
	Description          string            `json:"description,omitempty"          yaml:"description,omitempty"`
	Properties           map[string]Schema `json:"properties,omitempty"           yaml:"properties,omitempty"`
	Items                *Schema           `json:"items,omitempty"                yaml:"items,omitempty"`
	Required             []string          `json:"required,omitempty"             yaml:"required,omitempty"`
	Enum                 []string          `json:"enum,omitempty"                 yaml:"enum,omitempty"`
	Ref                  string            `json:"$ref,omitempty"                 yaml:"$ref,omitempty"`
	AdditionalProperties *Schema           `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	OneOf                []Schema          `json:"oneOf,omitempty"                yaml:"oneOf,omitempty"`
	Example              any               `json:"example,omitempty"              yaml:"example,omitempty"`
}

type Components struct {
	Schemas map[string]Schema `json:"schemas" yaml:"schemas"`
}

// ---------------------------------------------------------------------------
// Spec builder
// ---------------------------------------------------------------------------

func buildSpec() OpenAPI {
	return OpenAPI{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:       "News Favourites API",
			Description: "Top headlines by category or free-text search, and a persisted list of favourite articles.",
			Version:     "1.0.0",
		},
		Paths: buildPaths(),
		Components: Components{
			Schemas: buildSchemas(),
		},
	}
}

func buildPaths() map[string]*PathItem {
	return map[string]*PathItem{
		"/api/v1/news": {
			Get: &Operation{
				Tags:        []string{"News"},
				Summary:     "Top headlines",
				Description: "Returns top headlines for a category, or searches by text when q is set. q takes precedence over category.",
				OperationID: "getNews",
				Parameters: []Parameter{
					{
						Name:        "category",
						In:          "query",
						Description: "News category (defaults to " + models.DefaultCategory + ")",
						Schema:      Schema{Type: "string", Enum: categoryIDs()},
					},
					{
						Name:        "q",
						In:          "query",
						Description: "Free-text search (max 500 chars)",
						Schema:      Schema{Type: "string"},
					},
				},
				Responses: map[string]Response{
					"200": {Description: "Matching articles", Content: jsonContent("NewsResponse")},
					"400": {Description: "Unknown category or query too long", Content: errContent()},
					"429": {Description: "Rate limit exceeded"},
					"502": {Description: "News service error", Content: errContent()},
					"503": {Description: "News service is not configured", Content: errContent()},
				},
			},
		},
		"/api/v1/news/categories": {
			Get: &Operation{
				Tags:        []string{"News"},
				Summary:     "List categories",
				OperationID: "getCategories",
				Responses: map[string]Response{
					"200": {
						Description: "Available categories",
						Content: map[string]MediaType{
							"application/json": {Schema: Schema{
								Type:  "array",
								Items: &Schema{Ref: "#/components/schemas/Category"},
							}},
						},
					},
				},
			},
		},
		"/api/v1/favourites": {
			Get: &Operation{
				Tags:        []string{"Favourites"},
				Summary:     "List favourites",
				Description: "Returns the favourite articles in insertion order.",
				OperationID: "getFavourites",
				Responses: map[string]Response{
					"200": {
						Description: "A list of favourite articles",
						Content: map[string]MediaType{
							"application/json": {Schema: Schema{
								Type:  "array",
								Items: &Schema{Ref: "#/components/schemas/FavouriteArticle"},
							}},
						},
					},
				},
			},
			Post: &Operation{
				Tags:        []string{"Favourites"},
				Summary:     "Add a favourite",
				Description: "Appends an article to the favourites list and persists it.",
				OperationID: "addFavourite",
				RequestBody: &RequestBody{
					Required:    true,
					Description: "Article to favourite",
					Content:     jsonContent("FavouriteArticle"),
				},
				Responses: map[string]Response{
					"201": {Description: "Favourite added", Content: jsonContent("SuccessMessage")},
					"400": {Description: "Invalid request body or validation error", Content: errContent()},
					"409": {Description: "Favourite already exists", Content: errContent()},
				},
			},
			Delete: &Operation{
				Tags:        []string{"Favourites"},
				Summary:     "Remove a favourite",
				Description: "Removes every entry with the given url. Removing an absent url succeeds.",
				OperationID: "removeFavourite",
				Parameters:  []Parameter{articleURLParam()},
				Responses: map[string]Response{
					"200": {Description: "Favourite removed", Content: jsonContent("SuccessMessage")},
					"400": {Description: "Missing or invalid url", Content: errContent()},
				},
			},
		},
		"/api/v1/favourites/status": {
			Get: &Operation{
				Tags:        []string{"Favourites"},
				Summary:     "Favourite status",
				Description: "Reports whether an article is in the favourites list.",
				OperationID: "getFavouriteStatus",
				Parameters:  []Parameter{articleURLParam()},
				Responses: map[string]Response{
					"200": {Description: "Status of the article", Content: jsonContent("FavouriteStatus")},
					"400": {Description: "Missing or invalid url", Content: errContent()},
				},
			},
		},
		"/api/v1/favourites/toggle": {
			Post: &Operation{
				Tags:        []string{"Favourites"},
				Summary:     "Toggle a favourite",
				Description: "Removes the article when it is a favourite, adds it otherwise.",
				OperationID: "toggleFavourite",
				RequestBody: &RequestBody{
					Required: true,
					Content:  jsonContent("FavouriteArticle"),
				},
				Responses: map[string]Response{
					"200": {Description: "Resulting status", Content: jsonContent("FavouriteStatus")},
					"400": {Description: "Invalid request body or validation error", Content: errContent()},
				},
			},
		},
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func articleURLParam() Parameter {
	return Parameter{
		Name:        "url",
		In:          "query",
		Description: "Absolute http(s) URL identifying the article",
		Required:    true,
		Schema:      Schema{Type: "string", Format: "uri"},
	}
}

func categoryIDs() []string {
	ids := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

func jsonContent(schema string) map[string]MediaType {
	return map[string]MediaType{
		"application/json": {Schema: Schema{Ref: "#/components/schemas/" + schema}},
	}
}

func errContent() map[string]MediaType {
	return jsonContent("ErrorResponse")
}

func buildSchemas() map[string]Schema {
	return map[string]Schema{
		"ErrorResponse": {
			Type: "object",
			Properties: map[string]Schema{
				"error": {Type: "string", Description: "Human-readable error message"},
			},
			Required: []string{"error"},
		},
		"SuccessMessage": {
			Type: "object",
			Properties: map[string]Schema{
				"message": {Type: "string", Description: "Success message"},
			},
			Required: []string{"message"},
		},
		"FavouriteArticle": {
			Type:        "object",
			Description: "A favourited article. The url identifies it.",
			Properties: map[string]Schema{
				"title":       {Type: "string", Description: "Max 512 chars"},
				"description": {Type: "string", Description: "Max 4096 chars"},
				"urlToImage":  {Type: "string", Format: "uri"},
				"url":         {Type: "string", Format: "uri", Description: "Absolute http(s) URL, max 2048 chars"},
			},
			Required: []string{"title", "url"},
		},
		"FavouriteStatus": {
			Type: "object",
			Properties: map[string]Schema{
				"url":       {Type: "string", Format: "uri"},
				"favourite": {Type: "boolean"},
			},
			Required: []string{"url", "favourite"},
		},
		"Category": {
			Type: "object",
			Properties: map[string]Schema{
				"id":   {Type: "string", Enum: categoryIDs()},
				"name": {Type: "string", Description: "Display name"},
			},
			Required: []string{"id", "name"},
		},
		"Source": {
			Type: "object",
			Properties: map[string]Schema{
				"id":   {Type: "string"},
				"name": {Type: "string"},
			},
		},
		"Article": {
			Type:        "object",
			Description: "A news article as returned by the upstream news service.",
			Properties: map[string]Schema{
				"source":      {Ref: "#/components/schemas/Source"},
				"author":      {Type: "string"},
				"title":       {Type: "string"},
				"description": {Type: "string"},
				"url":         {Type: "string", Format: "uri"},
				"urlToImage":  {Type: "string", Format: "uri"},
				"publishedAt": {Type: "string", Format: "date-time"},
				"content":     {Type: "string"},
			},
			Required: []string{"title", "url"},
		},
		"NewsResponse": {
			Type: "object",
			Properties: map[string]Schema{
				"category": {Type: "string", Description: "Set when searching by category"},
				"query":    {Type: "string", Description: "Set when searching by text"},
				"count":    {Type: "integer"},
				"articles": {
					Type:  "array",
					Items: &Schema{Ref: "#/components/schemas/Article"},
				},
			},
			Required: []string{"count", "articles"},
		},
	}
}

// ---------------------------------------------------------------------------
// File writers
// ---------------------------------------------------------------------------

func writeJSON(spec OpenAPI, path string) error {
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}

func writeYAML(spec OpenAPI, path string) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("marshal YAML: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func main() {
	_, src, _, _ := runtime.Caller(0)
	outDir := filepath.Join(filepath.Join(filepath.Dir(src), "..", ".."), "api")

	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create api/ directory: %v\n", err)
		os.Exit(1)
	}

	spec := buildSpec()

	jsonPath := filepath.Join(outDir, "swagger.json")
	if err := writeJSON(spec, jsonPath); err != nil {
		fmt.Fprintf(os.Stderr, "error writing JSON: %v\n", err)
		os.Exit(1)
	}

	yamlPath := filepath.Join(outDir, "swagger.yaml")
	if err := writeYAML(spec, yamlPath); err != nil {
		fmt.Fprintf(os.Stderr, "error writing YAML: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Swagger specs generated:\n  %s\n  %s\n", jsonPath, yamlPath)
}
