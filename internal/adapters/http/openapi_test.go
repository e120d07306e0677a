package http_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/samirrijal/bucketlist/api"
)

// TestOpenAPISpec validates the embedded OpenAPI document.
func TestOpenAPISpec(t *testing.T) {
	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		t.Fatalf("failed to parse OpenAPI spec: %v", err)
	}

	if err := spec.Validate(context.Background()); err != nil {
		t.Fatalf("OpenAPI spec validation failed: %v", err)
	}

	expectedPaths := []string{
		"/v1/health",
		"/v1/ready",
		"/v1/city",
		"/v1/attractions",
		"/v1/attractions/nearby",
		"/v1/attractions/{id}",
		"/v1/attractions/{id}/distance",
		"/v1/view",
		"/v1/view/attractions",
		"/v1/view/select/{id}",
		"/v1/view/clear",
		"/v1/view/events",
		"/graphql",
	}

	for _, path := range expectedPaths {
		if item := spec.Paths.Find(path); item == nil {
			t.Errorf("expected path %s not found in spec", path)
		}
	}
}

func TestOpenAPISpec_ErrorSchema(t *testing.T) {
	loader := openapi3.NewLoader()
	spec, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		t.Fatalf("failed to parse OpenAPI spec: %v", err)
	}

	schema, ok := spec.Components.Schemas["APIError"]
	if !ok {
		t.Fatal("APIError schema missing")
	}
	for _, field := range []string{"status", "code", "message", "request_id"} {
		if _, ok := schema.Value.Properties[field]; !ok {
			t.Errorf("APIError missing property %s", field)
		}
	}
}
