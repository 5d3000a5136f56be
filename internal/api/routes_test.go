// ABOUTME: Tests for the public route registry
// ABOUTME: Verifies prefix matching honors path segment boundaries

package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPublicRoute(t *testing.T) {
	tests := []struct {
		path   string
		public bool
	}{
		{"/auth/login", true},
		{"/auth/register", true},
		{"/auth/me", false},
		{"/requests/public", true},
		{"/requests/public/", true},
		{"/requests/public/123", true},
		{"/requests/public?status=open", true},
		{"/requests/", false},
		{"/requests/shared-with-me", false},
		// A prefix match must stop at a path segment boundary.
		{"/requests/publicity", false},
		{"/videos/public", true},
		{"/videos/", false},
		{"/showcase/public/7", true},
		{"/showcase/7", false},
		{"/marketplace/products", true},
		{"/marketplace/products/3", true},
		{"/marketplace/purchases", false},
		{"/payments/subscription", false},
		{"/health", true},
		{"/", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.public, IsPublicRoute(tt.path), "path %q", tt.path)
	}
}
