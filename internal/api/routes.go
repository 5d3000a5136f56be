// ABOUTME: Public route registry exempt from auth-header attachment
// ABOUTME: Matches normalized path prefixes so nested resources are covered

package api

import "strings"

// publicRoutePrefixes lists path prefixes that never carry credentials and
// never force a redirect on 401. Prefix matching, not equality: nested
// resources like /requests/public/123 must also match.
var publicRoutePrefixes = []string{
	"/auth/login",
	"/auth/register",
	"/requests/public",
	"/videos/public",
	"/showcase/public",
	"/marketplace/products",
	"/health",
}

// IsPublicRoute reports whether path belongs to the public route set.
func IsPublicRoute(path string) bool {
	path = normalizePath(path)
	for _, prefix := range publicRoutePrefixes {
		if path == prefix {
			return true
		}
		if strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// normalizePath strips any query string and trailing slashes.
func normalizePath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
