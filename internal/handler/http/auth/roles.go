package auth

import (
	"strings"

	"newsdesk/internal/domain/entity"
)

// Rule pairs the HTTP methods a role may use with the path patterns they
// apply to.
type Rule struct {
	// Methods specifies which HTTP methods this rule allows.
	Methods []string

	// Paths specifies which URL paths this rule covers.
	// Supports wildcards: "/*" matches all paths, "/articles/*" matches all
	// article endpoints.
	Paths []string
}

// RolePermissions is the coarse route gate per role. Fine-grained ownership
// and moderation checks happen in the use case layer; this table only keeps
// roles away from whole endpoint families.
//
// Security model:
//   - editor: full access, including moderation verbs
//   - journalist: writes own articles and newsletters, reads the rest
//   - reader: read-only plus managing own subscriptions
//
// OPTIONS is allowed everywhere to support CORS preflight requests.
var RolePermissions = map[string][]Rule{
	string(entity.RoleEditor): {
		{Methods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}, Paths: []string{"/*"}},
	},
	string(entity.RoleJournalist): {
		{Methods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}, Paths: []string{"/articles/*", "/newsletters/*"}},
		{Methods: []string{"GET", "OPTIONS"}, Paths: []string{"/publishers/*", "/categories/*"}},
	},
	string(entity.RoleReader): {
		{Methods: []string{"GET", "OPTIONS"}, Paths: []string{"/articles/*", "/publishers/*", "/categories/*", "/newsletters/*"}},
		{Methods: []string{"GET", "POST", "DELETE", "OPTIONS"}, Paths: []string{"/subscriptions/*"}},
	},
}

// checkRolePermission checks if a role has permission for a method and path.
// Returns false if the role doesn't exist or no rule covers the combination.
//
// Example:
//
//	checkRolePermission("editor", "POST", "/articles/1/approve") // true
//	checkRolePermission("reader", "GET", "/articles/1")          // true
//	checkRolePermission("reader", "POST", "/articles")           // false
//	checkRolePermission("journalist", "POST", "/subscriptions")  // false
//	checkRolePermission("", "GET", "/articles")                  // false
func checkRolePermission(role, method, path string) bool {
	if role == "" {
		return false
	}

	rules, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, rule := range rules {
		if methodAllowed(method, rule.Methods) && matchesPathPattern(path, rule.Paths) {
			return true
		}
	}
	return false
}

func methodAllowed(method string, allowed []string) bool {
	for _, m := range allowed {
		if m == method {
			return true
		}
	}
	return false
}

// matchesPathPattern checks if a path matches any of the allowed patterns.
//
// Pattern matching rules:
//   - "/*" matches all paths
//   - "/articles/*" matches "/articles", "/articles/1", "/articles/1/submit"
//   - "/articles" matches only "/articles" (exact match)
func matchesPathPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/*" {
			return true
		}

		if strings.HasSuffix(pattern, "/*") {
			prefix := strings.TrimSuffix(pattern, "/*")
			// the bare prefix and any subpath both match
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}

		if path == pattern {
			return true
		}
	}
	return false
}
