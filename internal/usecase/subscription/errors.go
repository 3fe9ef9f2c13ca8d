// Package subscription manages reader subscriptions to publishers and
// journalists and resolves the recipient set for the published-article
// fan-out.
package subscription

import "errors"

// Sentinel errors for subscription use case operations.
var (
	// ErrDuplicateSubscription indicates the reader already subscribes to the
	// target.
	ErrDuplicateSubscription = errors.New("subscription already exists")

	// ErrPermissionDenied indicates the acting user may not perform the
	// operation: only readers subscribe, and only the owning reader may
	// unsubscribe.
	ErrPermissionDenied = errors.New("permission denied")
)
