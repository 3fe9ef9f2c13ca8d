// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Business metrics (article transitions, notifications, share posts)
//   - Database query metrics
//   - Application performance metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "newsdesk/internal/observability/metrics"
//
//	func deliver(ctx context.Context, msg mailer.Message) {
//	    start := time.Now()
//	    err := m.Send(ctx, msg)
//	    status := "sent"
//	    if err != nil {
//	        status = "failed"
//	    }
//	    metrics.RecordNotification(status, time.Since(start))
//	}
package metrics
