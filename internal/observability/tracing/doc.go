// Package tracing provides OpenTelemetry tracing integration.
//
// Key features:
//   - HTTP middleware that extracts W3C Trace Context from incoming requests
//   - Trace ID propagation to clients via the X-Trace-Id response header
//   - A shared tracer for creating spans throughout the application
//
// Example usage:
//
//	import "newsdesk/internal/observability/tracing"
//
//	func main() {
//	    mux := http.NewServeMux()
//	    http.ListenAndServe(":8080", tracing.Middleware(mux))
//	}
//
//	func approve(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "article.approve")
//	    defer span.End()
//	    // ... run the transition ...
//	}
package tracing
