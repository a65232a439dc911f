// Package middleware provides HTTP middleware for the bookshelf API.
//
// # Available Middleware
//
//   - RequestID: Reads X-Request-ID (or the legacy rqid header), generating a UUID when absent
//   - Logger: Access log through the global zap logger
//   - Recovery: Turns panics into a 500 problem response
//   - Metrics: Prometheus request counters and latencies
//   - CORS: Cross-origin headers for configured origins
//
// Compose them with Chain, outermost first:
//
//	handler = middleware.Chain(router,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	)
//
// # Context Values
//
//   - GetRequestID(ctx): Returns the request identifier
package middleware
