// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-process cache backed by patrickmn/go-cache
// - cache/redis: Redis cache with a key prefix
// - cache/sqlite: SQLite cache surviving restarts
// - http/standard: HTTP client with retries, gzip decoding and request logging
// - logger/structured: logrus logger with optional lumberjack file rotation
// - metrics/prometheus: Prometheus recorder and /metrics handler
// - ratelimit: Process wide pacers spacing out upstream calls
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache(5 * time.Minute)
//	err := cache.Set(ctx, "key", []byte("value"), time.Hour)
//	value, err := cache.Get(ctx, "key") // interfaces.ErrCacheMiss when absent
//
// # HTTP Client
//
// GET requests are retried on 5xx; POST requests never are:
//
//	client := standard.NewStandardHTTPClientWithTransport(30*time.Second,
//	    standard.NewLoggingRoundTripper(http.DefaultTransport, logger))
//	resp, err := client.Get(ctx, "https://example.com", nil)
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
package infrastructure
