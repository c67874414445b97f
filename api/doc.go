// Package api provides the HTTP API layer of the Newsletter API.
// It uses Huma on a chi router for OpenAPI documentation and request decoding.
//
// # Architecture
//
// - server.go: Huma API configuration, CORS and middleware
// - handlers/: POST /api/generate, POST /api/translate, GET /api/health
// - middleware/: Request logging with request IDs and per-IP rate limiting
//
// The OpenAPI spec is served at /openapi.json and the docs UI at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPI(api.APIConfig{
//	    Logger:    logger,
//	    RateLimit: 30,
//	    RateBurst: 10,
//	})
//	handlers.NewGenerateHandler(newsletterService, logger).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":3000", router)
//
// # Error Handling
//
// Every error, including Huma's own validation failures, is written as
//
//	{"error": "Thématique requise"}
//
// Validation problems are 400, missing API keys 500, search provider
// failures 502 and anything unexpected a generic 500.
package api
