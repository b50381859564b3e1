// Package server provides HTTP server implementation for the servicemap API.
//
// The server package implements a layered architecture:
//
//   - Server: Core server struct wired to the service map's rebuild hooks
//   - Config: Server configuration with sensible defaults
//   - Router: Route registration and middleware chain
//   - Handlers: HTTP request handlers organized by domain
//
// The architecture follows the pattern: CLI → App → Server → Router → Handlers
//
// Usage:
//
//	cfg := server.DefaultConfig()
//	cfg.Port = 8080
//
//	srv, err := server.New(ctx, app, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Shutdown()
//
//	http.ListenAndServe(":8080", srv.Handler())
package server

//go:generate gomarkdoc --output README.md .
