// Package httpserver provides a lightweight wrapper around net/http that adds
// graceful shutdown, configurable server timeouts, health-check handlers, and
// structured logging via slog.
//
// The core type is Server: Run blocks until the context is cancelled or an
// interrupt/TERM signal is received and then shuts the server down using
// http.Server.Shutdown with a configurable deadline. Construction goes
// through New or NewFromConfig with functional Option helpers. Errors are
// wrapped with the ErrStart and ErrShutdown sentinels so they can be
// inspected with errors.Is.
//
// HealthCheckHandler doubles as liveness and readiness probe and carries the
// service's degraded-mode advisories, so operators can see when optional
// capabilities (content sniffing, image sanitizing) are switched off.
package httpserver
