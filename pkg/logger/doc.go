// Package logger provides a small factory over log/slog with functional
// options for format, level, output and static attributes, plus attr
// helpers shared across the service.
package logger
