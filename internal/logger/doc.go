// Package logger wraps zap to provide:
//   - a global sugared logger writing console-formatted diagnostics to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (DebugKV, WarnKV).
//
// Standard output is left to the hook's log line and build artifacts, so
// diagnostics never end up in captured compiler flags.
package logger
