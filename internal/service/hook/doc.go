// Package hook runs one pre-build invocation: it loads settings, resolves the
// firmware version, registers it as a preprocessor definition and reports it.
package hook
