// Package diag defines the diagnostic model shared by the container
// parser, token decoder, scanner and driver.
//
// Diagnostics here are a textual log, not an error channel: components
// report through a Reporter and separately return errors to their
// caller. The accumulated text is handed to the API caller regardless
// of whether the call succeeded, so it must stay valid on every exit
// path.
//
// A Context renders each message immediately into its growable Buffer
// in the classic compiler format `source:line:col: E####: message`.
// Locations are synthetic (see internal/source): the driver advances
// the line once per decoded instruction so a reader can at least tell
// which instruction a message refers to.
//
// Severity filtering happens before formatting: a message below the
// configured threshold costs neither an allocation nor a buffer write.
// When tracing is enabled at trace level, every emitted line is also
// mirrored to the configured Tracer; mirroring is observable but never
// changes what a caller gets back.
package diag
