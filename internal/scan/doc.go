// Package scan implements the per-instruction analyses of the front
// end: structural control-flow validation and descriptor binding
// extraction.
//
// Both analyses run in a single forward pass over the token stream and
// hold state only for the current call. The Validator tracks nested
// if/loop/switch blocks on a stack and rejects sequences a code
// generator could not lower; the Scanner builds the ordered binding
// table from declaration instructions and upgrades UAV usage flags as
// later instructions reveal reads and counter use.
//
// Neither type drives the stream itself. The driver decodes and
// dispatches; everything here is a pure state machine over decoded
// instructions plus a diag.Reporter for messages.
package scan
