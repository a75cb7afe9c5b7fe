// Package diag defines the diagnostic model shared by the converter and the CLI.
//
// Diagnostic is the central record: severity, a stable numeric Code, the
// position of the offending record (file, 1-based line, optional 1-based
// token column) and a short message.
//
// Producers go through a Reporter (usually BagReporter) so that conversion
// code never formats or prints anything itself. Rendering lives in
// internal/diagfmt.
package diag
