// Package export runs one complete texture export: settings resolution,
// preflight, manifest build, converter invocation and the closing summary.
//
// Run is the single entry point shared by the CLI and tests. It checks
// every configuration input before the first host export call, serializes
// concurrent runs through an advisory lock beside the manifest and always
// ends with either an "export complete" or an "export failed" log line.
package export
