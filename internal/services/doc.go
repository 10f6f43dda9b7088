// Package services defines shared utilities consumed by the export stages and
// the external converter integration.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and stage names for logging.
//   - Structured error markers plus the Wrap helper so configuration, export,
//     manifest-write and external-tool failures stay distinguishable all the
//     way up to the CLI.
//
// Use these helpers when wiring new stage logic so failure reporting stays
// uniform across the export pipeline.
package services
