// Package preflight provides readiness checks for the filesystem paths and
// external tools an export depends on.
//
// These checks run in two contexts:
//   - export.Run calls RunAll before the first host export call. Any failure
//     aborts the run as a configuration error so no channel is exported into
//     a directory the manifest can never be written to.
//   - The CLI "texmanifest check" command prints every result as a table.
package preflight
