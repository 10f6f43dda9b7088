// Package logs reads the export log file for the CLI.
//
// Last returns the trailing lines of the log with bounded memory, optionally
// narrowed to one export run, and Follow polls for lines appended after an
// offset until its context ends.
package logs
