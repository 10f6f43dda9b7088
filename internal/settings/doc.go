// Package settings provides the string-keyed settings lookup the export
// pipeline reads host configuration from.
//
// Stores answer Get with a value and a presence flag; absence is never an
// error. SQLiteStore persists user preferences such as the last bxdf,
// EnvStore reads the process environment, MapStore backs tests and CLI
// overrides, and Layered consults several stores in order. Resolve turns a
// list of mandatory keys into Values or a configuration error naming every
// missing key.
package settings
