// Package main hosts the texmanifest CLI entrypoint and command graph.
//
// The Cobra-based command tree runs exports against a directory-backed host
// document, prints the channel policy, inspects written manifests, maintains
// the persistent settings store and scaffolds configuration. It centralizes
// configuration resolution, settings layering and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
