// Package channel holds the per-channel export policy: which channels are
// exported, which colorspace tag they carry, and which file name template the
// exported image uses.
//
// The policy is a pure decision table. Tile-mode (UDIM) is an input, not a
// property of the channel; the aggregator passes it in after classifying the
// whole document.
package channel
