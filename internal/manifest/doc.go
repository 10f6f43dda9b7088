// Package manifest builds the export manifest handed to the asset converter.
//
// Build walks a host document's materials and channels in document order,
// applies the channel policy, asks the host to export every included channel
// and accumulates the resulting paths into texture sets. A UDIM document
// folds every tile into one texture set named after the UDIM sentinel; any
// other document gets one texture set per material.
//
// Marshal, Write and Read cover the JSON form the converter consumes.
package manifest
