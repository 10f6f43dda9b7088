// Package converter drives the external asset converter that consumes the
// export manifest.
//
// Gateway writes the manifest, runs the configured converter command with the
// manifest path as its final argument and relays every output line to the
// logger as it arrives. Launch failures and non-zero exits surface as
// services.ErrExternalTool carrying a *ToolError; the manifest stays on disk
// for diagnosis either way.
//
// RendererVersion and CheckRendererVersion gate exports on the renderer
// install the converter will hand the assets to.
package converter
