// Package removal implements the background removal engine.
//
// Two strategies are available. The fast path inspects the one-pixel border
// ring of the image; when the ring is dominated by a single near-constant
// color, a flood fill from the matching border pixels converts the connected
// background region to full transparency. Interior pixels that happen to
// share the background color but are not connected to the border are left
// opaque. The fall-back path delegates to a pluggable ML segmentation
// backend through the session cache, which amortizes model initialization
// across requests.
//
// # Color distance
//
// All matching decisions use the redmean perceptual distance, a weighted
// Euclidean norm over RGB that approximates human color perception. On the
// 8-bit channel scale, distances up to roughly 30 correspond to colors most
// viewers read as "the same".
//
// # Orchestration
//
// Remover.Remove is the public entry point. It validates the request, runs
// the heuristic when asked to, falls back to the ML backend otherwise, and
// always returns a structured Result; expected failure classes (invalid
// model, missing input, backend errors) are folded into the result rather
// than returned as errors.
package removal
