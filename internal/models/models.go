// Package models holds the fixed registry of supported background removal
// models. Every model identifier accepted anywhere in the server must come
// from this set.
package models

import "errors"

// Default is the model used when a request does not name one.
const Default = "u2net"

// ErrUnsupported is returned when a model identifier is not in the registry.
var ErrUnsupported = errors.New("unsupported background removal model")

// Metadata describes one supported model.
type Metadata struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Size        string `json:"size"`
}

// Registry order is the order models are presented to clients.
var registry = []Metadata{
	{
		ID:          "u2net",
		Name:        "U2-Net",
		Description: "General purpose background removal model",
		Size:        "176MB",
	},
	{
		ID:          "u2netp",
		Name:        "U2-Net Portrait",
		Description: "Lightweight model optimized for mobile/fast processing",
		Size:        "4MB",
	},
	{
		ID:          "silueta",
		Name:        "Silueta",
		Description: "General purpose model with smaller footprint",
		Size:        "43MB",
	},
	{
		ID:          "isnet-general-use",
		Name:        "IS-Net General",
		Description: "Newer general purpose model with improved accuracy",
		Size:        "176MB",
	},
	{
		ID:          "isnet-anime",
		Name:        "IS-Net Anime",
		Description: "Optimized for anime and illustration images",
		Size:        "176MB",
	},
	{
		ID:          "birefnet-general",
		Name:        "BiRefNet General",
		Description: "Highest quality model for professional results",
		Size:        "400MB",
	},
	{
		ID:          "birefnet-general-lite",
		Name:        "BiRefNet Lite",
		Description: "Balanced quality and speed for general use",
		Size:        "100MB",
	},
	{
		ID:          "sam",
		Name:        "Segment Anything Model",
		Description: "Meta's Segment Anything Model for versatile segmentation",
		Size:        "400MB",
	},
}

// IsSupported reports whether id names a model in the registry.
func IsSupported(id string) bool {
	for _, m := range registry {
		if m.ID == id {
			return true
		}
	}
	return false
}

// All returns the metadata for every supported model, in presentation order.
func All() []Metadata {
	out := make([]Metadata, len(registry))
	copy(out, registry)
	return out
}

// IDs returns the supported model identifiers, in presentation order.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, m := range registry {
		ids[i] = m.ID
	}
	return ids
}
