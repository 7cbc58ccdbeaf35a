package session

import (
	"context"
	"image"
)

// SegmentOptions are forwarded opaquely to the segmentation backend.
type SegmentOptions struct {
	// AlphaMatting enables edge refinement for smoother cutouts.
	AlphaMatting bool

	// ForegroundThreshold and BackgroundThreshold tune alpha matting.
	// They are ignored when AlphaMatting is false.
	ForegroundThreshold int
	BackgroundThreshold int
}

// Session is an initialized, reusable handle to one loaded segmentation
// model. Implementations must be safe for concurrent use.
type Session interface {
	// Segment returns a copy of img with the background made transparent.
	Segment(ctx context.Context, img image.Image, opts SegmentOptions) (image.Image, error)

	// Close releases the session's resources, best effort.
	Close() error
}

// Backend creates model sessions. LoadSession may be slow (seconds) as it
// typically pages megabytes to hundreds of megabytes of model weights.
type Backend interface {
	LoadSession(ctx context.Context, model string) (Session, error)
}
