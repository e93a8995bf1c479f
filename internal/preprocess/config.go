package preprocess

import "fmt"

// MinDimension is the smallest width or height the pipeline accepts. Strict
// mode rejects smaller frames; bypass mode force-resizes them up to this
// floor.
const MinDimension = 100

// Config holds the immutable per-pipeline settings. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// TargetWidth and TargetHeight bound the working resolution and define
	// the output size of a successful perspective correction.
	TargetWidth  int
	TargetHeight int

	// MinArea is the initial minimum contour area (square pixels) for a
	// card candidate when the locator is invoked directly. Within one
	// Process call the retry loop narrows its own call-local copy; the
	// configured value is never mutated.
	MinArea int

	// Bypass trades correction quality for a never-fails guarantee: the
	// denoise and perspective stages are skipped and every fatal condition
	// degrades to returning the best available buffer.
	Bypass bool
}

// DefaultConfig returns the standard card-normalization settings: an 800x500
// target (the aspect of an ID-1 card), a 5000 square-pixel candidate floor,
// and strict mode.
func DefaultConfig() Config {
	return Config{
		TargetWidth:  800,
		TargetHeight: 500,
		MinArea:      5000,
	}
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if c.TargetWidth <= 0 || c.TargetHeight <= 0 {
		return fmt.Errorf("target size %dx%d: both dimensions must be positive", c.TargetWidth, c.TargetHeight)
	}
	if c.MinArea <= 0 {
		return fmt.Errorf("min area %d: must be positive", c.MinArea)
	}
	return nil
}
