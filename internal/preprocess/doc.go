// Package preprocess normalizes photographs of ID cards so downstream layout
// and text recognition can run reliably.
//
// The pipeline is strictly ordered: resize to fit the target bounds, denoise
// with an edge-preserving filter, locate the card boundary and correct its
// perspective, then enhance luminance contrast. A frame whose card cannot be
// located is not an error; the pipeline degrades to passing the denoised
// frame through.
//
// # Modes
//
// In strict mode (Config.Bypass false) fatal conditions such as undersized
// input or a failed color conversion surface as typed errors. In bypass mode
// the pipeline trades correction quality for a never-fails guarantee:
// undersized frames are force-resized up to the floor, denoising and
// perspective correction are skipped entirely, and any internal failure
// degrades to returning the best buffer computed so far.
//
// # Concurrency
//
// A Preprocessor is immutable after construction and safe for concurrent
// use; every invocation keeps its retry state (the shrinking minimum-area
// threshold) in call-local variables.
package preprocess
