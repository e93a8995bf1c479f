// Package imaging provides the low-level raster operations behind card
// normalization: grayscale conversion, Gaussian blur, adaptive thresholding,
// binary morphology, Canny edge detection, and intensity statistics.
//
// All operations work with standard Go image types and use a coordinate system
// where (0,0) is at the top-left corner, X increases rightward, and Y increases
// downward. Binary images are represented as *image.Gray where 255 marks a set
// pixel and 0 an unset one.
//
// # Ownership
//
// Every function returns a freshly allocated image and never mutates its
// input, so buffers can be handed from one pipeline stage to the next without
// aliasing concerns.
//
// # Thread Safety
//
// All functions are stateless and safe to call concurrently on different
// images.
package imaging
