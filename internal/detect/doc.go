// Package detect locates the quadrilateral boundary of an ID card within a
// photographed frame.
//
// The package builds on binary edge maps produced by the imaging package and
// provides the geometric primitives the search needs: border-following
// contour extraction, Douglas-Peucker polygon approximation, convex hulls,
// and canonical corner ordering.
//
// # Search Strategy
//
// Card photographs rarely survive a single global threshold, so Locate runs a
// cascading search instead of a one-shot detection:
//
//  1. Edge detection is attempted over an ordered list of Canny threshold
//     pairs, from most to least permissive, on both a blurred grayscale and a
//     morphologically cleaned rendition of the frame. The first pair that
//     yields any contour wins.
//  2. Only the five largest contours are considered. A contour qualifies as a
//     card candidate when its area exceeds the caller's minimum and its
//     polygon approximation has four to six vertices.
//  3. The winning contour is re-approximated over an ordered list of epsilon
//     fractions until exactly four corners emerge; approximations with more
//     than four vertices get one convex-hull reduction attempt.
//
// A frame with no acceptable quadrilateral is an expected outcome, not a
// fault: Locate reports it through the Result value and never through an
// error.
//
// # Coordinate System
//
// All coordinates are pixels with origin at the top-left corner, X increasing
// rightward and Y increasing downward.
package detect
