package detect

// Quad holds the four corners of a card boundary in canonical clockwise
// order: top-left, top-right, bottom-right, bottom-left.
type Quad [4]Point

// OrderQuad arranges four arbitrary corner points into canonical order.
//
// The ordering is derived deterministically from coordinate sums and
// differences: the top-left corner has the minimum x+y, the bottom-right the
// maximum x+y, the top-right the minimum y-x, and the bottom-left the
// maximum y-x.
func OrderQuad(pts [4]Point) Quad {
	var q Quad

	minSum, maxSum := pts[0].X+pts[0].Y, pts[0].X+pts[0].Y
	minDiff, maxDiff := pts[0].Y-pts[0].X, pts[0].Y-pts[0].X
	q[0], q[1], q[2], q[3] = pts[0], pts[0], pts[0], pts[0]

	for _, p := range pts[1:] {
		sum := p.X + p.Y
		diff := p.Y - p.X
		if sum < minSum {
			minSum = sum
			q[0] = p // top-left
		}
		if sum > maxSum {
			maxSum = sum
			q[2] = p // bottom-right
		}
		if diff < minDiff {
			minDiff = diff
			q[1] = p // top-right
		}
		if diff > maxDiff {
			maxDiff = diff
			q[3] = p // bottom-left
		}
	}
	return q
}
