// Package stroke turns stroked paths into the verb stream a stroke
// tessellator writes as patches, and holds the join and cap geometry shared by
// the tessellator and its CPU reference evaluation.
//
// # Verb Stream
//
// [Steps] walks a path in device space and yields, per contour:
//   - one Line, Quad, Conic or Cubic per drawing verb, degenerate ones dropped
//   - a closing Line for closed contours that do not end at their start
//   - cap geometry for open contours: Circles for round caps, Lines extending
//     the ends for square caps
//   - MoveWithinContour wherever the next stroke must not join the previous one
//   - ContourFinished once the contour is complete
//
// Zero-length contours are still stroked with round and square caps: a
// circle, or a horizontal line of stroke width.
//
// # Line Joins
//
// Joins are drawn by the patch that follows them, from the previous patch's
// outgoing control point. A fixed-count stroke instance reserves a number of
// its edges for the join (see [NumFixedEdgesInJoin]):
//   - LineJoinMiter: 4 edges, the fourth reaching the miter tip
//   - LineJoinBevel: 3 edges
//   - LineJoinRound: 3 edges plus radial edges for the arc
//
// [ExpandJoin] produces exactly those vertices, so the count and the
// geometry cannot drift apart.
package stroke
