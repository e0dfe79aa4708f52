// Package tessellate turns batches of fills and strokes into GPU patch
// streams.
//
// Three tessellators share one option set:
//
//   - [PathCurveTessellator] writes a middle-out triangle fan over each
//     contour plus one patch per curve.
//   - [PathWedgeTessellator] writes one wedge per verb, each fanned to its
//     contour's midpoint.
//   - [StrokeTessellator] writes stroke patches that carry their join's
//     control point, with circles for round caps and cusps.
//
// Each Prepare call returns a [Result]: the patches in path order, how many
// were dropped for lack of storage, and the parameters a fixed-count draw
// needs (resolve level, or fixed edge count for strokes). The matching
// template meshes come from [StaticBuffers]; [Uploader] copies results and
// templates to a GPU device.
//
// Tessellators are not safe for concurrent use. Prepare separate batches on
// separate tessellators.
package tessellate
