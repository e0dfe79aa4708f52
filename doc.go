// Package tess converts vector path outlines into GPU patch streams.
//
// # Overview
//
// tess is the CPU side of a GPU path renderer. Given path geometry (lines,
// quadratics, conics and cubics), a transform and a tolerance, it decides how
// many segments each curve needs and which control points to emit, and writes
// the result as fixed-size patches that a tessellation or instanced vertex
// shader expands on the GPU.
//
// The root package holds the data model: [Point], [Matrix], [Rect], [Path],
// [Shape] and [StrokeStyle]. The tessellators live in the tessellate
// sub-package:
//
//	import (
//	    "github.com/gogpu/tess"
//	    "github.com/gogpu/tess/tessellate"
//	)
//
//	p := tess.NewPath()
//	p.MoveTo(0, 0)
//	p.CubicTo(100, 0, 100, 100, 0, 100)
//	p.Close()
//
//	t, err := tessellate.NewWedgeTessellator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res := t.Prepare(tessellate.DrawList{{Shape: tess.PathShape{Path: p}, Matrix: tess.Identity()}})
//	fmt.Println(res.PatchCount, res.ResolveLevel)
//
// # Coordinate System
//
// Same as the rest of the GoGPU ecosystem:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// All geometry is float32 because patches are consumed by the GPU as float32
// and the CPU-side estimates must see the same values the shader sees.
//
// # Logging
//
// The package is silent by default. See [SetLogger].
package tess
