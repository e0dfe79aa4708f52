package patch

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/tess"
)

// Decode parses records written with attribs. The curve type comes from the
// infinity sentinels; when the explicit tag is present it must agree.
func Decode(data []byte, attribs Attribs) ([]Patch, error) {
	stride := attribs.Stride()
	if len(data)%stride != 0 {
		return nil, fmt.Errorf("%w: %d bytes, stride %d", ErrShortBuffer, len(data), stride)
	}
	out := make([]Patch, 0, len(data)/stride)
	for off := 0; off < len(data); off += stride {
		p, err := decodeOne(data[off:off+stride], attribs)
		if err != nil {
			return nil, fmt.Errorf("patch %d: %w", off/stride, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// DecodeChunks decodes every chunk of arr in order.
func DecodeChunks(arr *VertexChunkArray, attribs Attribs) ([]Patch, error) {
	return Decode(arr.Bytes(), attribs)
}

func decodeOne(rec []byte, attribs Attribs) (Patch, error) {
	off := 0
	get := func() float32 {
		v := math.Float32frombits(binary.LittleEndian.Uint32(rec[off:]))
		off += 4
		return v
	}
	var p Patch
	for i := range p.Pts {
		p.Pts[i] = tess.Pt(get(), get())
	}
	switch last := p.Pts[3]; {
	case math32.IsInf(last.Y, 1) && math32.IsInf(last.X, 1):
		p.Type = CurveTriangle
	case math32.IsInf(last.Y, 1):
		p.Type = CurveConic
		p.W = last.X
	default:
		p.Type = CurveCubic
	}

	if attribs.Has(AttribFanPoint) {
		p.FanPoint = tess.Pt(get(), get())
	}
	if attribs.Has(AttribColor) {
		p.Color = tess.RGBA(get(), get(), get(), get())
	}
	if attribs.Has(AttribExplicitCurveType) {
		if tag := CurveType(get()); tag != p.Type {
			return p, fmt.Errorf("%w: tag %v, encoded %v", ErrCurveTypeMismatch, tag, p.Type)
		}
	}
	if attribs.Has(AttribStrokeParams) {
		p.Stroke = StrokeParams{Radius: get(), JoinType: get()}
	}
	if attribs.Has(AttribJoinControlPoint) {
		p.JoinControlPoint = tess.Pt(get(), get())
	}
	return p, nil
}
