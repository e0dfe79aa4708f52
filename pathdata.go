package tess

import (
	"fmt"
	"math"
	"strconv"

	"github.com/chewxy/math32"
)

// argCount is the number of arguments each SVG path command takes.
var argCount = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

// MustParsePathData is like ParsePathData but panics on error.
// It is intended for tests and static geometry.
func MustParsePathData(s string) *Path {
	p, err := ParsePathData(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePathData parses SVG path data ("M0 0 L10 0 Q ... Z") into a Path.
// Elliptical arcs are converted to conics. Errors wrap ErrInvalidPathData and
// report the byte offset.
func ParsePathData(s string) (*Path, error) {
	p := NewPath()
	i := skipSeparators(s, 0)
	if i == len(s) {
		return p, nil
	}
	if !isCommand(s[i]) {
		return nil, fmt.Errorf("%w: expected command at offset %d", ErrInvalidPathData, i)
	}

	var (
		args       [7]float32
		cur, start Point
		lastCtrl   Point // reflected by S/T
		prev       byte
		cmd        byte
	)
	for i < len(s) {
		if isCommand(s[i]) {
			cmd = s[i]
			i = skipSeparators(s, i+1)
		} else if cmd == 0 || cmd == 'Z' || cmd == 'z' {
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidPathData, s[i], i)
		}

		upper := cmd &^ 0x20
		rel := cmd != upper
		n := argCount[upper]
		for j := 0; j < n; j++ {
			var err error
			if upper == 'A' && (j == 3 || j == 4) {
				args[j], i, err = scanFlag(s, i)
			} else {
				args[j], i, err = scanNumber(s, i)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: command %q: %v", ErrInvalidPathData, cmd, err)
			}
			i = skipSeparators(s, i)
		}

		var base Point
		if rel {
			base = cur
		}
		switch upper {
		case 'M':
			cur = base.Add(Pt(args[0], args[1]))
			start = cur
			p.MoveTo(cur.X, cur.Y)
			// Subsequent coordinate pairs are implicit line-tos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L':
			cur = base.Add(Pt(args[0], args[1]))
			p.LineTo(cur.X, cur.Y)
		case 'H':
			cur.X = base.X + args[0]
			p.LineTo(cur.X, cur.Y)
		case 'V':
			cur.Y = base.Y + args[0]
			p.LineTo(cur.X, cur.Y)
		case 'C':
			c1 := base.Add(Pt(args[0], args[1]))
			c2 := base.Add(Pt(args[2], args[3]))
			cur = base.Add(Pt(args[4], args[5]))
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, cur.X, cur.Y)
			lastCtrl = c2
		case 'S':
			c1 := cur
			if up := prev &^ 0x20; up == 'C' || up == 'S' {
				c1 = cur.Mul(2).Sub(lastCtrl)
			}
			c2 := base.Add(Pt(args[0], args[1]))
			cur = base.Add(Pt(args[2], args[3]))
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, cur.X, cur.Y)
			lastCtrl = c2
		case 'Q':
			c := base.Add(Pt(args[0], args[1]))
			cur = base.Add(Pt(args[2], args[3]))
			p.QuadTo(c.X, c.Y, cur.X, cur.Y)
			lastCtrl = c
		case 'T':
			c := cur
			if up := prev &^ 0x20; up == 'Q' || up == 'T' {
				c = cur.Mul(2).Sub(lastCtrl)
			}
			cur = base.Add(Pt(args[0], args[1]))
			p.QuadTo(c.X, c.Y, cur.X, cur.Y)
			lastCtrl = c
		case 'A':
			end := base.Add(Pt(args[5], args[6]))
			p.arcTo(cur, args[0], args[1], args[2], args[3] != 0, args[4] != 0, end)
			cur = end
		case 'Z':
			p.Close()
			cur = start
		}
		prev = upper
	}
	return p, nil
}

func isCommand(c byte) bool {
	_, ok := argCount[c&^0x20]
	return ok
}

func skipSeparators(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			i++
		default:
			return i
		}
	}
	return i
}

func scanFlag(s string, i int) (float32, int, error) {
	if i < len(s) && (s[i] == '0' || s[i] == '1') {
		return float32(s[i] - '0'), i + 1, nil
	}
	return 0, i, fmt.Errorf("arc flag must be 0 or 1 at offset %d", i)
}

// scanNumber reads one SVG number: sign, digits, optional fraction and
// exponent. "1.5.5" scans as 1.5 followed by .5.
func scanNumber(s string, i int) (float32, int, error) {
	j := i
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	digits := 0
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
		digits++
	}
	if j < len(s) && s[j] == '.' {
		j++
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			digits++
		}
	}
	if digits == 0 {
		return 0, i, fmt.Errorf("expected number at offset %d", i)
	}
	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}
		if k < len(s) && s[k] >= '0' && s[k] <= '9' {
			for k < len(s) && s[k] >= '0' && s[k] <= '9' {
				k++
			}
			j = k
		}
	}
	v, err := strconv.ParseFloat(s[i:j], 32)
	if err != nil {
		return 0, i, fmt.Errorf("offset %d: %w", i, err)
	}
	return float32(v), j, nil
}

// arcTo appends an SVG elliptical arc from start to end as a series of conics,
// each spanning at most 90 degrees.
func (p *Path) arcTo(start Point, rx, ry, rotDeg float32, large, sweep bool, end Point) {
	if start == end {
		return
	}
	rx, ry = math32.Abs(rx), math32.Abs(ry)
	if rx == 0 || ry == 0 {
		p.LineTo(end.X, end.Y)
		return
	}

	// Endpoint to center parameterization, SVG 1.1 appendix F.6.5.
	sinPhi, cosPhi := math32.Sincos(rotDeg * math.Pi / 180)
	hd := start.Sub(end).Mul(0.5)
	x1 := cosPhi*hd.X + sinPhi*hd.Y
	y1 := -sinPhi*hd.X + cosPhi*hd.Y

	if lambda := (x1*x1)/(rx*rx) + (y1*y1)/(ry*ry); lambda > 1 {
		s := math32.Sqrt(lambda)
		rx *= s
		ry *= s
	}
	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := math32.Sqrt(math32.Max(num/den, 0))
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx
	mid := start.Add(end).Mul(0.5)
	center := Pt(cosPhi*cx1-sinPhi*cy1+mid.X, sinPhi*cx1+cosPhi*cy1+mid.Y)

	theta0 := math32.Atan2((y1-cy1)/ry, (x1-cx1)/rx)
	theta1 := math32.Atan2((-y1-cy1)/ry, (-x1-cx1)/rx)
	dtheta := theta1 - theta0
	if sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	} else if !sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	}

	// Unit circle -> ellipse.
	m := Matrix{
		A: cosPhi * rx, B: -sinPhi * ry, C: center.X,
		D: sinPhi * rx, E: cosPhi * ry, F: center.Y,
		I: 1,
	}
	n := int(math32.Ceil(math32.Abs(dtheta)/(math.Pi/2) - 1e-4))
	if n < 1 {
		n = 1
	}
	step := dtheta / float32(n)
	w := math32.Cos(step / 2)
	for k := 0; k < n; k++ {
		a0 := theta0 + step*float32(k)
		a1 := a0 + step
		mida := (a0 + a1) / 2
		sin, cos := math32.Sincos(mida)
		ctrl := m.TransformPoint(Pt(cos/w, sin/w))
		to := end
		if k < n-1 {
			s1, c1 := math32.Sincos(a1)
			to = m.TransformPoint(Pt(c1, s1))
		}
		p.ConicTo(ctrl.X, ctrl.Y, to.X, to.Y, w)
	}
}
