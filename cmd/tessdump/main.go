// Command tessdump tessellates a path and reports what the GPU would draw.
//
// The path comes from SVG path data (-d, -file or stdin) or from text set in
// Go Regular (-text). With -png the decoded patches are rasterized on the
// CPU, which shows the coverage the tessellation shaders produce.
//
//	tessdump -d "M10 10 C200 10 200 200 10 200 Z" -wedge -png out.png
//	tessdump -text "Hello" -size 64 -stroke 2 -join round
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/glyph"
	"github.com/gogpu/tess/tessellate"
)

func main() {
	var (
		data      = flag.String("d", "", "SVG path data")
		file      = flag.String("file", "", "file holding SVG path data; - for stdin")
		text      = flag.String("text", "", "text to lay out instead of path data")
		size      = flag.Float64("size", 48, "text size in pixels per em")
		scale     = flag.Float64("scale", 1, "uniform scale applied to the path")
		strokeW   = flag.Float64("stroke", -1, "stroke width; 0 is a hairline, negative fills")
		capName   = flag.String("cap", "butt", "line cap: butt, round, square")
		joinName  = flag.String("join", "miter", "line join: miter, round, bevel")
		wedges    = flag.Bool("wedge", false, "fill with wedges instead of curves and an inner fan")
		hardware  = flag.Bool("hw", false, "hardware tessellation instead of fixed-count instancing")
		precision = flag.Float64("precision", 4, "tessellation precision, segments per pixel")
		maxSegs   = flag.Int("max-segments", tessellate.DefaultMaxSegments, "hardware segment ceiling")
		output    = flag.String("png", "", "write a coverage image to this file")
		width     = flag.Int("width", 512, "image width")
		height    = flag.Int("height", 512, "image height")
		wgsl      = flag.Bool("wgsl", false, "print the WGSL vertex input for the patch layout")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		tess.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	p, err := loadPath(*data, *file, *text, float32(*size))
	if err != nil {
		log.Fatalf("tessdump: %v", err)
	}

	mode := tessellate.FixedCount
	if *hardware {
		mode = tessellate.HardwareTessellation
	}
	opts := []tessellate.Option{
		tessellate.WithPrecision(float32(*precision)),
		tessellate.WithMaxSegments(*maxSegs),
		tessellate.WithMode(mode),
	}
	m := tess.Scale(float32(*scale), float32(*scale))

	var res tessellate.Result
	if *strokeW >= 0 {
		style, err := strokeStyle(float32(*strokeW), *capName, *joinName)
		if err != nil {
			log.Fatalf("tessdump: %v", err)
		}
		st, err := tessellate.NewStrokeTessellator(opts...)
		if err != nil {
			log.Fatalf("tessdump: %v", err)
		}
		res = st.Prepare(tessellate.StrokeList{{Shape: tess.PathShape{Path: p}, Matrix: m, Style: style}})
	} else {
		draws := tessellate.DrawList{{Shape: tess.PathShape{Path: p}, Matrix: m}}
		if *wedges {
			wt, err := tessellate.NewWedgeTessellator(opts...)
			if err != nil {
				log.Fatalf("tessdump: %v", err)
			}
			res = wt.Prepare(draws)
		} else {
			ct, err := tessellate.NewCurveTessellator(opts...)
			if err != nil {
				log.Fatalf("tessdump: %v", err)
			}
			res = ct.Prepare(draws)
		}
	}

	patches, err := tessellate.Decode(res)
	if err != nil {
		log.Fatalf("tessdump: %v", err)
	}
	printSummary(os.Stdout, res, patches)

	if *wgsl {
		src, err := tessellate.ShaderInput(res.Attribs)
		if err != nil {
			log.Fatalf("tessdump: %v", err)
		}
		fmt.Print(src)
	}

	if *output != "" {
		img := Render(res, patches, *width, *height, float32(*precision))
		if err := savePNG(*output, img); err != nil {
			log.Fatalf("tessdump: %v", err)
		}
		log.Printf("Coverage saved to %s (%dx%d)", *output, *width, *height)
	}
}

func loadPath(data, file, text string, size float32) (*tess.Path, error) {
	switch {
	case text != "":
		f, err := glyph.Parse(goregular.TTF)
		if err != nil {
			return nil, err
		}
		return glyph.NewShaper().Layout(f, text, size, tess.Pt(size/4, size*1.25))
	case data != "":
		return tess.ParsePathData(data)
	case file != "":
		var r io.Reader = os.Stdin
		if file != "-" {
			fh, err := os.Open(file)
			if err != nil {
				return nil, err
			}
			defer fh.Close()
			r = fh
		}
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return tess.ParsePathData(strings.TrimSpace(string(b)))
	}
	return nil, fmt.Errorf("no input: pass -d, -file or -text")
}

func strokeStyle(width float32, capName, joinName string) (tess.StrokeStyle, error) {
	style := tess.DefaultStrokeStyle().WithWidth(width)
	switch strings.ToLower(capName) {
	case "butt":
		style = style.WithCap(tess.LineCapButt)
	case "round":
		style = style.WithCap(tess.LineCapRound)
	case "square":
		style = style.WithCap(tess.LineCapSquare)
	default:
		return style, fmt.Errorf("unknown cap %q", capName)
	}
	switch strings.ToLower(joinName) {
	case "miter":
		style = style.WithJoin(tess.LineJoinMiter)
	case "round":
		style = style.WithJoin(tess.LineJoinRound)
	case "bevel":
		style = style.WithJoin(tess.LineJoinBevel)
	default:
		return style, fmt.Errorf("unknown join %q", joinName)
	}
	return style, nil
}

func printSummary(w io.Writer, res tessellate.Result, patches []tessellate.Patch) {
	counts := map[tessellate.CurveType]int{}
	for _, p := range patches {
		counts[p.Type]++
	}
	fmt.Fprintf(w, "mode:      %v\n", res.Mode)
	fmt.Fprintf(w, "attribs:   %v\n", res.Attribs)
	fmt.Fprintf(w, "patches:   %d (cubic %d, conic %d, triangle %d)\n",
		res.PatchCount, counts[tessellate.CurveTypeCubic], counts[tessellate.CurveTypeConic], counts[tessellate.CurveTypeTriangle])
	if res.Dropped > 0 {
		fmt.Fprintf(w, "dropped:   %d\n", res.Dropped)
	}
	if res.FixedEdgeCount > 0 {
		fmt.Fprintf(w, "edges:     %d\n", res.FixedEdgeCount)
	} else {
		fmt.Fprintf(w, "level:     %d\n", res.ResolveLevel)
	}
	if res.Mode == tessellate.FixedCount {
		fmt.Fprintf(w, "vertices:  %d per instance, %d instances\n", res.FixedVertexCount, res.InstanceCount())
	}
	if res.Exhausted > 0 {
		fmt.Fprintf(w, "exhausted: %d\n", res.Exhausted)
	}
}
