package outline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/text3d"
	"github.com/gogpu/text3d/contour"
)

// ErrEmptyFontData is returned when RegisterFont is given no font data.
var ErrEmptyFontData = errors.New("outline: empty font data")

// UnknownFontError is returned when a run names a family that has not been
// registered with the provider.
type UnknownFontError struct {
	Family string
}

func (e *UnknownFontError) Error() string {
	return "outline: unknown font family " + e.Family
}

// parsedFont holds both parsed views of one font file: the sfnt parse for
// outline extraction and the go-text parse for HarfBuzz shaping. Both are
// read-only and safe for concurrent use.
type parsedFont struct {
	sfnt     *sfnt.Font
	harfbuzz *font.Font
}

// SFNTProvider implements Provider for SFNT (TrueType/OpenType) fonts.
//
// Text is shaped with go-text/typesetting's HarfBuzz implementation
// (kerning, ligatures, complex scripts), then each glyph's outline is
// loaded via x/image/font/sfnt, flattened to polylines, and grouped into
// outer-plus-holes shapes by containment.
//
// SFNTProvider is safe for concurrent use. Parsed fonts are cached per
// registered family; HarfbuzzShaper and sfnt.Buffer instances hold mutable
// per-call state and are pooled.
type SFNTProvider struct {
	mu    sync.RWMutex
	fonts map[string]*parsedFont

	shapers sync.Pool // *shaping.HarfbuzzShaper
	buffers sync.Pool // *sfnt.Buffer
}

// NewSFNTProvider creates an empty provider. Register fonts before laying
// out text.
func NewSFNTProvider() *SFNTProvider {
	return &SFNTProvider{
		fonts: make(map[string]*parsedFont),
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		buffers: sync.Pool{
			New: func() any { return &sfnt.Buffer{} },
		},
	}
}

// RegisterFont parses the font file and makes it available under the given
// family name. Registering the same family again replaces the previous
// font.
func (p *SFNTProvider) RegisterFont(family string, data []byte) error {
	if len(data) == 0 {
		return ErrEmptyFontData
	}

	sfntFont, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("outline: parsing %s with sfnt: %w", family, err)
	}
	goTextFace, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("outline: parsing %s with typesetting: %w", family, err)
	}

	p.mu.Lock()
	p.fonts[family] = &parsedFont{sfnt: sfntFont, harfbuzz: goTextFace.Font}
	p.mu.Unlock()
	return nil
}

// LayoutText implements Provider. Empty text yields no shapes and no
// error. The context is checked between glyphs so a superseded scene
// build can abandon outline work early.
//
// Shapes are emitted in glyph visual order, in baseline-relative
// coordinates with Y growing upward (the run assembler inverts only the
// run origin when placing the mesh).
func (p *SFNTProvider) LayoutText(ctx context.Context, text string, spec text3d.FontSpec, opts LayoutOptions) ([]contour.Shape, error) {
	if text == "" {
		return nil, nil
	}

	p.mu.RLock()
	pf, ok := p.fonts[spec.Family]
	p.mu.RUnlock()
	if !ok {
		return nil, &UnknownFontError{Family: spec.Family}
	}

	glyphs := p.shape(text, pf, spec.Size)
	ppem := floatToFixed(spec.Size)

	buf := p.buffers.Get().(*sfnt.Buffer)
	defer p.buffers.Put(buf)

	var shapes []contour.Shape
	var penX float64
	var prevGID sfnt.GlyphIndex
	for i, g := range glyphs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		gid := sfnt.GlyphIndex(uint16(g.GlyphID))
		if opts.OpticalKerning && i > 0 {
			if kern, err := pf.sfnt.Kern(buf, prevGID, gid, ppem, 0); err == nil {
				penX += fixedToFloat(kern)
			}
		}

		segs, err := pf.sfnt.LoadGlyph(buf, gid, ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("outline: loading glyph %d: %w", gid, err)
		}

		// Emitted contours are y-up about the baseline: sfnt glyph
		// coordinates are y-down and get flipped in fixedPoint, while
		// shaping offsets are already y-up.
		x := penX + fixedToFloat(g.XOffset)
		y := fixedToFloat(g.YOffset)
		contours := FlattenSegments(convertSegments(segs, x, y))
		shapes = append(shapes, GroupContours(contours)...)

		penX += fixedToFloat(g.XAdvance) + opts.LetterSpacing
		prevGID = gid
	}
	return shapes, nil
}

// shape runs HarfBuzz shaping over the whole run and returns the glyphs
// in visual order.
func (p *SFNTProvider) shape(text string, pf *parsedFont, size float64) []shaping.Glyph {
	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: baseDirection(text),
		Face:      font.NewFace(pf.harfbuzz),
		Size:      floatToFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	// HarfbuzzShaper has internal mutable state and is not safe for
	// concurrent use; pool instances instead of sharing one.
	shaper := p.shapers.Get().(*shaping.HarfbuzzShaper)
	output := shaper.Shape(input)
	p.shapers.Put(shaper)
	return output.Glyphs
}

// baseDirection resolves the paragraph's base direction with the Unicode
// bidi algorithm: the direction of the first bidi run wins.
func baseDirection(text string) di.Direction {
	p := bidi.Paragraph{}
	if _, err := p.SetString(text); err != nil {
		return di.DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return di.DirectionLTR
	}
	run := ordering.Run(0)
	if run.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript inspects the runes and returns the script of the first
// non-space character. Mixed-script text should be split into runs by the
// layout engine before reaching the provider.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// convertSegments translates sfnt glyph segments by the pen position and
// converts them to layout-pixel Segments.
func convertSegments(segs []sfnt.Segment, dx, dy float64) []Segment {
	out := make([]Segment, len(segs))
	for i, seg := range segs {
		s := Segment{}
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			s.Op = OpMoveTo
			s.Args[0] = fixedPoint(seg.Args[0], dx, dy)
		case sfnt.SegmentOpLineTo:
			s.Op = OpLineTo
			s.Args[0] = fixedPoint(seg.Args[0], dx, dy)
		case sfnt.SegmentOpQuadTo:
			s.Op = OpQuadTo
			s.Args[0] = fixedPoint(seg.Args[0], dx, dy)
			s.Args[1] = fixedPoint(seg.Args[1], dx, dy)
		case sfnt.SegmentOpCubeTo:
			s.Op = OpCubicTo
			s.Args[0] = fixedPoint(seg.Args[0], dx, dy)
			s.Args[1] = fixedPoint(seg.Args[1], dx, dy)
			s.Args[2] = fixedPoint(seg.Args[2], dx, dy)
		}
		out[i] = s
	}
	return out
}

func fixedPoint(p fixed.Point26_6, dx, dy float64) text3d.Point {
	return text3d.Pt(
		float64(p.X)/64.0+dx,
		-float64(p.Y)/64.0+dy,
	)
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
