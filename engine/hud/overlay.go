package hud

import (
	"fmt"
	"path/filepath"

	"github.com/fzipp/bmfont"
	"github.com/spaghettifunk/aurora/engine/assets"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

type glyph struct {
	advance int
}

/**
 * @brief Lays out the statistics text drawn by the UI overlay pass when the
 * camera policy enables the profiler. The overlay owns only CPU-side data:
 * the glyph metrics and the decoded atlas page; the actual draw happens in
 * the UI pass queue flagged with SCENE_FLAG_PROFILER.
 */
type ProfilerOverlay struct {
	glyphs     map[rune]glyph
	lineHeight int
	atlas      *metadata.Texture

	text  string
	width int
}

// New loads the font descriptor and its first atlas page from disk.
func New(fntPath string) (*ProfilerOverlay, error) {
	font, err := bmfont.Load(fntPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load overlay font '%s': %w", fntPath, err)
	}

	glyphs := make(map[rune]glyph, len(font.Descriptor.Chars))
	for _, g := range font.Descriptor.Chars {
		glyphs[g.ID] = glyph{advance: g.XAdvance}
	}

	var atlas *metadata.Texture
	for _, page := range font.Descriptor.Pages {
		pagePath := filepath.Join(filepath.Dir(fntPath), page.File)
		atlas, err = assets.LoadTexture(pagePath)
		if err != nil {
			return nil, err
		}
		// Multi-page fonts are overkill for a stats line.
		break
	}

	return &ProfilerOverlay{
		glyphs:     glyphs,
		lineHeight: font.Descriptor.Common.LineHeight,
		atlas:      atlas,
	}, nil
}

func newOverlay(glyphs map[rune]glyph, lineHeight int) *ProfilerOverlay {
	return &ProfilerOverlay{glyphs: glyphs, lineHeight: lineHeight}
}

// Refresh rebuilds the overlay text from the current frame metrics.
func (o *ProfilerOverlay) Refresh() {
	fps, frameMS := core.MetricsFrame()
	o.text = fmt.Sprintf("FPS %3.0f  %.2f ms", fps, frameMS)
	o.width = o.measure(o.text)
}

func (o *ProfilerOverlay) measure(s string) int {
	var w int
	for _, r := range s {
		g, ok := o.glyphs[r]
		if !ok {
			// Unknown glyphs take a space-sized slot.
			g, ok = o.glyphs[' ']
			if !ok {
				continue
			}
		}
		w += g.advance
	}
	return w
}

func (o *ProfilerOverlay) Text() string { return o.text }

// Size returns the pixel extents of the current overlay text.
func (o *ProfilerOverlay) Size() (width, height int) {
	return o.width, o.lineHeight
}

func (o *ProfilerOverlay) Atlas() *metadata.Texture { return o.atlas }
