// Package measure builds node display labels and measures their pixel size
// with a single shared monospace font face. Measurement runs for every node
// on every layout pass, so widths are memoized per string.
package measure

import (
	"fmt"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"

	"github.com/prabhatexit0/treehouse/pkg/model"
)

// Metrics holds the sizing constants for node boxes. The defaults match the
// rendered diagram; TruncateLen is a presentation choice and is exposed in
// the config file.
type Metrics struct {
	FontSize    float64 // point size of the node label font
	NodeHeight  float64 // constant box height for every node
	MinWidth    float64 // floor so small nodes stay tappable
	PadX        float64 // horizontal padding inside a box, each side
	BadgeGap    float64 // gap between label and the +N badge
	BadgePad    float64 // horizontal padding inside the badge
	TruncateLen int     // visible characters of leaf text before the marker
}

// DefaultMetrics returns the standard sizing constants.
func DefaultMetrics() Metrics {
	return Metrics{
		FontSize:    12,
		NodeHeight:  36,
		MinWidth:    60,
		PadX:        12,
		BadgeGap:    8,
		BadgePad:    6,
		TruncateLen: 18,
	}
}

// truncMarker terminates truncated leaf text. Two characters, so a truncated
// snippet is at most TruncateLen+2 visible characters.
const truncMarker = ".."

// Measurer measures label widths against a fixed monospace face. One
// Measurer is shared per view; it is not safe for concurrent use, which is
// fine since layout and render run on a single goroutine.
type Measurer struct {
	metrics Metrics
	face    font.Face
	cache   map[string]float64
}

// NewMeasurer builds a measurer with the embedded Go Mono face at the
// metrics' font size.
func NewMeasurer(m Metrics) (*Measurer, error) {
	ft, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse gomono font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    m.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build font face: %w", err)
	}
	return &Measurer{
		metrics: m,
		face:    face,
		cache:   make(map[string]float64),
	}, nil
}

// Metrics returns the sizing constants this measurer was built with.
func (ms *Measurer) Metrics() Metrics { return ms.metrics }

// Face returns the font face, shared with the raster renderer so measured
// widths match drawn widths exactly.
func (ms *Measurer) Face() font.Face { return ms.face }

// Width returns the advance width of s in pixels, memoized.
func (ms *Measurer) Width(s string) float64 {
	if w, ok := ms.cache[s]; ok {
		return w
	}
	w := float64(font.MeasureString(ms.face, s)) / 64
	ms.cache[s] = w
	return w
}

// Label builds the display label parts for a node: the kind name, and for
// leaf nodes carrying text, the quoted snippet. Snippet is empty otherwise.
func (ms *Measurer) Label(n *model.SourceNode) (kind, snippet string) {
	kind = n.Kind
	if n.IsLeaf() && n.Text != "" {
		snippet = `"` + Truncate(n.Text, ms.metrics.TruncateLen) + `"`
	}
	return kind, snippet
}

// BadgeLabel returns the collapsed-children badge text for a hidden-child
// count, e.g. "+5". Empty when nothing is hidden.
func BadgeLabel(hidden int) string {
	if hidden <= 0 {
		return ""
	}
	return "+" + strconv.Itoa(hidden)
}

// NodeSize computes the box size for a node given how many of its children
// are hidden by a collapse (0 when expanded or childless). Width is the
// measured label plus padding, widened for the badge, floored at MinWidth.
// Height is constant.
func (ms *Measurer) NodeSize(n *model.SourceNode, hidden int) (w, h float64) {
	kind, snippet := ms.Label(n)
	label := kind
	if snippet != "" {
		label += " " + snippet
	}
	w = ms.Width(label) + 2*ms.metrics.PadX
	if badge := BadgeLabel(hidden); badge != "" {
		w += ms.metrics.BadgeGap + ms.Width(badge) + 2*ms.metrics.BadgePad
	}
	if w < ms.metrics.MinWidth {
		w = ms.metrics.MinWidth
	}
	return w, ms.metrics.NodeHeight
}

// Truncate cuts s to at most limit visible characters, appending a two-dot
// marker when anything was removed. Truncation is deterministic: the first
// limit runes, then the marker.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + truncMarker
}
