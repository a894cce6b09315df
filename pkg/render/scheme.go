package render

// Scheme is the diagram palette. Box fill/border pairs are selected by state
// precedence: cursor-highlighted > hovered > named > anonymous. Colors are
// hex strings so a theme file can override them directly.
type Scheme struct {
	Background string

	NamedFill    string
	NamedBorder  string
	AnonFill     string
	AnonBorder   string
	HoverFill    string
	HoverBorder  string
	CursorFill   string
	CursorBorder string

	Edge      string
	KindNamed string
	KindAnon  string
	Snippet   string

	BadgeFill string
	BadgeText string
}

// DefaultScheme returns the dark palette.
func DefaultScheme() Scheme {
	return Scheme{
		Background: "#0f0f1a",

		NamedFill:    "#1a1a2e",
		NamedBorder:  "#a855f7",
		AnonFill:     "#16213e",
		AnonBorder:   "#555577",
		HoverFill:    "#252545",
		HoverBorder:  "#22d3ee",
		CursorFill:   "#2d2d55",
		CursorBorder: "#fbbf24",

		Edge:      "#555577",
		KindNamed: "#22d3ee",
		KindAnon:  "#8888aa",
		Snippet:   "#eab308",

		BadgeFill: "#a855f7",
		BadgeText: "#0f0f1a",
	}
}
