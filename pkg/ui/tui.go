package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/prabhatexit0/treehouse/pkg/model"
)

// World pixels per terminal cell at zoom 1. A 36px node box spans two rows;
// the label is drawn on the box's center row.
const (
	cellW = 8.0
	cellH = 18.0
)

// Model is the bubbletea front-end: it projects the session's world space
// onto the terminal cell grid and feeds key and mouse events back through the
// shared interaction controller.
type Model struct {
	session *Session
	title   string

	width  int // cells
	height int
	ready  bool

	showHelp bool
	help     viewport.Model

	flash string // one-shot status message, cleared on the next key
}

// NewModel wraps a session for terminal display. Title is shown in the status
// bar, usually the file name.
func NewModel(session *Session, title string) Model {
	return Model{session: session, title: title}
}

// SourceReloadedMsg replaces the session's tree, sent by watch mode after the
// file on disk was re-parsed.
type SourceReloadedMsg struct {
	Root     *model.SourceNode
	Language string
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		// Status bar takes the last row; the rest is canvas.
		m.session.Resize(float64(msg.Width)*cellW, float64(msg.Height-1)*cellH)
		m.help = viewport.New(msg.Width-4, msg.Height-4)
		m.help.SetContent(renderHelp(msg.Width - 6))

	case tea.MouseMsg:
		if m.showHelp {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			return m, cmd
		}
		m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SourceReloadedMsg:
		m.session.SetSource(msg.Root, msg.Language)
		m.flash = "reloaded"
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	at := model.Point{X: (float64(msg.X) + 0.5) * cellW, Y: (float64(msg.Y) + 0.5) * cellH}
	ctrl := m.session.Controller()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		ctrl.Wheel(at, -1)
		return
	case tea.MouseButtonWheelDown:
		ctrl.Wheel(at, 1)
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			ctrl.PointerDown(at)
		}
	case tea.MouseActionMotion:
		ctrl.PointerMove(at)
	case tea.MouseActionRelease:
		ctrl.PointerUp(at)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""

	if m.showHelp {
		switch msg.String() {
		case "q", "esc", "?":
			m.showHelp = false
			return m, nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true

	case "h", "left":
		m.moveSelection(func(p model.Path) (model.Path, bool) {
			return p.Parent()
		})
	case "l", "right":
		m.moveSelection(func(p model.Path) (model.Path, bool) {
			n, ok := m.session.Tree().NodeByPath(p)
			if !ok || !n.HasVisibleChildren() {
				return p, false
			}
			return n.Children[0].Path, true
		})
	case "j", "down":
		m.moveSibling(1)
	case "k", "up":
		m.moveSibling(-1)

	case "enter", " ":
		if p := m.selectionOrRoot(); p != "" {
			m.session.Toggle(p)
		}
	case "e":
		m.session.ExpandAll()
	case "E":
		m.session.CollapseAll()
	case "f":
		m.session.Refit()
	case "+", "=":
		m.zoomAtCenter(1.1)
	case "-":
		m.zoomAtCenter(0.9)

	case "y":
		if p := m.session.Selected(); p != "" {
			if err := clipboard.WriteAll(string(p)); err != nil {
				m.flash = "yank failed: clipboard unavailable"
			} else {
				m.flash = "yanked " + string(p)
			}
		}
	}
	return m, nil
}

// selectionOrRoot falls back to the root so keyboard navigation works before
// anything was clicked.
func (m *Model) selectionOrRoot() model.Path {
	if p := m.session.Selected(); p != "" {
		return p
	}
	if m.session.Tree().Len() == 0 {
		return ""
	}
	return model.RootPath
}

func (m *Model) moveSelection(step func(model.Path) (model.Path, bool)) {
	cur := m.selectionOrRoot()
	if cur == "" {
		return
	}
	next, ok := step(cur)
	if !ok {
		m.session.Select(cur)
		return
	}
	m.session.Select(next)
	m.scrollSelectionIntoView()
}

func (m *Model) moveSibling(delta int) {
	cur := m.selectionOrRoot()
	if cur == "" {
		return
	}
	n, ok := m.session.Tree().NodeByPath(cur)
	if !ok {
		return
	}
	if n.Parent == nil {
		m.session.Select(cur)
		return
	}
	idx := n.Number - 1 + delta
	if idx < 0 || idx >= len(n.Parent.Children) {
		m.session.Select(cur)
		return
	}
	m.session.Select(n.Parent.Children[idx].Path)
	m.scrollSelectionIntoView()
}

func (m *Model) scrollSelectionIntoView() {
	n, ok := m.session.Tree().NodeByPath(m.session.Selected())
	if !ok {
		return
	}
	w := float64(m.width) * cellW
	h := float64(m.height-1) * cellH
	m.session.Camera().ScrollIntoView(n.Rect(), w, h, m.session.cfg.ScrollMargin)
}

func (m *Model) zoomAtCenter(factor float64) {
	center := model.Point{
		X: float64(m.width) * cellW / 2,
		Y: float64(m.height-1) * cellH / 2,
	}
	m.session.Camera().ZoomAt(center, factor)
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return HelpPanelStyle.Render(m.help.View())
	}
	canvas := m.viewCanvas()
	return lipgloss.JoinVertical(lipgloss.Left, canvas, m.viewStatus())
}

// paint identifiers for the cell grid; runs of equal paint render as one
// styled segment.
type paint uint8

const (
	paintNone paint = iota
	paintEdge
	paintNamed
	paintAnon
	paintSnippet
	paintBadge
	paintSelected
	paintCursor
	paintHover
)

func styleFor(p paint) lipgloss.Style {
	switch p {
	case paintEdge:
		return EdgeStyle
	case paintNamed:
		return NamedStyle
	case paintAnon:
		return AnonStyle
	case paintSnippet:
		return SnippetStyle
	case paintBadge:
		return BadgeStyle
	case paintSelected:
		return SelectedStyle
	case paintCursor:
		return CursorStyle
	case paintHover:
		return SelectedStyle
	default:
		return lipgloss.NewStyle()
	}
}

// viewCanvas projects every visible node through the camera onto the cell
// grid: connectors first, then node labels on top, matching the raster
// renderer's draw order.
func (m Model) viewCanvas() string {
	rows := m.height - 1
	cols := m.width
	if rows < 1 || cols < 1 {
		return ""
	}

	chars := make([][]rune, rows)
	paints := make([][]paint, rows)
	for r := range chars {
		chars[r] = make([]rune, cols)
		paints[r] = make([]paint, cols)
		for c := range chars[r] {
			chars[r][c] = ' '
		}
	}

	put := func(row, col int, ch rune, p paint) {
		if row < 0 || row >= rows || col < 0 || col >= cols {
			return
		}
		chars[row][col] = ch
		paints[row][col] = p
	}

	cam := m.session.Camera()
	tree := m.session.Tree()

	cellOf := func(x, y float64) (row, col int) {
		sx := x*cam.Zoom + cam.X
		sy := y*cam.Zoom + cam.Y
		return int(math.Floor(sy / cellH)), int(math.Floor(sx / cellW))
	}

	for _, n := range tree.Nodes() {
		for _, c := range n.Children {
			pr, _ := cellOf(n.X+n.Width/2, n.Y+n.Height)
			cr, cc := cellOf(c.X+c.Width/2, c.Y)
			for r := pr; r < cr; r++ {
				put(r, cc, '│', paintEdge)
			}
		}
	}

	for _, n := range tree.Nodes() {
		m.drawNodeCells(n.Path, put, cellOf, cols)
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		c := 0
		for c < cols {
			p := paints[r][c]
			start := c
			for c < cols && paints[r][c] == p {
				c++
			}
			seg := string(chars[r][start:c])
			if p == paintNone {
				b.WriteString(seg)
			} else {
				b.WriteString(styleFor(p).Render(seg))
			}
		}
	}
	return b.String()
}

func (m Model) drawNodeCells(path model.Path, put func(int, int, rune, paint), cellOf func(float64, float64) (int, int), cols int) {
	n, ok := m.session.Tree().NodeByPath(path)
	if !ok {
		return
	}
	row, col := cellOf(n.X, n.Y+n.Height/2)
	widthCells := int(math.Round(n.Width * m.session.Camera().Zoom / cellW))
	if widthCells < 4 {
		widthCells = 4
	}

	kind, snippet := m.session.Measurer().Label(n.Source)
	label := kind
	if snippet != "" {
		label += " " + snippet
	}
	badge := ""
	if n.HiddenChildren > 0 {
		badge = fmt.Sprintf(" +%d", n.HiddenChildren)
	}

	inner := widthCells - 2 - runewidth.StringWidth(badge)
	if inner < 1 {
		inner = 1
	}
	label = runewidth.Truncate(label, inner, "..")
	label = label + strings.Repeat(" ", inner-runewidth.StringWidth(label))

	var p paint
	switch {
	case path == m.session.Cursor():
		p = paintCursor
	case path == m.session.Selected():
		p = paintSelected
	case path == m.session.Hover():
		p = paintHover
	case n.Source.IsNamed:
		p = paintNamed
	default:
		p = paintAnon
	}

	text := "[" + label + badge + "]"
	c := col
	for _, ch := range text {
		put(row, c, ch, p)
		c += runewidth.RuneWidth(ch)
		if c >= cols {
			break
		}
	}
}

func (m Model) viewStatus() string {
	stats := m.session.Stats()
	left := StatusStyle.Render(fmt.Sprintf("%s · %s", m.title, m.session.Language()))
	zoom := int(math.Round(m.session.Camera().Zoom * 100))
	mid := StatusKeysStyle.Render(fmt.Sprintf("%s · %d%%", stats.Summary(), zoom))

	right := "? help · q quit"
	if m.flash != "" {
		right = m.flash
	} else if sel := m.session.Selected(); sel != "" {
		right = string(sel) + " · " + right
	}
	rightR := StatusKeysStyle.Render(right)

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(rightR)
	if pad < 0 {
		pad = 0
	}
	return left + mid + strings.Repeat(" ", pad) + rightR
}

const helpMarkdown = `# treehouse

Interactive syntax-tree viewer.

## Navigation

| Key | Action |
|-----|--------|
| h/l | select parent / first child |
| j/k | select next / previous sibling |
| enter, space | expand or collapse the selected node |
| e / E | expand all / collapse all |
| f | fit the tree to the window |
| + / - | zoom in / out |
| y | copy the selected node's path |
| ? | toggle this help |
| q | quit |

Mouse: drag to pan, wheel to zoom, click a node to select and toggle it.
`

func renderHelp(width int) string {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
