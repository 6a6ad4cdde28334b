package assistant

type PanelState int

const (
	PanelClosed PanelState = iota
	PanelOpen
)

func (s PanelState) String() string {
	if s == PanelOpen {
		return "open"
	}
	return "closed"
}

// Region is an area of the screen that keeps the panel open when pressed.
type Region interface {
	Contains(x, y int) bool
}

// Rect is a Region in cell coordinates. W and H are exclusive bounds.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Panel tracks whether the chat window is showing. It is not safe for
// concurrent use; drive it from the UI loop.
type Panel struct {
	state    PanelState
	boundary Region
	toggle   Region
	onScroll func()
}

// NewPanel returns a closed panel. onScroll, if set, is called whenever the
// transcript should be scrolled to its latest entry.
func NewPanel(onScroll func()) *Panel {
	return &Panel{state: PanelClosed, onScroll: onScroll}
}

func (p *Panel) SetBoundary(r Region) { p.boundary = r }
func (p *Panel) SetToggle(r Region)   { p.toggle = r }

func (p *Panel) State() PanelState { return p.state }
func (p *Panel) IsOpen() bool      { return p.state == PanelOpen }

// Toggle flips the panel and returns the new state.
func (p *Panel) Toggle() PanelState {
	if p.state == PanelOpen {
		p.state = PanelClosed
	} else {
		p.state = PanelOpen
		p.scroll()
	}
	return p.state
}

// PointerDown closes an open panel when the press lands outside both the panel
// and the toggle. It reports whether the panel was closed.
func (p *Panel) PointerDown(x, y int) bool {
	if p.state != PanelOpen {
		return false
	}
	if contains(p.boundary, x, y) || contains(p.toggle, x, y) {
		return false
	}
	p.state = PanelClosed
	return true
}

// TranscriptChanged scrolls to the latest entry while the panel is open.
func (p *Panel) TranscriptChanged() {
	if p.state == PanelOpen {
		p.scroll()
	}
}

func (p *Panel) scroll() {
	if p.onScroll != nil {
		p.onScroll()
	}
}

func contains(r Region, x, y int) bool {
	return r != nil && r.Contains(x, y)
}
