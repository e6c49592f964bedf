package views

// Paginator keeps a cursor over a list and the window of rows that fits on
// screen. The window scrolls just enough to keep the cursor visible.
type Paginator struct {
	pageSize int
	offset   int
	cursor   int
	total    int
}

// NewPaginator creates a paginator showing pageSize rows at a time
func NewPaginator(pageSize int) *Paginator {
	p := &Paginator{}
	p.SetPageSize(pageSize)
	return p
}

// SetPageSize changes the number of visible rows
func (p *Paginator) SetPageSize(size int) {
	if size <= 0 {
		size = 10
	}
	p.pageSize = size
	p.follow()
}

// SetTotal sets the number of rows and clamps the cursor
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.SetCursor(p.cursor)
}

// Total returns the number of rows
func (p *Paginator) Total() int {
	return p.total
}

// Cursor returns the absolute cursor position
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor, clamped to the rows
func (p *Paginator) SetCursor(pos int) {
	p.cursor = min(max(pos, 0), max(p.total-1, 0))
	p.follow()
}

// CursorUp moves the cursor up by one
func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.SetCursor(p.cursor - 1)
	return true
}

// CursorDown moves the cursor down by one
func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.total-1 {
		return false
	}
	p.SetCursor(p.cursor + 1)
	return true
}

// PageDown moves the cursor one page down
func (p *Paginator) PageDown() {
	p.SetCursor(p.cursor + p.pageSize)
}

// PageUp moves the cursor one page up
func (p *Paginator) PageUp() {
	p.SetCursor(p.cursor - p.pageSize)
}

// VisibleRange returns the half-open range of rows on screen
func (p *Paginator) VisibleRange() (start, end int) {
	return p.offset, min(p.offset+p.pageSize, p.total)
}

func (p *Paginator) follow() {
	switch {
	case p.cursor < p.offset:
		p.offset = p.cursor
	case p.cursor >= p.offset+p.pageSize:
		p.offset = p.cursor - p.pageSize + 1
	}
	if maxOffset := max(p.total-p.pageSize, 0); p.offset > maxOffset {
		p.offset = maxOffset
	}
}
