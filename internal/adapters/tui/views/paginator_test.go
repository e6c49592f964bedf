package views

import "testing"

func TestPaginator(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		moves     func(p *Paginator)
		wantPos   int
		wantStart int
		wantEnd   int
	}{
		{
			name:    "empty list",
			moves:   func(p *Paginator) { p.CursorDown() },
			wantEnd: 0,
		},
		{
			name:    "short list fits",
			total:   3,
			moves:   func(p *Paginator) { p.CursorDown(); p.CursorDown(); p.CursorDown() },
			wantPos: 2,
			wantEnd: 3,
		},
		{
			name:  "scrolls to keep the cursor visible",
			total: 10,
			moves: func(p *Paginator) {
				for range 5 {
					p.CursorDown()
				}
			},
			wantPos:   5,
			wantStart: 2,
			wantEnd:   6,
		},
		{
			name:      "page down clamps at the end",
			total:     10,
			moves:     func(p *Paginator) { p.PageDown(); p.PageDown(); p.PageDown() },
			wantPos:   9,
			wantStart: 6,
			wantEnd:   10,
		},
		{
			name:  "shrinking the list pulls the cursor back",
			total: 10,
			moves: func(p *Paginator) {
				p.SetCursor(9)
				p.SetTotal(3)
			},
			wantPos: 2,
			wantEnd: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginator(4)
			p.SetTotal(tt.total)
			tt.moves(p)

			if p.Cursor() != tt.wantPos {
				t.Errorf("Cursor() = %d, want %d", p.Cursor(), tt.wantPos)
			}
			start, end := p.VisibleRange()
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("VisibleRange() = %d,%d, want %d,%d", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
