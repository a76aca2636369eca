package gallery

// LayoutConfig describes the grid used to place materialized items.
type LayoutConfig struct {
	Columns      int     `yaml:"columns"`       // Cells per row
	CellSize     float32 `yaml:"cell_size"`     // Cell height in pixels; width follows the viewport
	Gap          float32 `yaml:"gap"`           // Spacing between rows and cells
	HeaderHeight float32 `yaml:"header_height"` // Height of each bucket's label row
}

// RowHeight returns the vertical pitch of one grid row.
func (c LayoutConfig) RowHeight() float32 {
	return c.CellSize + c.Gap
}

func (c LayoutConfig) columns() int {
	if c.Columns <= 0 {
		return 1
	}
	return c.Columns
}

// rows returns the number of rows needed for n cells.
func (c LayoutConfig) rows(n int) int {
	if n <= 0 {
		return 0
	}
	cols := c.columns()
	return (n + cols - 1) / cols
}

// sectionHeight returns the height of a bucket section holding n cells.
func (c LayoutConfig) sectionHeight(n int) float32 {
	return c.HeaderHeight + float32(c.rows(n))*c.RowHeight()
}

// Section is the laid-out block of one materialized bucket, in content
// coordinates (Y = 0 at the top of the content).
type Section struct {
	Bucket int
	From   int // First materialized item
	To     int // Exclusive end of materialized items
	Rect   Rect
}

// Cells returns the number of slots reserved in the section.
func (s Section) Cells() int {
	return s.To - s.From
}

// Layout positions the buckets of a window as stacked sections of grid
// rows. Slots are reserved from the window alone, so an unloaded or
// failed item still occupies its cell.
type Layout struct {
	cfg      LayoutConfig
	index    *BucketIndex
	window   WindowState
	width    float32
	sections []Section
	extent   float32
}

// NewLayout lays out window w for a content area of the given width.
func NewLayout(index *BucketIndex, w WindowState, cfg LayoutConfig, width float32) *Layout {
	l := &Layout{cfg: cfg, index: index, window: w, width: width}
	y := float32(0)
	for b := w.StartBucket; b < w.EndBucket; b++ {
		from, to := w.ItemRange(index, b)
		h := cfg.sectionHeight(to - from)
		l.sections = append(l.sections, Section{
			Bucket: b,
			From:   from,
			To:     to,
			Rect:   Rect{X: 0, Y: y, W: width, H: h},
		})
		y += h
	}
	l.extent = y
	return l
}

// Window returns the window this layout was built for.
func (l *Layout) Window() WindowState { return l.window }

// Config returns the grid configuration.
func (l *Layout) Config() LayoutConfig { return l.cfg }

// ContentExtent returns the total content height.
func (l *Layout) ContentExtent() float32 { return l.extent }

// Sections returns the laid-out sections in window order.
func (l *Layout) Sections() []Section { return l.sections }

// Section returns the section of bucket b.
func (l *Layout) Section(b int) (Section, bool) {
	i := b - l.window.StartBucket
	if i < 0 || i >= len(l.sections) {
		return Section{}, false
	}
	return l.sections[i], true
}

// CellRect returns the content-space rectangle of an item slot.
func (l *Layout) CellRect(bucket, item int) (Rect, bool) {
	s, ok := l.Section(bucket)
	if !ok || item < s.From || item >= s.To {
		return Rect{}, false
	}
	cols := l.cfg.columns()
	slot := item - s.From
	row, col := slot/cols, slot%cols
	cellW := (l.width - l.cfg.Gap*float32(cols-1)) / float32(cols)
	return Rect{
		X: float32(col) * (cellW + l.cfg.Gap),
		Y: s.Rect.Y + l.cfg.HeaderHeight + float32(row)*l.cfg.RowHeight(),
		W: cellW,
		H: l.cfg.CellSize,
	}, true
}

// HitTest returns the item slot under a content-space point.
func (l *Layout) HitTest(p Vec2) (bucket, item int, ok bool) {
	for _, s := range l.sections {
		if p.Y < s.Rect.Y || p.Y >= s.Rect.Bottom() {
			continue
		}
		rowTop := s.Rect.Y + l.cfg.HeaderHeight
		if p.Y < rowTop {
			return 0, 0, false
		}
		row := int((p.Y - rowTop) / l.cfg.RowHeight())
		cols := l.cfg.columns()
		cellW := (l.width - l.cfg.Gap*float32(cols-1)) / float32(cols)
		col := int(p.X / (cellW + l.cfg.Gap))
		if col < 0 || col >= cols {
			return 0, 0, false
		}
		item = s.From + row*cols + col
		r, found := l.CellRect(s.Bucket, item)
		if !found || !r.Contains(p) {
			return 0, 0, false
		}
		return s.Bucket, item, true
	}
	return 0, 0, false
}

// PositionOf returns the content-space top of the row holding (bucket, item)
// as it would be laid out for window w. Points outside w are clamped to it.
func (l *Layout) PositionOf(w WindowState, bucket, item int) float32 {
	if w.IsEmpty() {
		return 0
	}
	bucket = clampi(bucket, w.StartBucket, w.EndBucket-1)
	y := float32(0)
	for b := w.StartBucket; b < bucket; b++ {
		from, to := w.ItemRange(l.index, b)
		y += l.cfg.sectionHeight(to - from)
	}
	from, to := w.ItemRange(l.index, bucket)
	item = clampi(item, from, max(from, to))
	return y + l.cfg.HeaderHeight + float32((item-from)/l.cfg.columns())*l.cfg.RowHeight()
}

// VisibleCells calls fn for every item slot intersecting the content-space
// band [scrollY, scrollY+visibleHeight).
func (l *Layout) VisibleCells(scrollY, visibleHeight float32, fn func(bucket, item int, r Rect)) {
	for _, s := range l.sections {
		if s.Rect.Bottom() <= scrollY || s.Rect.Y >= scrollY+visibleHeight {
			continue
		}
		rows := clipRows(l.cfg.rows(s.Cells()), l.cfg.RowHeight(), visibleHeight, scrollY-(s.Rect.Y+l.cfg.HeaderHeight))
		cols := l.cfg.columns()
		for row := rows.start; row < rows.end; row++ {
			for col := 0; col < cols; col++ {
				item := s.From + row*cols + col
				if item >= s.To {
					break
				}
				if r, ok := l.CellRect(s.Bucket, item); ok {
					fn(s.Bucket, item, r)
				}
			}
		}
	}
}

// rowRange is the [start, end) range of rows to draw.
type rowRange struct {
	start, end int
}

// clipRows calculates the visible row range of a grid whose first row
// sits scrollY above the viewport top (negative when below it).
func clipRows(totalRows int, rowHeight, visibleHeight, scrollY float32) rowRange {
	if totalRows == 0 || rowHeight <= 0 {
		return rowRange{}
	}

	start := 0
	if scrollY > 0 {
		start = int(scrollY / rowHeight)
	}

	if scrollY < 0 {
		visibleHeight += scrollY
		if visibleHeight <= 0 {
			return rowRange{}
		}
	}

	// +2 for partial visibility at top/bottom
	end := start + int(visibleHeight/rowHeight) + 2

	if start > totalRows {
		start = totalRows
	}
	if end > totalRows {
		end = totalRows
	}
	return rowRange{start: start, end: end}
}
