package gallery

// Theme holds the gallery colors.
type Theme struct {
	Background  uint32
	Header      uint32
	Placeholder uint32
	Failed      uint32
	Photo       uint32
	Video       uint32
	Selected    uint32
	Track       uint32
	Tick        uint32
	Handle      uint32
}

// DefaultTheme returns the dark theme.
func DefaultTheme() Theme {
	return Theme{
		Background:  RGBA(18, 18, 20, 255),
		Header:      RGBA(36, 36, 42, 255),
		Placeholder: RGBA(48, 48, 54, 255),
		Failed:      RGBA(90, 40, 40, 255),
		Photo:       RGBA(70, 110, 160, 255),
		Video:       RGBA(140, 90, 160, 255),
		Selected:    RGBA(255, 255, 255, 255),
		Track:       RGBA(255, 255, 255, 40),
		Tick:        RGBA(255, 255, 255, 110),
		Handle:      RGBA(230, 230, 235, 230),
	}
}

// Draw appends the gallery's primitives to dl and advances the scrubber
// fade by deltaTime seconds.
func (g *Gallery) Draw(dl *DrawList, theme Theme, deltaTime float32) {
	vp := g.viewport.Rect
	dl.AddRect(vp.X, vp.Y, vp.W, vp.H, theme.Background)

	dl.PushClipRect(vp.X, vp.Y, vp.X+vp.W, vp.Y+vp.H)
	hh := g.layout.Config().HeaderHeight
	for _, s := range g.layout.Sections() {
		if !g.viewport.ContentToScreen(s.Rect).Intersects(vp) {
			continue
		}
		header := g.viewport.ContentToScreen(Rect{X: s.Rect.X, Y: s.Rect.Y, W: s.Rect.W, H: hh})
		dl.AddRect(header.X, header.Y, header.W, header.H, theme.Header)
	}
	g.layout.VisibleCells(g.viewport.ScrollOffset(), vp.H, func(bucket, item int, r Rect) {
		r = g.viewport.ContentToScreen(r)
		dl.AddRect(r.X, r.Y, r.W, r.H, g.cellColor(theme, bucket, item))
		if it, ok := g.store.Item(bucket, item); ok && it.ID == g.selected {
			dl.AddRectOutline(r.X, r.Y, r.W, r.H, theme.Selected, 2)
		}
	})
	dl.PopClipRect()

	g.drawScrubber(dl, theme, g.fade.Animate(deltaTime))
}

func (g *Gallery) cellColor(theme Theme, bucket, item int) uint32 {
	if it, ok := g.store.Item(bucket, item); ok {
		if it.Kind == KindVideo {
			return theme.Video
		}
		return theme.Photo
	}
	key := PageKey{Bucket: bucket, Page: item / g.store.PageSize()}
	if g.store.Status(key) == PageFailed {
		return theme.Failed
	}
	return theme.Placeholder
}

func (g *Gallery) drawScrubber(dl *DrawList, theme Theme, opacity float32) {
	if opacity <= 0 || g.index.Len() == 0 {
		return
	}
	s := g.scrubber
	dl.AddRect(s.Rect.X, s.Rect.Y, s.Rect.W, s.Rect.H, WithAlpha(theme.Track, opacity))

	// Ticks are centered on where the handle's midpoint would sit.
	half := s.HandleHeight / 2
	for _, t := range s.Mapper().Ticks() {
		y := s.Rect.Y + t.Offset + half
		dl.AddRect(s.Rect.X+s.Rect.W*0.25, y, s.Rect.W*0.5, 1, WithAlpha(theme.Tick, opacity))
	}

	h := s.HandleRect()
	dl.AddRect(h.X, h.Y, h.W, h.H, WithAlpha(theme.Handle, opacity))
}

// Render draws one frame through r.
func (g *Gallery) Render(r Renderer, theme Theme, deltaTime float32) error {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	g.Draw(dl, theme, deltaTime)
	dl.Finalize()
	return r.Render(dl)
}
