package gallery

import (
	"log/slog"
	"time"
)

// FadeState is the scrubber's visibility.
type FadeState int

const (
	FadeHidden FadeState = iota
	FadeVisible
)

func (s FadeState) String() string {
	if s == FadeVisible {
		return "visible"
	}
	return "hidden"
}

// FadeConfig controls when the scrubber hides.
type FadeConfig struct {
	HideTimeout    time.Duration `yaml:"hide_timeout"`    // Inactivity before hiding
	PollInterval   time.Duration `yaml:"poll_interval"`   // Fade state evaluation period
	ScrollThrottle time.Duration `yaml:"scroll_throttle"` // Throttle for the activity listener
	Jitter         float32       `yaml:"jitter"`          // Scroll movement ignored as noise
	FadeDuration   time.Duration `yaml:"fade_duration"`   // Opacity transition time
}

// FadeController is a polled state machine deciding whether the scrubber
// is shown. Activity is read from and written to the scrubber's DragState.
type FadeController struct {
	cfg    FadeConfig
	clock  Clock
	drag   *DragState
	logger *slog.Logger

	state      FadeState
	lastOffset float32
	hasOffset  bool
	opacity    float32

	onChange func(FadeState)
}

// NewFadeController creates a hidden controller.
func NewFadeController(cfg FadeConfig, clock Clock, drag *DragState, logger *slog.Logger) *FadeController {
	if logger == nil {
		logger = galleryLogger
	}
	return &FadeController{cfg: cfg, clock: clock, drag: drag, logger: logger}
}

// OnChange registers a callback for state transitions.
func (f *FadeController) OnChange(fn func(FadeState)) {
	f.onChange = fn
}

// State returns the current state.
func (f *FadeController) State() FadeState {
	return f.state
}

// Tick evaluates the state machine once.
func (f *FadeController) Tick() FadeState {
	now := f.clock.Now()
	next := FadeVisible
	switch {
	case f.drag.Dragging:
		f.drag.LastActivity = now
	case now.Sub(f.drag.LastActivity) > f.cfg.HideTimeout:
		next = FadeHidden
	}
	f.set(next)
	return f.state
}

// NoteScroll records activity when offset moved more than Jitter since the
// last recorded offset. Returns true if activity was recorded.
func (f *FadeController) NoteScroll(offset float32) bool {
	if f.hasOffset && absf(offset-f.lastOffset) <= f.cfg.Jitter {
		return false
	}
	f.lastOffset, f.hasOffset = offset, true
	f.drag.LastActivity = f.clock.Now()
	return true
}

func (f *FadeController) set(s FadeState) {
	if s == f.state {
		return
	}
	f.state = s
	f.logger.Debug("scrubber fade", "state", s.String())
	if f.onChange != nil {
		f.onChange(s)
	}
}

// Opacity returns the rendered opacity in [0, 1].
func (f *FadeController) Opacity() float32 {
	return f.opacity
}

// Animate eases the opacity toward the current state.
// Call once per frame with the frame's delta time in seconds.
func (f *FadeController) Animate(deltaTime float32) float32 {
	target := float32(0)
	if f.state == FadeVisible {
		target = 1
	}
	dur := float32(f.cfg.FadeDuration.Seconds())
	if dur <= 0 {
		f.opacity = target
		return f.opacity
	}
	step := deltaTime / dur
	if f.opacity < target {
		f.opacity = minf(target, f.opacity+step)
	} else if f.opacity > target {
		f.opacity = maxf(target, f.opacity-step)
	}
	return f.opacity
}
