package gallery

import "testing"

func TestViewportHandleInput(t *testing.T) {
	tests := []struct {
		name  string
		setup func(in *InputState)
		want  float32
	}{
		{"wheel down", func(in *InputState) { in.SetMouseWheel(0, -2) }, 160},
		{"key down", func(in *InputState) { in.SetKey(KeyDown, true) }, 130},
		{"page up", func(in *InputState) { in.SetKey(KeyPageUp, true) }, 0},
		{"end", func(in *InputState) { in.SetKey(KeyEnd, true) }, 400},
		{"idle", func(in *InputState) {}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(Rect{W: 300, H: 600}, 30)
			v.SetContentHeight(1000)
			v.SetScrollOffset(100)

			in := NewInputState()
			in.SetMousePos(10, 10)
			tt.setup(in)

			changed := v.HandleInput(in)
			if v.ScrollOffset() != tt.want {
				t.Errorf("offset = %v, want %v", v.ScrollOffset(), tt.want)
			}
			if changed != (tt.want != 100) {
				t.Errorf("HandleInput() = %v", changed)
			}
		})
	}
}

func TestViewportIgnoresInputOutside(t *testing.T) {
	v := NewViewport(Rect{W: 300, H: 600}, 30)
	v.SetContentHeight(1000)

	in := NewInputState()
	in.SetMousePos(350, 10)
	in.SetMouseWheel(0, -1)
	if v.HandleInput(in) || v.ScrollOffset() != 0 {
		t.Errorf("scrolled to %v with the mouse outside", v.ScrollOffset())
	}
}
