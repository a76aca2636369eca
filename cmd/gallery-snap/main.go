// Command gallery-snap renders the gallery over a seeded catalog at several
// scroll positions offscreen and saves JPEG screenshots.
//
// Usage:
//
//	go run ./cmd/gallery-snap -out doc/imgs
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/gallery"
	"github.com/go-theft-auto/gallery/backend/opengl"
	"github.com/go-theft-auto/gallery/catalog"
)

const (
	width  = 800
	height = 600
)

func init() {
	runtime.LockOSThread()
}

func main() {
	outDir := flag.String("out", filepath.Join("doc", "imgs"), "output directory")
	seed := flag.Int64("seed", 1, "catalog random seed")
	flag.Parse()

	if err := run(*outDir, *seed); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot is one capture: setup moves the gallery into position.
type screenshot struct {
	name  string
	setup func(g *gallery.Gallery)
}

func run(outDir string, seed int64) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(width, height, "gallery-snap", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(width, height)
	if err != nil {
		return fmt.Errorf("gallery renderer: %w", err)
	}
	defer renderer.Delete()

	tmp, err := os.MkdirTemp("", "gallery-snap")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	cat, err := catalog.Open(filepath.Join(tmp, "catalog.db"))
	if err != nil {
		return err
	}
	defer cat.Close()

	ctx := context.Background()
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	if _, err := cat.Seed(ctx, rand.New(rand.NewSource(seed)), now, 24, 300); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := []screenshot{
		{name: "top", setup: func(g *gallery.Gallery) {}},
		{name: "scrolled", setup: func(g *gallery.Gallery) {
			for i := 0; i < 5; i++ {
				vp := g.Viewport()
				vp.SetScrollOffset(vp.ScrollOffset() + vp.Rect.H*0.8)
				g.OnScroll()
				settle(g)
			}
		}},
		{name: "jump", setup: func(g *gallery.Gallery) {
			s := g.Scrubber()
			y := s.Rect.Y + s.Rect.H/2
			s.BeginDrag(y, time.Now(), g.VisibleBucket())
			s.EndDrag(time.Now())
			g.OnScroll()
		}},
	}

	for _, s := range shots {
		if err := capture(ctx, cat, renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, width, height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

// settle lets throttled recomputation and page fetches complete.
func settle(g *gallery.Gallery) {
	for i := 0; i < 10; i++ {
		time.Sleep(120 * time.Millisecond)
		g.Pump()
	}
}

func capture(ctx context.Context, cat *catalog.Catalog, renderer *opengl.Renderer, s screenshot, outDir string) error {
	// Fresh gallery per screenshot to avoid state leaking between captures.
	g, err := gallery.New(ctx, cat, cat, gallery.Rect{W: width, H: height})
	if err != nil {
		return err
	}
	defer g.Close()

	settle(g)
	s.setup(g)
	settle(g)

	gl.Viewport(0, 0, width, height)
	gl.ClearColor(0.07, 0.07, 0.08, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	// A long delta time finishes the scrubber fade in one frame.
	if err := g.Render(renderer, gallery.DefaultTheme(), 1); err != nil {
		return err
	}

	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < height/2; y++ {
		top := y * rowLen
		bot := (height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)

	f, err := os.Create(filepath.Join(outDir, s.name+".jpg"))
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}
