// Command gallery-demo opens a window showing a SQLite photo catalog through
// the windowed gallery.
//
//	go run ./cmd/gallery-demo -db /tmp/photos.db -seed 36
//
// Scroll with the wheel or PageUp/PageDown/Home/End, drag the scrubber on
// the right edge to jump between months, click a cell to select it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-theft-auto/gallery"
	"github.com/go-theft-auto/gallery/backend/opengl"
	"github.com/go-theft-auto/gallery/catalog"
)

const (
	windowWidth  = 960
	windowHeight = 720
	windowTitle  = "gallery"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

type options struct {
	dbPath      string
	configPath  string
	metricsAddr string
	seedMonths  int
	verbose     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.dbPath, "db", "gallery.db", "catalog database path")
	flag.StringVar(&opts.configPath, "config", "", "YAML config file (defaults when empty)")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flag.IntVar(&opts.seedMonths, "seed", 0, "seed an empty catalog with this many months of photos")
	flag.BoolVar(&opts.verbose, "v", false, "verbose logging")
	flag.Parse()

	gallery.SetVerbose(opts.verbose)

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := gallery.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = gallery.LoadConfig(opts.configPath); err != nil {
			return err
		}
	}

	cat, err := catalog.Open(opts.dbPath, catalog.WithStepSize(cfg.Window.StepSize))
	if err != nil {
		return err
	}
	defer cat.Close()

	ctx := context.Background()
	if opts.seedMonths > 0 {
		if n, err := cat.Count(ctx); err != nil {
			return err
		} else if n == 0 {
			added, err := cat.Seed(ctx, rand.New(rand.NewSource(time.Now().UnixNano())), time.Now(), opts.seedMonths, 400)
			if err != nil {
				return fmt.Errorf("seeding catalog: %w", err)
			}
			logger.Info("seeded catalog", "photos", added, "months", opts.seedMonths)
		}
	}

	if opts.metricsAddr != "" {
		srv := &http.Server{Addr: opts.metricsAddr, Handler: promhttp.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server", "error", err)
			}
		}()
		defer srv.Close()
		logger.Info("serving metrics", "addr", opts.metricsAddr)
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("gallery renderer: %w", err)
	}
	defer renderer.Delete()

	input := opengl.NewGLFWInputAdapter(window)

	nav := gallery.NavigatorFuncs{
		OnItem: func(id string) { logger.Info("selected", "id", id) },
		OnJump: func(i int) { logger.Debug("jump", "bucket", i) },
	}
	g, err := gallery.New(ctx, cat, cat, gallery.Rect{W: windowWidth, H: windowHeight},
		gallery.WithConfig(cfg),
		gallery.WithNavigator(nav),
	)
	if err != nil {
		return err
	}
	defer g.Close()

	theme := gallery.DefaultTheme()
	title := ""
	fbW, fbH := windowWidth, windowHeight
	last := time.Now()
	for !window.ShouldClose() {
		in := input.Update()
		glfw.PollEvents()

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		w, h := window.GetFramebufferSize()
		if w != fbW || h != fbH {
			fbW, fbH = w, h
			renderer.Resize(w, h)
			g.Resize(gallery.Rect{W: float32(w), H: float32(h)})
		}

		g.HandleInput(in)
		g.Pump()
		if in.KeyPressed(gallery.KeyEscape) {
			window.SetShouldClose(true)
		}

		if label := g.Label(); label != title {
			title = label
			window.SetTitle(windowTitle + " - " + label)
		}

		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.07, 0.07, 0.08, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		if err := g.Render(renderer, theme, dt); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}
