/*
Package gallery provides a virtualized, scrubbable view over a chronologically
bucketed media collection.

# Overview

A collection of any size is split into buckets (one calendar period each).
Only a window of the collection is materialized at a time: the window grows
in fixed steps as the viewport nears one of its edges and shrinks on the far
side once content is well out of view. A scrubber along the right edge maps
every bucket to a position on its track and lets the user jump straight to
any bucket.

# Quick Start

	// Setup
	renderer, _ := opengl.NewRenderer(1280, 800)
	g, err := gallery.New(ctx, supplier, fetcher, gallery.Rect{W: 1280, H: 800},
	    gallery.WithNavigator(nav))
	if err != nil {
	    return err
	}
	defer g.Close()

	// Frame loop
	for !window.ShouldClose() {
	    input := pollInput(window)
	    g.Pump()
	    g.HandleInput(input)
	    g.Render(renderer, gallery.DefaultTheme(), deltaTime)
	    window.SwapBuffers()
	}

# Window

The window is a WindowState value: a start (bucket, item) and an exclusive
end (bucket, item). WindowManager is its only writer. Each scroll sample is
evaluated in this order:

	Grow bottom   distance from bottom < GrowThreshold
	Grow top      otherwise, distance from top < GrowThreshold
	Shrink top    distance from top > ShrinkThreshold, top did not grow
	Shrink bottom distance from bottom > ShrinkThreshold, bottom did not grow

Every step moves an edge to the next multiple of StepSize within its bucket,
crossing into the neighbouring bucket at bucket boundaries. Shrinking never
empties the window. A jump replaces the window with exactly one full bucket.

# Scroll Anchoring

Growing the top inserts content above the viewport. ScrollAnchor pins an
offset at or below zero to MinAnchorOffset and then shifts the offset by the
height of the inserted (or evicted) leading content, so the rows under the
pointer stay put.

# Threading

All state belongs to the UI goroutine. The recompute Throttle, the fade
Poller and the item Loader run on timer or fetch goroutines and only post
closures to the gallery's queue. Call Pump once per frame to run them.
Close cancels every timer and in-flight fetch and discards the queue.

# Debug Logging

	gallery.SetVerbose(true) // window transitions, jumps and fade changes

Use WithLogger to route a single gallery's logs elsewhere.

# Metrics

Counters and gauges are registered with the default Prometheus registry
under the "gallery" namespace:

	gallery_window_recomputes_total
	gallery_window_jumps_total
	gallery_materialized_items
	gallery_fetches_total
	gallery_fetch_failures_total
*/
package gallery
