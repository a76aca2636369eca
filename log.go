package gallery

import (
	"log/slog"
	"os"
)

// galleryLogLevel controls the log level for gallery debug logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var galleryLogLevel = new(slog.LevelVar)

// galleryLogger is the default logger used when no WithLogger option is given.
var galleryLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: galleryLogLevel}))

// SetVerbose enables or disables verbose/debug logging for the gallery.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		galleryLogLevel.Set(slog.LevelDebug)
	} else {
		galleryLogLevel.Set(slog.LevelInfo)
	}
}
