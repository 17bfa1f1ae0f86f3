// Package renderer turns summary text into an output artifact, either
// synthesized speech or a plain text file.
package renderer

import (
	"context"
	"log"
	"time"
)

// Renderer renders summary text to a destination. base is the output path
// without extension; each engine appends its own.
type Renderer interface {
	Render(ctx context.Context, text, base, lang string) error
}

// New resolves an engine name to a concrete renderer. Unknown names fall
// back to the text engine with a logged warning, so a misconfigured engine
// still produces readable output instead of failing deep in the run loop.
func New(name string, timeout time.Duration) Renderer {
	switch name {
	case "gtts":
		return NewGoogleTTS(timeout)
	case "text":
		return NewTextRenderer()
	default:
		log.Printf("WARNING: unknown TTS engine %q, falling back to text output", name)
		return NewTextRenderer()
	}
}
