package renderer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// TextRenderer writes the summary to <base>.txt instead of generating audio.
// It doubles as the fallback when no speech engine is available.
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

func (r *TextRenderer) Render(_ context.Context, text, base, _ string) error {
	outPath := base + ".txt"
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("renderer: failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("renderer: failed to write %s: %w", outPath, err)
	}
	return nil
}
