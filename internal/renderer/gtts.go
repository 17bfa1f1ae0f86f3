package renderer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultBaseURL = "https://translate.google.com"

	// The translate endpoint rejects long inputs, so text is synthesized in
	// chunks and the MP3 payloads are concatenated.
	maxChunkRunes = 200
)

// GoogleTTS synthesizes speech through the Google Translate text-to-speech
// endpoint and writes the result to <base>.mp3.
type GoogleTTS struct {
	client  *http.Client
	baseURL string
}

// Option configures a GoogleTTS renderer.
type Option func(*GoogleTTS)

// WithBaseURL sets a custom endpoint base URL (for testing).
func WithBaseURL(u string) Option {
	return func(g *GoogleTTS) {
		g.baseURL = u
	}
}

func NewGoogleTTS(timeout time.Duration, opts ...Option) *GoogleTTS {
	g := &GoogleTTS{
		client:  &http.Client{Timeout: timeout},
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GoogleTTS) Render(ctx context.Context, text, base, lang string) error {
	if text == "" {
		return fmt.Errorf("renderer: nothing to synthesize")
	}

	outPath := base + ".mp3"
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("renderer: failed to create output directory: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("renderer: failed to create %s: %w", outPath, err)
	}
	defer out.Close()

	for _, chunk := range splitChunks(text, maxChunkRunes) {
		audio, err := g.synthesize(ctx, chunk, lang)
		if err != nil {
			os.Remove(outPath)
			return err
		}
		if _, err := out.Write(audio); err != nil {
			os.Remove(outPath)
			return fmt.Errorf("renderer: failed to write %s: %w", outPath, err)
		}
	}

	return out.Close()
}

func (g *GoogleTTS) synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	query := url.Values{}
	query.Set("ie", "UTF-8")
	query.Set("client", "tw-ob")
	query.Set("tl", lang)
	query.Set("q", text)

	reqURL := fmt.Sprintf("%s/translate_tts?%s", g.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("renderer: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("renderer: tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("renderer: tts endpoint returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("renderer: failed to read tts response: %w", err)
	}
	return audio, nil
}

// splitChunks breaks text into pieces of at most max runes, preferring word
// boundaries. A single word longer than max is split mid-word.
func splitChunks(text string, max int) []string {
	runes := []rune(text)
	if len(runes) <= max {
		return []string{text}
	}

	var chunks []string
	for len(runes) > 0 {
		if len(runes) <= max {
			chunks = append(chunks, string(runes))
			break
		}
		cut := max
		for i := max; i > 0; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	return chunks
}
