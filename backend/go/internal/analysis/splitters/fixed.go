package splitters

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidParameter is returned when chunk size and overlap are
// misconfigured. An overlap equal to or larger than the chunk size would make
// the window stop advancing, so it is rejected up front.
var ErrInvalidParameter = errors.New("invalid chunking parameters")

// FixedSplitter implements the Splitter interface by sliding a fixed-width
// window across the text.
type FixedSplitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewFixedSplitter creates a new FixedSplitter, validating the window
// parameters.
func NewFixedSplitter(chunkSize, chunkOverlap int) (*FixedSplitter, error) {
	if err := validateWindow(chunkSize, chunkOverlap); err != nil {
		return nil, err
	}
	return &FixedSplitter{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap}, nil
}

// Split cuts the text into fixed-size chunks.
func (s *FixedSplitter) Split(ctx context.Context, text string) ([]schema.Chunk, error) {
	return ChunkFixed(text, s.ChunkSize, s.ChunkOverlap)
}

// ChunkFixed slides a window of chunkSize runes across the text, advancing
// the start by chunkSize-overlap each step. Windows whose trimmed content is
// empty are dropped; the final window is truncated to the end of the text.
// Consecutive chunks overlap by exactly overlap runes except possibly the
// last. Empty input yields an empty chunk sequence.
func ChunkFixed(text string, chunkSize, overlap int) ([]schema.Chunk, error) {
	if err := validateWindow(chunkSize, overlap); err != nil {
		return nil, err
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	step := chunkSize - overlap
	var chunks []schema.Chunk
	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		window := string(runes[start:end])
		if strings.TrimSpace(window) != "" {
			chunks = append(chunks, schema.Chunk{Text: window, Start: start, End: end})
		}

		if end == len(runes) {
			break
		}
	}

	return chunks, nil
}

func validateWindow(chunkSize, overlap int) error {
	if chunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidParameter, chunkSize)
	}
	if overlap < 0 {
		return fmt.Errorf("%w: overlap must not be negative, got %d", ErrInvalidParameter, overlap)
	}
	if overlap >= chunkSize {
		return fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", ErrInvalidParameter, overlap, chunkSize)
	}
	return nil
}

// compile-time check to ensure FixedSplitter implements the Splitter interface
var _ interfaces.Splitter = (*FixedSplitter)(nil)
