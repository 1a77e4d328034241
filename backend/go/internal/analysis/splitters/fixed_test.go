package splitters

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestChunkFixedCoversDocument(t *testing.T) {
	text := strings.Repeat("abcdefghij", 10) // 100 runes
	chunkSize, overlap := 30, 10

	chunks, err := ChunkFixed(text, chunkSize, overlap)
	if err != nil {
		t.Fatalf("ChunkFixed() error = %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("Expected chunks, got none")
	}

	step := chunkSize - overlap
	for i, c := range chunks {
		if c.Start != i*step {
			t.Errorf("Chunk %d: expected start %d, got %d", i, i*step, c.Start)
		}
		if c.End < c.Start || c.End > len(text) {
			t.Errorf("Chunk %d: span [%d, %d) out of bounds", i, c.Start, c.End)
		}
	}

	if chunks[0].Start != 0 {
		t.Errorf("First chunk should start at 0, got %d", chunks[0].Start)
	}
	if last := chunks[len(chunks)-1]; last.End != len(text) {
		t.Errorf("Last chunk should end at %d, got %d", len(text), last.End)
	}

	// Consecutive spans must connect: the next chunk starts inside or right
	// at the end of the previous one, so the union covers the document.
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Start > chunks[i-1].End {
			t.Errorf("Gap between chunk %d (end %d) and chunk %d (start %d)", i-1, chunks[i-1].End, i, chunks[i].Start)
		}
	}
}

func TestChunkFixedOverlapContent(t *testing.T) {
	text := strings.Repeat("0123456789", 8)
	chunkSize, overlap := 20, 5

	chunks, err := ChunkFixed(text, chunkSize, overlap)
	if err != nil {
		t.Fatalf("ChunkFixed() error = %v", err)
	}

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Text)
		cur := []rune(chunks[i].Text)
		if len(prev) < overlap || len(cur) < overlap {
			continue
		}
		tail := string(prev[len(prev)-overlap:])
		head := string(cur[:overlap])
		if tail != head {
			t.Errorf("Chunks %d/%d should overlap by %d runes: %q vs %q", i-1, i, overlap, tail, head)
		}
	}
}

func TestChunkFixedInvalidParameters(t *testing.T) {
	cases := []struct {
		name      string
		chunkSize int
		overlap   int
	}{
		{"overlap equals size", 10, 10},
		{"overlap exceeds size", 10, 15},
		{"zero size", 0, 0},
		{"negative overlap", 10, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ChunkFixed("some text", tc.chunkSize, tc.overlap); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestChunkFixedEmptyInput(t *testing.T) {
	chunks, err := ChunkFixed("", 10, 2)
	if err != nil {
		t.Fatalf("ChunkFixed() error = %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("Expected no chunks for empty input, got %d", len(chunks))
	}
}

func TestChunkFixedDropsBlankWindows(t *testing.T) {
	text := "aaaa" + strings.Repeat(" ", 30) + "bbbb"

	chunks, err := ChunkFixed(text, 10, 0)
	if err != nil {
		t.Fatalf("ChunkFixed() error = %v", err)
	}

	for _, c := range chunks {
		if strings.TrimSpace(c.Text) == "" {
			t.Errorf("Blank window [%d, %d) should have been dropped", c.Start, c.End)
		}
	}
	if len(chunks) != 2 {
		t.Errorf("Expected 2 non-blank chunks, got %d", len(chunks))
	}
}

func TestChunkFixedIdempotent(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 20)

	first, err := ChunkFixed(text, 50, 10)
	if err != nil {
		t.Fatalf("ChunkFixed() error = %v", err)
	}
	second, err := ChunkFixed(text, 50, 10)
	if err != nil {
		t.Fatalf("ChunkFixed() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Repeated runs on identical input should produce identical chunks")
	}
}
