package splitters

import (
	"context"
	"strings"
	"testing"
)

func TestSegmentParagraphsSoftWrapJoin(t *testing.T) {
	text := "This is a sentence\nthat continues on the next line."

	paragraphs := segmentParagraphs(text)
	if len(paragraphs) != 1 {
		t.Fatalf("Expected 1 paragraph, got %d", len(paragraphs))
	}
	want := "This is a sentence that continues on the next line."
	if paragraphs[0].text != want {
		t.Errorf("Expected %q, got %q", want, paragraphs[0].text)
	}
}

func TestSegmentParagraphsSentenceBoundary(t *testing.T) {
	text := "First sentence ends here.\nSecond paragraph starts with a capital."

	paragraphs := segmentParagraphs(text)
	if len(paragraphs) != 2 {
		t.Fatalf("Expected 2 paragraphs, got %d", len(paragraphs))
	}
}

func TestSegmentParagraphsBlankLineCloses(t *testing.T) {
	text := "first block\nstill first\n\nsecond block"

	paragraphs := segmentParagraphs(text)
	if len(paragraphs) != 2 {
		t.Fatalf("Expected 2 paragraphs, got %d", len(paragraphs))
	}
	if paragraphs[0].text != "first block still first" {
		t.Errorf("Unexpected first paragraph: %q", paragraphs[0].text)
	}
	if paragraphs[1].text != "second block" {
		t.Errorf("Unexpected second paragraph: %q", paragraphs[1].text)
	}
}

func TestSegmentParagraphsListMarkers(t *testing.T) {
	text := "Required parts:\n- pump housing.\n- seal kit."

	paragraphs := segmentParagraphs(text)
	// The colon plus list markers opens a new paragraph per item.
	if len(paragraphs) != 3 {
		t.Fatalf("Expected 3 paragraphs, got %d", len(paragraphs))
	}
}

func TestChunkByParagraphRespectsMaxSize(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 12; i++ {
		sb.WriteString(strings.Repeat("word ", 8))
		sb.WriteString("\n\n")
	}

	splitter, err := NewParagraphSplitter(100, 20, nil)
	if err != nil {
		t.Fatalf("NewParagraphSplitter() error = %v", err)
	}

	chunks, err := splitter.Split(context.Background(), sb.String())
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("Expected chunks, got none")
	}

	for i, c := range chunks {
		if n := len([]rune(c.Text)); n > 100 {
			t.Errorf("Chunk %d length %d exceeds max size 100", i, n)
		}
	}
}

func TestChunkByParagraphOverlapSeeding(t *testing.T) {
	a := strings.Repeat("a", 40)
	b := strings.Repeat("b", 40)
	c := strings.Repeat("c", 40)
	text := a + "\n\n" + b + "\n\n" + c

	splitter, err := NewParagraphSplitter(90, 40, nil)
	if err != nil {
		t.Fatalf("NewParagraphSplitter() error = %v", err)
	}

	chunks, err := splitter.Split(context.Background(), text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}

	if chunks[0].Text != a+"\n\n"+b {
		t.Errorf("Unexpected first chunk: %q", chunks[0].Text)
	}
	// The second chunk is seeded with the trailing paragraph of the first.
	if chunks[1].Text != b+"\n\n"+c {
		t.Errorf("Expected second chunk to be seeded with the previous paragraph, got %q", chunks[1].Text)
	}
}

func TestChunkByParagraphOversizedFallback(t *testing.T) {
	oversized := strings.Repeat("x", 250)
	text := "A short intro paragraph.\n\n" + oversized

	splitter, err := NewParagraphSplitter(100, 10, nil)
	if err != nil {
		t.Fatalf("NewParagraphSplitter() error = %v", err)
	}

	chunks, err := splitter.Split(context.Background(), text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	for i, c := range chunks {
		if n := len([]rune(c.Text)); n > 100 {
			t.Errorf("Chunk %d length %d exceeds max size even via fallback", i, n)
		}
		if c.Start < 0 || c.End < c.Start {
			t.Errorf("Chunk %d has invalid span [%d, %d)", i, c.Start, c.End)
		}
	}
	if len(chunks) < 3 {
		t.Errorf("Expected the oversized paragraph to be re-segmented, got %d chunks", len(chunks))
	}
}

func TestChunkByParagraphPreservesOrder(t *testing.T) {
	text := "Alpha block one.\n\nBeta block two.\n\nGamma block three."

	splitter, err := NewParagraphSplitter(500, 0, nil)
	if err != nil {
		t.Fatalf("NewParagraphSplitter() error = %v", err)
	}

	chunks, err := splitter.Split(context.Background(), text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("Expected everything packed into 1 chunk, got %d", len(chunks))
	}

	joined := chunks[0].Text
	alpha := strings.Index(joined, "Alpha")
	beta := strings.Index(joined, "Beta")
	gamma := strings.Index(joined, "Gamma")
	if !(alpha < beta && beta < gamma) {
		t.Errorf("Paragraph order not preserved in %q", joined)
	}
}

func TestChunkByParagraphEmptyInput(t *testing.T) {
	splitter, err := NewParagraphSplitter(100, 10, nil)
	if err != nil {
		t.Fatalf("NewParagraphSplitter() error = %v", err)
	}

	chunks, err := splitter.Split(context.Background(), "   \n\n  ")
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("Expected no chunks for blank input, got %d", len(chunks))
	}
}
