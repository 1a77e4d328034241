package splitters

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
	"fmt"
	"strings"
	"unicode"

	"VaultMind/backend/go/pkg/logger"
)

// ParagraphSplitter implements the Splitter interface by segmenting the text
// into paragraphs and greedily packing them into chunks of at most MaxSize
// runes, seeding each new chunk with trailing paragraphs of the previous one
// for continuity across boundaries.
type ParagraphSplitter struct {
	MaxSize int
	Overlap int
	log     *logger.Logger
}

// NewParagraphSplitter creates a new ParagraphSplitter. The logger is
// optional and only used for diagnostics.
func NewParagraphSplitter(maxSize, overlap int, log *logger.Logger) (*ParagraphSplitter, error) {
	if err := validateWindow(maxSize, overlap); err != nil {
		return nil, err
	}
	return &ParagraphSplitter{MaxSize: maxSize, Overlap: overlap, log: log}, nil
}

// paragraph is one segmented paragraph with its rune span in the normalized
// document text.
type paragraph struct {
	text  string
	start int
	end   int
}

// Split segments the text into paragraphs and packs them into chunks.
// Every chunk's text length stays within MaxSize; a single paragraph longer
// than MaxSize is re-segmented with fixed-size chunking instead of being
// packed.
func (s *ParagraphSplitter) Split(ctx context.Context, text string) ([]schema.Chunk, error) {
	paragraphs := segmentParagraphs(text)
	if len(paragraphs) == 0 {
		return nil, nil
	}

	if s.log != nil {
		total := 0
		for _, p := range paragraphs {
			total += len([]rune(p.text))
		}
		s.log.Debug(fmt.Sprintf("Segmented %d paragraphs, average length %d runes", len(paragraphs), total/len(paragraphs)))
	}

	var chunks []schema.Chunk
	var current []paragraph
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		texts := make([]string, len(current))
		for i, p := range current {
			texts[i] = p.text
		}
		chunks = append(chunks, schema.Chunk{
			Text:  strings.Join(texts, "\n\n"),
			Start: current[0].start,
			End:   current[len(current)-1].end,
		})
	}

	for _, p := range paragraphs {
		pLen := len([]rune(p.text))

		// An oversized paragraph cannot be packed: flush what we have and
		// fall back to fixed-size chunking for this paragraph alone.
		if pLen > s.MaxSize {
			flush()
			current, currentLen = nil, 0

			sub, err := ChunkFixed(p.text, s.MaxSize, s.Overlap)
			if err != nil {
				return nil, err
			}
			for _, c := range sub {
				chunks = append(chunks, schema.Chunk{Text: c.Text, Start: p.start + c.Start, End: p.start + c.End})
			}
			continue
		}

		joiner := 0
		if len(current) > 0 {
			joiner = 2
		}

		if len(current) > 0 && currentLen+joiner+pLen > s.MaxSize {
			flush()

			seed, seedLen := overlapTail(current, s.Overlap)
			if seedLen > 0 && seedLen+2+pLen <= s.MaxSize {
				current = append(seed, p)
				currentLen = seedLen + 2 + pLen
			} else {
				current = []paragraph{p}
				currentLen = pLen
			}
			continue
		}

		current = append(current, p)
		currentLen += joiner + pLen
	}
	flush()

	return chunks, nil
}

// segmentParagraphs normalizes line endings and groups lines into paragraphs.
// A blank line always closes the current paragraph. A non-blank line starts a
// new paragraph when the accumulated text ends with sentence-terminal
// punctuation and the line begins with an uppercase letter, digit, or list
// marker; otherwise it is soft-wrap joined onto the current paragraph with a
// single space.
func segmentParagraphs(text string) []paragraph {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var paragraphs []paragraph
	var current strings.Builder
	currentStart, currentEnd := 0, 0

	flush := func() {
		if strings.TrimSpace(current.String()) != "" {
			paragraphs = append(paragraphs, paragraph{text: current.String(), start: currentStart, end: currentEnd})
		}
		current.Reset()
	}

	offset := 0
	for _, line := range strings.Split(normalized, "\n") {
		lineLen := len([]rune(line))
		lineStart, lineEnd := offset, offset+lineLen
		offset = lineEnd + 1 // account for the newline

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}

		if current.Len() == 0 {
			current.WriteString(trimmed)
			currentStart, currentEnd = lineStart, lineEnd
			continue
		}

		if startsNewParagraph(current.String(), trimmed) {
			flush()
			current.WriteString(trimmed)
			currentStart, currentEnd = lineStart, lineEnd
			continue
		}

		current.WriteString(" ")
		current.WriteString(trimmed)
		currentEnd = lineEnd
	}
	flush()

	return paragraphs
}

// startsNewParagraph decides whether a line opens a new paragraph rather than
// continuing the accumulated one.
func startsNewParagraph(accumulated, line string) bool {
	accRunes := []rune(strings.TrimRight(accumulated, " "))
	if len(accRunes) == 0 {
		return false
	}
	last := accRunes[len(accRunes)-1]
	if last != '.' && last != '!' && last != '?' && last != ':' {
		return false
	}

	first := []rune(line)[0]
	return unicode.IsUpper(first) || unicode.IsDigit(first) || first == '-' || first == '*' || first == '•'
}

// overlapTail collects trailing paragraphs of a closed chunk, iterating
// backward until the accumulated text reaches the requested overlap size.
func overlapTail(paragraphs []paragraph, overlap int) ([]paragraph, int) {
	if overlap <= 0 {
		return nil, 0
	}

	var tail []paragraph
	total := 0
	for i := len(paragraphs) - 1; i >= 0; i-- {
		joiner := 0
		if len(tail) > 0 {
			joiner = 2
		}
		tail = append([]paragraph{paragraphs[i]}, tail...)
		total += joiner + len([]rune(paragraphs[i].text))
		if total >= overlap {
			break
		}
	}
	return tail, total
}

// compile-time check to ensure ParagraphSplitter implements the Splitter interface
var _ interfaces.Splitter = (*ParagraphSplitter)(nil)
