package chunker

import (
	"context"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/pustaka-ai/pustaka/internal/model"
	"github.com/pustaka-ai/pustaka/internal/textutil"
)

// Size discipline for produced chunks, in words.
const (
	DefaultMinChunkWords = 80
	DefaultMaxChunkWords = 800
	WordsPerPage         = 500
)

type Config struct {
	MinChunkWords int
	MaxChunkWords int
	MaxKeywords   int
}

func (c *Config) fill() {
	if c.MinChunkWords <= 0 {
		c.MinChunkWords = DefaultMinChunkWords
	}
	if c.MaxChunkWords <= 0 {
		c.MaxChunkWords = DefaultMaxChunkWords
	}
	if c.MaxKeywords <= 0 {
		c.MaxKeywords = textutil.DefaultMaxKeywords
	}
}

// SmartChunker converts structured sections plus page-indexed raw text into
// the final chunk sequence: size-bounded, zero text loss, section
// provenance, resolved page numbers and per-chunk keywords.
type SmartChunker struct {
	cfg Config
}

func NewSmartChunker(cfg Config) *SmartChunker {
	cfg.fill()
	return &SmartChunker{cfg: cfg}
}

// Chunk runs the whole pipeline for one document. Returns nil when the
// sections carry no usable text, which signals the caller to fall back to
// fixed-window chunking.
func (c *SmartChunker) Chunk(ctx context.Context, sections []model.Section, pages []model.Page) []model.Chunk {
	logger := logutil.GetLogger(ctx)

	var chunks []model.Chunk
	wordPos := 0
	for _, section := range sections {
		emitted := c.chunkSection(section, &wordPos)
		chunks = append(chunks, emitted...)
	}
	if len(chunks) == 0 {
		logger.Warn("no chunks produced from sections", zap.Int("sections", len(sections)))
		return nil
	}

	for i := range chunks {
		chunks[i].Index = i
		if page, ok := resolvePage(chunks[i].Content, pages); ok {
			chunks[i].PageNumber = page
		}
		chunks[i].Keywords = textutil.ExtractKeywords(chunks[i].Content, c.cfg.MaxKeywords, nil)
	}
	logger.Info("chunking completed",
		zap.Int("sections", len(sections)),
		zap.Int("chunks", len(chunks)),
	)
	return chunks
}

// chunkSection emits the chunks of one section in paragraph order. wordPos
// tracks the cumulative word offset across the document for the provisional
// page estimate.
func (c *SmartChunker) chunkSection(section model.Section, wordPos *int) []model.Chunk {
	paragraphs := sectionParagraphs(section)
	if len(paragraphs) == 0 {
		return nil
	}
	kind := kindForSection(section.Type)

	var out []model.Chunk
	var buffer []string
	bufferWords := 0

	emit := func(content string, words int) {
		out = append(out, model.Chunk{
			Content:      content,
			TokenCount:   words,
			Kind:         kind,
			SectionTitle: section.Title,
			PageNumber:   *wordPos/WordsPerPage + 1,
		})
		*wordPos += words
	}
	flush := func() {
		if len(buffer) == 0 {
			return
		}
		emit(strings.Join(buffer, "\n\n"), bufferWords)
		buffer = nil
		bufferWords = 0
	}

	for _, para := range paragraphs {
		words := textutil.WordCount(para)
		if words == 0 {
			continue
		}
		if words > c.cfg.MaxChunkWords {
			flush()
			for _, piece := range c.splitOversized(para) {
				emit(piece.content, piece.words)
			}
			continue
		}
		if bufferWords+words > c.cfg.MaxChunkWords {
			flush()
		}
		buffer = append(buffer, para)
		bufferWords += words
	}
	flush()
	return out
}

type piece struct {
	content string
	words   int
}

// splitOversized breaks a paragraph longer than the max into sentence-packed
// pieces. A trailing remainder shorter than the min merges backward into the
// previous piece when the combination still fits, else it stays on its own.
func (c *SmartChunker) splitOversized(para string) []piece {
	sentences := textutil.SplitSentences(para)
	if len(sentences) == 0 {
		return []piece{{content: para, words: textutil.WordCount(para)}}
	}

	var pieces []piece
	var current []string
	currentWords := 0
	flush := func() {
		if len(current) == 0 {
			return
		}
		pieces = append(pieces, piece{content: strings.Join(current, " "), words: currentWords})
		current = nil
		currentWords = 0
	}
	for _, sentence := range sentences {
		words := textutil.WordCount(sentence)
		if currentWords > 0 && currentWords+words > c.cfg.MaxChunkWords {
			flush()
		}
		current = append(current, sentence)
		currentWords += words
	}
	flush()

	// Merge a short trailing remainder backward when it still fits.
	if len(pieces) >= 2 {
		last := pieces[len(pieces)-1]
		prev := pieces[len(pieces)-2]
		if last.words < c.cfg.MinChunkWords && prev.words+last.words <= c.cfg.MaxChunkWords {
			pieces[len(pieces)-2] = piece{
				content: prev.content + " " + last.content,
				words:   prev.words + last.words,
			}
			pieces = pieces[:len(pieces)-1]
		}
	}
	return pieces
}

// sectionParagraphs returns the usable paragraphs of a section, treating a
// paragraph-less section with raw content as a single-paragraph section and
// skipping empty paragraphs.
func sectionParagraphs(section model.Section) []string {
	source := section.Paragraphs
	if len(source) == 0 {
		if raw := strings.TrimSpace(section.Raw); raw != "" {
			source = []string{raw}
		}
	}
	out := make([]string, 0, len(source))
	for _, p := range source {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func kindForSection(t model.SectionType) model.ChunkKind {
	switch t {
	case model.SectionTitle:
		return model.ChunkTitle
	case model.SectionAbstract:
		return model.ChunkAbstract
	case model.SectionRefs:
		return model.ChunkReference
	default:
		return model.ChunkParagraph
	}
}
