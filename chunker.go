package mdubot

import (
	"strings"
	"unicode/utf8"
)

// Default chunking parameters, in characters.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// SplitChunks splits text into chunks of roughly size characters with the
// given overlap, preferring to break on sentence boundaries. Chunks are
// trimmed; empty input yields no chunks.
func SplitChunks(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 5
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder

	for _, sentence := range splitSentences(text) {
		if current.Len() > 0 && current.Len()+len(sentence)+1 > size {
			chunk := strings.TrimSpace(current.String())
			if chunk != "" {
				chunks = append(chunks, chunk)
			}

			// Seed the next chunk with the tail of this one so context
			// spanning a boundary is retrievable from either side.
			tail := current.String()
			if overlap == 0 {
				tail = ""
			} else if len(tail) > overlap {
				// Back off to a rune boundary so the tail never starts
				// inside a multi-byte character.
				cut := len(tail) - overlap
				for cut < len(tail) && !utf8.RuneStart(tail[cut]) {
					cut++
				}
				tail = tail[cut:]
			}
			current.Reset()
			current.WriteString(tail)
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
	}

	if chunk := strings.TrimSpace(current.String()); chunk != "" {
		chunks = append(chunks, chunk)
	}

	return chunks
}

// splitSentences splits text on sentence-ending punctuation followed by
// whitespace. Lines without terminal punctuation are kept whole.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			atEnd := i == len(runes)-1
			if atEnd || runes[i+1] == ' ' || runes[i+1] == '\n' {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
