// Package corpus provides corpus loading and section chunking.
package corpus

import (
	"fmt"
	"strings"

	"github.com/Jitenthink/mediphant-devtest/internal/models"
)

// SectionMarker separates sections in a corpus document.
const SectionMarker = "##"

// Split splits corpus text into titled chunks. Sections are delimited by
// SectionMarker; within a section the first line is the title and the rest is
// the body. Sections whose trimmed body is empty are dropped without
// consuming an ID, so IDs are dense over emitted chunks.
func Split(text string) []models.Chunk {
	sections := strings.Split(text, SectionMarker)
	var chunks []models.Chunk
	for _, section := range sections {
		trimmed := strings.TrimSpace(section)
		if trimmed == "" {
			continue
		}
		lines := strings.Split(trimmed, "\n")
		title := strings.TrimSpace(lines[0])
		body := strings.TrimSpace(strings.Join(lines[1:], "\n"))
		if body == "" {
			continue
		}
		chunks = append(chunks, models.Chunk{
			ID:       fmt.Sprintf("chunk-%d", len(chunks)),
			Title:    title,
			Text:     body,
			FullText: title + "\n" + body,
		})
	}
	return chunks
}
