package formatting

import (
	"strings"
	"unicode/utf8"
)

// MessageLimit is the maximum length of a Discord message.
const MessageLimit = 2000

// SplitMessage breaks text into chunks of at most limit characters, cutting
// on line boundaries. A single line longer than limit is cut hard.
func SplitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var (
		chunks  []string
		current strings.Builder
		size    int
	)

	flush := func() {
		if size > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			size = 0
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		n := utf8.RuneCountInString(line)
		if size+n <= limit {
			current.WriteString(line)
			size += n
			continue
		}

		flush()
		for n > limit {
			runes := []rune(line)
			chunks = append(chunks, string(runes[:limit]))
			line = string(runes[limit:])
			n -= limit
		}
		current.WriteString(line)
		size = n
	}
	flush()

	for i, c := range chunks {
		chunks[i] = strings.TrimSuffix(c, "\n")
	}
	return chunks
}

// CodeBlocks wraps text in fenced code blocks tagged with lang, each no
// longer than limit characters including the fences.
func CodeBlocks(text, lang string, limit int) []string {
	open := "```" + lang + "\n"
	closing := "\n```"
	inner := limit - utf8.RuneCountInString(open) - utf8.RuneCountInString(closing)

	parts := SplitMessage(text, inner)
	blocks := make([]string, 0, len(parts))
	for _, p := range parts {
		blocks = append(blocks, open+p+closing)
	}
	return blocks
}
