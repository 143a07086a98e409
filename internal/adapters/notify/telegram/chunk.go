package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLen keeps each chunk, suffix included, under Telegram's 4096
// character limit. Lengths are counted in bytes.
const DefaultMaxLen = 3800

// Chunk splits text into message-sized parts. A part ends at the last
// newline before maxLen, or at maxLen when there is none. Every part gets a
// "(Part i/n)" suffix. Blank text yields no parts.
func Chunk(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var parts []string
	for len(text) > maxLen {
		cut := strings.LastIndex(text[:maxLen], "\n")
		if cut <= 0 {
			cut = maxLen
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		parts = append(parts, text[:cut])
		text = strings.TrimLeft(text[cut:], " \t\r\n")
	}
	parts = append(parts, text)

	for i := range parts {
		parts[i] += fmt.Sprintf("\n\n(Part %d/%d)", i+1, len(parts))
	}
	return parts
}
