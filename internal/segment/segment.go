package segment

import (
	"regexp"
	"strings"
)

// DefaultSceneDelimiter is the conventional scene-break marker in manuscripts.
const DefaultSceneDelimiter = "***"

var blankLinePattern = regexp.MustCompile(`\r?\n[ \t]*\r?\n+`)
var sentenceExtractPattern = regexp.MustCompile(`[^.!?]+[.!?]?`)
var wordPattern = regexp.MustCompile(`[A-Za-z']+`)

type Paragraph struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Paragraphs splits raw text on blank-line boundaries. Indices are 1-based.
// Empty input yields an empty slice, never an error.
func Paragraphs(text string) []Paragraph {
	parts := blankLinePattern.Split(text, -1)
	out := make([]Paragraph, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, Paragraph{Index: len(out) + 1, Text: p})
	}
	return out
}

// Scenes groups paragraphs into scenes bounded by delimiter paragraphs.
// A paragraph consisting solely of the delimiter (or repeated delimiter
// characters) is consumed as a boundary and belongs to no scene. With no
// delimiter occurrences the whole document is a single scene.
func Scenes(paragraphs []Paragraph, delimiter string) [][]Paragraph {
	if delimiter == "" {
		delimiter = DefaultSceneDelimiter
	}
	scenes := make([][]Paragraph, 0, 4)
	current := make([]Paragraph, 0, len(paragraphs))
	for _, p := range paragraphs {
		if isDelimiter(p.Text, delimiter) {
			if len(current) > 0 {
				scenes = append(scenes, current)
				current = nil
			}
			continue
		}
		current = append(current, p)
	}
	if len(current) > 0 {
		scenes = append(scenes, current)
	}
	return scenes
}

// HasDelimiter reports whether any paragraph is a scene boundary for the
// given delimiter.
func HasDelimiter(paragraphs []Paragraph, delimiter string) bool {
	if delimiter == "" {
		delimiter = DefaultSceneDelimiter
	}
	for _, p := range paragraphs {
		if isDelimiter(p.Text, delimiter) {
			return true
		}
	}
	return false
}

func isDelimiter(text, delimiter string) bool {
	// Tolerate spaced variants like "* * *" when the delimiter is "***".
	collapsed := strings.ReplaceAll(strings.TrimSpace(text), " ", "")
	target := strings.ReplaceAll(delimiter, " ", "")
	if collapsed == "" || target == "" {
		return false
	}
	if collapsed == target {
		return true
	}
	// A longer run of the delimiter character, like "*****", still reads as
	// a scene break.
	return runOf(target, target[0]) && len(collapsed) >= len(target) && runOf(collapsed, target[0])
}

func runOf(s string, ch byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ch {
			return false
		}
	}
	return true
}

// Sentences splits a paragraph into trimmed sentences.
func Sentences(text string) []string {
	parts := sentenceExtractPattern.FindAllString(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Words tokenizes text into lowercase word tokens.
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// FirstWords returns at most n leading words of text.
func FirstWords(text string, n int) string {
	fields := strings.Fields(text)
	if len(fields) <= n {
		return strings.Join(fields, " ")
	}
	return strings.Join(fields[:n], " ") + "..."
}
