// Package theme splits the note of a study record into independently reviewable themes.
package theme

import (
	"strings"
)

// FlashcardSeparator splits a theme into question and answer.
const FlashcardSeparator = " : "

var bulletPrefixes = []string{"-", "*", "•", "・"}

type Mode string

const (
	ModeFlashcard Mode = "flashcard"
	ModeQuiz      Mode = "quiz"
)

// Theme is one line of a note. Index is its position in the split result and is
// stable for the same note text.
type Theme struct {
	Index int
	Text  string
}

type Flashcard struct {
	Question  string
	Answer    string
	HasAnswer bool
}

// Split returns the themes of a note. The result is never empty: a note without any
// non-empty line yields the trimmed note itself as a single theme.
func Split(note string) []Theme {
	var themes []Theme
	for _, line := range strings.Split(note, "\n") {
		text := stripBullet(strings.TrimSpace(line))
		if text == "" {
			continue
		}
		themes = append(themes, Theme{Index: len(themes), Text: text})
	}
	if len(themes) == 0 {
		return []Theme{{Index: 0, Text: strings.TrimSpace(note)}}
	}
	return themes
}

// Join is the inverse of Split for notes without bullet markers.
func Join(themes []Theme) string {
	lines := make([]string, len(themes))
	for i, t := range themes {
		lines[i] = t.Text
	}
	return strings.Join(lines, "\n")
}

func stripBullet(line string) string {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return line
}

// ParseFlashcard treats text as a flashcard when the separator splits it into exactly two parts.
func ParseFlashcard(text string) Flashcard {
	parts := strings.Split(text, FlashcardSeparator)
	if len(parts) != 2 {
		return Flashcard{Question: text}
	}
	return Flashcard{
		Question:  strings.TrimSpace(parts[0]),
		Answer:    strings.TrimSpace(parts[1]),
		HasAnswer: true,
	}
}

func (t Theme) Flashcard() Flashcard {
	return ParseFlashcard(t.Text)
}

func (t Theme) Mode() Mode {
	if t.Flashcard().HasAnswer {
		return ModeFlashcard
	}
	return ModeQuiz
}
