package tasks

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultDefinition is stored for words entered without a definition.
const DefaultDefinition = "No definition"

// Word is a single vocabulary entry.
type Word struct {
	ID         string `json:"id"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

// WordList is an ordered set of words studied together.
type WordList struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Words       []Word    `json:"words"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WordInput is a caller-supplied word before normalization.
type WordInput struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

// ListInput is a caller-supplied list before normalization.
type ListInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Words       []WordInput `json:"words"`
}

// NewWordList validates the input and constructs a list with fresh ids.
// Words with a blank word are dropped; blank definitions get DefaultDefinition.
func NewWordList(in ListInput, now time.Time) (WordList, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return WordList{}, ErrTitleRequired
	}

	words := make([]Word, 0, len(in.Words))
	for _, w := range in.Words {
		text := strings.TrimSpace(w.Word)
		if text == "" {
			continue
		}
		def := strings.TrimSpace(w.Definition)
		if def == "" {
			def = DefaultDefinition
		}
		words = append(words, Word{
			ID:         uuid.NewString(),
			Word:       text,
			Definition: def,
			Example:    strings.TrimSpace(w.Example),
		})
	}
	if len(words) == 0 {
		return WordList{}, ErrNoWords
	}

	return WordList{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Words:       words,
		CreatedAt:   now,
	}, nil
}

// ParseBatch turns pasted text into word inputs, one per non-blank line.
// The first whitespace-separated token is the word and the rest is the definition.
func ParseBatch(text string) []WordInput {
	var out []WordInput
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		def := strings.Join(fields[1:], " ")
		if def == "" {
			def = DefaultDefinition
		}
		out = append(out, WordInput{Word: fields[0], Definition: def})
	}
	return out
}
