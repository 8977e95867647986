package lexical

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// minKeywordRunes is the shortest token kept as a keyword (exclusive lower bound is 2).
const minKeywordRunes = 3

// LocalExtractor is a rule-based extractor that needs no model.
// Keywords are lower-cased tokens of at least three characters that are not
// stop words or plain numbers; entities are runs of two or more capitalized
// words inside a sentence (e.g. "Google Cloud Platform").
// Tech suffixes like "c++", "c#" and "node.js" are kept intact.
type LocalExtractor struct{}

// NewLocalExtractor creates a LocalExtractor.
func NewLocalExtractor() *LocalExtractor {
	return &LocalExtractor{}
}

// Extract implements Extractor.
func (e *LocalExtractor) Extract(ctx context.Context, text string) (KeywordSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words := splitWords(text)
	set := make(KeywordSet)
	for _, w := range words {
		lw := strings.ToLower(w.text)
		if utf8.RuneCountInString(lw) >= minKeywordRunes && !IsStopWord(lw) && !isNumeric(lw) {
			set.Add(lw)
		}
	}
	for _, ent := range entities(words) {
		set.Add(ent)
	}
	return set, nil
}

// word is a token with whether a sentence or clause boundary precedes it.
type word struct {
	text     string
	boundary bool
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.'
}

// splitWords tokenizes text, recording punctuation boundaries between tokens.
func splitWords(text string) []word {
	var words []word
	var cur strings.Builder
	boundary := true

	flush := func() {
		raw := cur.String()
		cur.Reset()
		w := strings.TrimRight(raw, ".")
		if w != "" {
			words = append(words, word{text: w, boundary: boundary})
			boundary = false
		}
		if strings.HasSuffix(raw, ".") {
			boundary = true
		}
	}

	for _, r := range text {
		switch {
		case isWordRune(r):
			cur.WriteRune(r)
		case r == ' ' || r == '\t':
			flush()
		default:
			flush()
			boundary = true
		}
	}
	flush()
	return words
}

// entities returns lower-cased runs of two or more capitalized words,
// trimmed of leading and trailing stop words.
func entities(words []word) []string {
	var out []string
	var run []string

	emit := func() {
		for len(run) > 0 && IsStopWord(strings.ToLower(run[0])) {
			run = run[1:]
		}
		for len(run) > 0 && IsStopWord(strings.ToLower(run[len(run)-1])) {
			run = run[:len(run)-1]
		}
		if len(run) >= 2 {
			out = append(out, strings.ToLower(strings.Join(run, " ")))
		}
		run = nil
	}

	for _, w := range words {
		if w.boundary {
			emit()
		}
		if isCapitalized(w.text) {
			run = append(run, w.text)
			continue
		}
		emit()
	}
	emit()
	return out
}

func isCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' && r != '+' {
			return false
		}
	}
	return true
}
