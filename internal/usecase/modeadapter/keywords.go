package modeadapter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "is": {}, "are": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "with": {},
}

const trailingPunctuation = ".,!?;:\"')]}"

// ExtractKeywords pulls up to count candidate vocabulary words out of text,
// in order of first occurrence. count <= 0 means DefaultKeywordCount.
func ExtractKeywords(text string, count int) []string {
	if count <= 0 {
		count = DefaultKeywordCount
	}
	keywords := make([]string, 0, count)
	seen := make(map[string]struct{}, count)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if isStopWord(word) || utf8.RuneCountInString(word) <= 3 {
			continue
		}
		word = strings.TrimRight(word, trailingPunctuation)
		if word == "" {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
		if len(keywords) == count {
			break
		}
	}
	return keywords
}

func isStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// token is one whitespace-separated piece of a sentence and its bare word.
type token struct {
	raw  string
	word string
}

func tokenize(sentence string) []token {
	fields := strings.Fields(sentence)
	tokens := make([]token, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, token{raw: f, word: trimPunct(f)})
	}
	return tokens
}

func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}
