package modeadapter

import (
	"strings"
	"unicode/utf8"

	"github.com/eslsoft/learnmode/internal/entity"
)

const clozeQuestionType = "fill-blank"

func (a *Adapter) formatListening(pair entity.SentencePair, _ int) entity.ModeContentItem {
	tokens := tokenize(pair.English)
	blankIdx := a.chooseBlank(tokens)

	content := entity.ListeningContent{
		AudioURL:    pair.AudioURL,
		Transcript:  pair.English,
		Translation: pair.Chinese,
		Questions:   []entity.ListeningQuestion{},
	}
	meta := entity.ItemMetadata{Sentence: pair.English}

	if blankIdx >= 0 {
		answer := tokens[blankIdx].word
		pool := make([]string, 0, len(tokens))
		for _, t := range tokens {
			if isClozeCandidate(t) {
				pool = append(pool, t.word)
			}
		}
		content.Questions = append(content.Questions, entity.ListeningQuestion{
			ID:       pair.ID + "-q0",
			Type:     clozeQuestionType,
			Question: blankOut(tokens, blankIdx),
			Options:  a.generateOptions(answer, pool, a.cfg.DistractorCount),
			Answer:   answer,
		})
		meta.BlankWords = []string{answer}
	}

	return entity.ModeContentItem{
		Type:     entity.ItemTypeListeningExercise,
		Content:  content,
		Metadata: meta,
	}
}

func isClozeCandidate(t token) bool {
	return utf8.RuneCountInString(t.word) > 2
}

// chooseBlank returns the token index to blank out, or -1. With more than
// three candidates one is picked at random, otherwise the first is used.
func (a *Adapter) chooseBlank(tokens []token) int {
	candidates := make([]int, 0, len(tokens))
	for i, t := range tokens {
		if isClozeCandidate(t) {
			candidates = append(candidates, i)
		}
	}
	switch {
	case len(candidates) > 3:
		return candidates[a.rnd.IntN(len(candidates))]
	case len(candidates) > 0:
		return candidates[0]
	default:
		return -1
	}
}

func blankOut(tokens []token, idx int) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		if i == idx {
			parts[i] = strings.Replace(t.raw, t.word, BlankPlaceholder, 1)
			continue
		}
		parts[i] = t.raw
	}
	return strings.Join(parts, " ")
}

// generateOptions returns count+1 shuffled options containing correct. Other
// pool words are drawn at random first; scrambled spellings of correct pad
// the list when the pool runs out.
func (a *Adapter) generateOptions(correct string, pool []string, count int) []string {
	want := count + 1
	options := []string{correct}
	seen := map[string]struct{}{strings.ToLower(correct): {}}

	candidates := make([]string, 0, len(pool))
	for _, w := range pool {
		key := strings.ToLower(w)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		candidates = append(candidates, w)
	}
	a.rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, w := range candidates {
		if len(options) >= want {
			break
		}
		options = append(options, w)
	}

	for attempt := 0; len(options) < want && attempt < a.cfg.ScrambleAttempts; attempt++ {
		variant := a.scramble(correct)
		key := strings.ToLower(variant)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		options = append(options, variant)
	}

	a.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

func (a *Adapter) scramble(word string) string {
	letters := []rune(word)
	a.rnd.Shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})
	return string(letters)
}
