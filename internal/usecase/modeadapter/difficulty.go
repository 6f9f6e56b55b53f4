package modeadapter

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/eslsoft/learnmode/internal/entity"
)

const (
	DifficultyBeginner     = 1
	DifficultyIntermediate = 2
	DifficultyAdvanced     = 3
)

// complexityMarkers each add one point when they match the English text.
var complexityMarkers = []*regexp.Regexp{
	// complex connectives
	regexp.MustCompile(`(?i)\b(if|unless|although|however|nevertheless|therefore|consequently)\b`),
	// modal verbs
	regexp.MustCompile(`(?i)\b(would|could|should|might|may)\b`),
	// perfect-tense auxiliaries
	regexp.MustCompile(`(?i)\b(has|have|had)\s+(been|\w{2,}ed)\b`),
	// subordinate clause cue followed by a comma
	regexp.MustCompile(`(?i)\b(while|when|as|since)\b[^,]*,`),
}

// ComplexityScore counts the marker categories present in text (0-4).
func ComplexityScore(text string) int {
	score := 0
	for _, re := range complexityMarkers {
		if re.MatchString(text) {
			score++
		}
	}
	return score
}

// Score rates a sentence pair 1 (beginner) to 3 (advanced). A pre-assigned
// metadata difficulty wins over the heuristic.
func Score(pair entity.SentencePair) int {
	if score, ok := pair.Metadata.Difficulty.Score(); ok {
		return score
	}

	englishWordCount := len(strings.Fields(pair.English))
	chineseLength := utf8.RuneCountInString(strings.TrimSpace(pair.Chinese))
	complexity := ComplexityScore(pair.English)

	switch {
	case englishWordCount > 15 || chineseLength > 30 || complexity >= 2:
		return DifficultyAdvanced
	case englishWordCount > 8 || chineseLength > 20 || complexity >= 1:
		return DifficultyIntermediate
	default:
		return DifficultyBeginner
	}
}

// Classify scores every pair and biases the result toward level.
//
//   - beginner keeps difficulty 1-2, easiest first
//   - intermediate keeps everything in input order
//   - advanced keeps difficulty 2-3, hardest first
//
// Kept pairs are tagged with the level. An unspecified level returns every
// pair scored but untagged. The input slice is not modified.
func Classify(pairs []entity.SentencePair, level entity.Level) []entity.SentencePair {
	scored := lo.Map(pairs, func(p entity.SentencePair, _ int) entity.SentencePair {
		out := p.Clone()
		out.CalculatedDifficulty = Score(p)
		return out
	})

	var kept []entity.SentencePair
	switch level {
	case entity.LevelBeginner:
		kept = lo.Filter(scored, func(p entity.SentencePair, _ int) bool {
			return p.CalculatedDifficulty <= DifficultyIntermediate
		})
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].CalculatedDifficulty < kept[j].CalculatedDifficulty
		})
	case entity.LevelIntermediate:
		kept = scored
	case entity.LevelAdvanced:
		kept = lo.Filter(scored, func(p entity.SentencePair, _ int) bool {
			return p.CalculatedDifficulty >= DifficultyIntermediate
		})
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].CalculatedDifficulty > kept[j].CalculatedDifficulty
		})
	default:
		return scored
	}

	for i := range kept {
		kept[i].Metadata.AIAdjustedDifficulty = level
	}
	return kept
}
