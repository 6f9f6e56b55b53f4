package modeadapter

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eslsoft/learnmode/internal/entity"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		pair entity.SentencePair
		want int
	}{
		{
			name: "short sentence",
			pair: entity.SentencePair{English: "Hello there.", Chinese: "你好。"},
			want: DifficultyBeginner,
		},
		{
			name: "modal verb",
			pair: entity.SentencePair{English: "You should rest.", Chinese: "你应该休息。"},
			want: DifficultyIntermediate,
		},
		{
			name: "more than eight words",
			pair: entity.SentencePair{English: "We walked to the old market near the river yesterday."},
			want: DifficultyIntermediate,
		},
		{
			name: "long chinese",
			pair: entity.SentencePair{English: "Fine.", Chinese: strings.Repeat("好", 21)},
			want: DifficultyIntermediate,
		},
		{
			name: "connective and perfect tense",
			pair: entity.SentencePair{
				English: "Although I have studied for many years, I still struggle with advanced grammar concepts.",
				Chinese: "虽然我学了很多年，但我仍然在高级语法概念上挣扎。",
			},
			want: DifficultyAdvanced,
		},
		{
			name: "more than fifteen words",
			pair: entity.SentencePair{English: strings.Repeat("word ", 16)},
			want: DifficultyAdvanced,
		},
		{
			name: "pre-assigned difficulty wins",
			pair: entity.SentencePair{
				English:  "Hello there.",
				Metadata: entity.PairMetadata{Difficulty: entity.DifficultyHard},
			},
			want: DifficultyAdvanced,
		},
		{
			name: "pre-assigned easy overrides heuristic",
			pair: entity.SentencePair{
				English:  strings.Repeat("word ", 20),
				Metadata: entity.PairMetadata{Difficulty: entity.DifficultyEasy},
			},
			want: DifficultyBeginner,
		},
		{
			name: "unrecognised pre-assigned value falls back",
			pair: entity.SentencePair{
				English:  "Hello there.",
				Metadata: entity.PairMetadata{Difficulty: "tricky"},
			},
			want: DifficultyBeginner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.pair); got != tt.want {
				t.Fatalf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComplexityScore(t *testing.T) {
	tests := map[string]int{
		"I like tea.":                            0,
		"If it rains, we stay home.":             1,
		"She might stay home.":                   1,
		"When he arrived, we had finished.":      2,
		"Although we could go, it has been late": 3,
	}
	for text, want := range tests {
		if got := ComplexityScore(text); got != want {
			t.Errorf("ComplexityScore(%q) = %d, want %d", text, got, want)
		}
	}
}

func TestScore_MonotonicInLength(t *testing.T) {
	base := entity.SentencePair{English: "I like tea", Chinese: "我喜欢茶"}
	prev := Score(base)
	for i := 0; i < 20; i++ {
		base.English += " today"
		base.Chinese += "今天"
		got := Score(base)
		if got < prev {
			t.Fatalf("score decreased from %d to %d after growing to %q", prev, got, base.English)
		}
		prev = got
	}
}

func classifyFixture() []entity.SentencePair {
	return []entity.SentencePair{
		{ID: "hard", English: "Although I have studied for many years, I still struggle with advanced grammar concepts."},
		{ID: "easy", English: "Hello there."},
		{ID: "medium", English: "You should rest."},
		{ID: "easy-2", English: "Good night."},
	}
}

func pairIDs(pairs []entity.SentencePair) []string {
	ids := make([]string, 0, len(pairs))
	for _, p := range pairs {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestClassify_Beginner(t *testing.T) {
	got := Classify(classifyFixture(), entity.LevelBeginner)
	want := []string{"easy", "easy-2", "medium"}
	if diff := cmp.Diff(want, pairIDs(got)); diff != "" {
		t.Fatalf("unexpected pairs (-want +got):\n%s", diff)
	}
	for _, p := range got {
		if p.CalculatedDifficulty > DifficultyIntermediate {
			t.Errorf("pair %q has difficulty %d", p.ID, p.CalculatedDifficulty)
		}
		if p.Metadata.AIAdjustedDifficulty != entity.LevelBeginner {
			t.Errorf("pair %q not tagged with level", p.ID)
		}
	}
}

func TestClassify_Intermediate(t *testing.T) {
	got := Classify(classifyFixture(), entity.LevelIntermediate)
	want := []string{"hard", "easy", "medium", "easy-2"}
	if diff := cmp.Diff(want, pairIDs(got)); diff != "" {
		t.Fatalf("unexpected pairs (-want +got):\n%s", diff)
	}
	if got[0].CalculatedDifficulty != DifficultyAdvanced {
		t.Errorf("expected hard pair to score %d, got %d", DifficultyAdvanced, got[0].CalculatedDifficulty)
	}
}

func TestClassify_Advanced(t *testing.T) {
	got := Classify(classifyFixture(), entity.LevelAdvanced)
	want := []string{"hard", "medium"}
	if diff := cmp.Diff(want, pairIDs(got)); diff != "" {
		t.Fatalf("unexpected pairs (-want +got):\n%s", diff)
	}
	for _, p := range got {
		if p.CalculatedDifficulty < DifficultyIntermediate {
			t.Errorf("pair %q has difficulty %d", p.ID, p.CalculatedDifficulty)
		}
	}
}

func TestClassify_UnspecifiedLevelScoresOnly(t *testing.T) {
	got := Classify(classifyFixture(), entity.LevelUnspecified)
	if len(got) != 4 {
		t.Fatalf("expected 4 pairs, got %d", len(got))
	}
	for _, p := range got {
		if p.CalculatedDifficulty == 0 {
			t.Errorf("pair %q was not scored", p.ID)
		}
		if p.Metadata.AIAdjustedDifficulty != entity.LevelUnspecified {
			t.Errorf("pair %q should not be tagged", p.ID)
		}
	}
}

func TestClassify_DoesNotMutateInput(t *testing.T) {
	input := classifyFixture()
	input[0].Metadata.Extra = map[string]string{"source": "book"}
	before := make([]entity.SentencePair, len(input))
	for i, p := range input {
		before[i] = p.Clone()
	}

	out := Classify(input, entity.LevelAdvanced)
	out[0].Metadata.Extra["source"] = "changed"

	if diff := cmp.Diff(before, input); diff != "" {
		t.Fatalf("input was modified (-before +after):\n%s", diff)
	}
}

func TestClassify_Empty(t *testing.T) {
	for _, level := range []entity.Level{entity.LevelBeginner, entity.LevelIntermediate, entity.LevelAdvanced} {
		if got := Classify(nil, level); len(got) != 0 {
			t.Errorf("level %q: expected no pairs, got %d", level, len(got))
		}
	}
}
