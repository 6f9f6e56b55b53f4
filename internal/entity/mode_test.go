package entity

import "testing"

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"listening":          ModeListening,
		" GRAMMAR ":          ModeGrammar,
		"english-to-chinese": ModeEnglishToChinese,
		"":                   DefaultMode,
		"flashcards":         DefaultMode,
	}
	for in, want := range cases {
		if got := ParseMode(in); got != want {
			t.Errorf("ParseMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"Beginner":      LevelBeginner,
		" intermediate": LevelIntermediate,
		"ADVANCED":      LevelAdvanced,
		"expert":        LevelUnspecified,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDifficultyScore(t *testing.T) {
	cases := []struct {
		in    Difficulty
		score int
		ok    bool
	}{
		{DifficultyEasy, 1, true},
		{"Medium", 2, true},
		{" hard ", 3, true},
		{"extreme", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		score, ok := c.in.Score()
		if score != c.score || ok != c.ok {
			t.Errorf("%q.Score() = (%d, %v), want (%d, %v)", c.in, score, ok, c.score, c.ok)
		}
	}
}

func TestSentencePairClone(t *testing.T) {
	p := SentencePair{ID: "x", Metadata: PairMetadata{Extra: map[string]string{"k": "v"}}}
	c := p.Clone()
	c.Metadata.Extra["k"] = "changed"
	if p.Metadata.Extra["k"] != "v" {
		t.Errorf("clone shares the extra map")
	}
}
