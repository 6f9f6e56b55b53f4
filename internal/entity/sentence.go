package entity

import "strings"

// Difficulty is an editor-assigned difficulty tag on a sentence pair.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Score maps the tag onto the 1-3 scale. ok is false for unknown tags.
func (d Difficulty) Score() (score int, ok bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(string(d)))) {
	case DifficultyEasy:
		return 1, true
	case DifficultyMedium:
		return 2, true
	case DifficultyHard:
		return 3, true
	default:
		return 0, false
	}
}

// Level is a learner proficiency level.
type Level string

const (
	LevelUnspecified  Level = ""
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// ParseLevel converts an arbitrary string into a supported Level value.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return LevelBeginner
	case "intermediate":
		return LevelIntermediate
	case "advanced":
		return LevelAdvanced
	default:
		return LevelUnspecified
	}
}

// PairMetadata carries optional annotations on a sentence pair.
type PairMetadata struct {
	Difficulty           Difficulty        `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	AIAdjustedDifficulty Level             `json:"aiAdjustedDifficulty,omitempty" yaml:"aiAdjustedDifficulty,omitempty"`
	Extra                map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// SentencePair is one aligned English/Chinese sentence, the atomic unit of practice content.
type SentencePair struct {
	ID       string `json:"id" yaml:"id"`
	English  string `json:"english" yaml:"english"`
	Chinese  string `json:"chinese" yaml:"chinese"`
	Pinyin   string `json:"pinyin,omitempty" yaml:"pinyin,omitempty"`
	AudioURL string `json:"audioUrl,omitempty" yaml:"audioUrl,omitempty"`
	// Speaker is the dialog speaker's display name, empty outside dialogs.
	Speaker  string       `json:"speaker,omitempty" yaml:"speaker,omitempty"`
	Metadata PairMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	// CalculatedDifficulty is 1-3 once classified, 0 before.
	CalculatedDifficulty int `json:"calculatedDifficulty,omitempty" yaml:"calculatedDifficulty,omitempty"`
}

// Clone returns a deep copy of the pair.
func (p SentencePair) Clone() SentencePair {
	out := p
	if p.Metadata.Extra != nil {
		out.Metadata.Extra = make(map[string]string, len(p.Metadata.Extra))
		for k, v := range p.Metadata.Extra {
			out.Metadata.Extra[k] = v
		}
	}
	return out
}
