package modeadapter

const (
	// DefaultKeywordCount is the keyword limit used when a caller passes 0.
	DefaultKeywordCount = 3

	// GrammarStructure is the sentence pattern reported for every grammar item.
	GrammarStructure = "主语+谓语+宾语"
	// GrammarPoint is the grammar point placeholder reported for every grammar item.
	GrammarPoint = "基本句型"
	// NoteKeywordSectionTitle titles the keyword section of a note.
	NoteKeywordSectionTitle = "关键词"
	// BlankPlaceholder replaces the blanked word in a listening question.
	BlankPlaceholder = "____"
)

// Config holds formatting settings.
type Config struct {
	// KeywordCount caps keywords, context vocabulary and note keywords.
	KeywordCount int
	// DistractorCount is the number of wrong options in a cloze question.
	DistractorCount int
	// ScrambleAttempts bounds the padding loop for short option pools.
	ScrambleAttempts int
}

// DefaultConfig returns sensible defaults for formatting.
func DefaultConfig() Config {
	return Config{
		KeywordCount:     DefaultKeywordCount,
		DistractorCount:  3,
		ScrambleAttempts: 20,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.KeywordCount <= 0 {
		c.KeywordCount = def.KeywordCount
	}
	if c.DistractorCount <= 0 {
		c.DistractorCount = def.DistractorCount
	}
	if c.ScrambleAttempts <= 0 {
		c.ScrambleAttempts = def.ScrambleAttempts
	}
	return c
}
