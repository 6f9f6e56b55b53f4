package entity

import "strings"

// Mode is a learning exercise style.
type Mode string

const (
	ModeChineseToEnglish Mode = "chinese-to-english"
	ModeEnglishToChinese Mode = "english-to-chinese"
	ModeListening        Mode = "listening"
	ModeGrammar          Mode = "grammar"
	ModeNotes            Mode = "notes"
)

// DefaultMode is used for empty or unrecognised mode strings.
const DefaultMode = ModeChineseToEnglish

// Modes lists every supported mode.
var Modes = []Mode{ModeChineseToEnglish, ModeEnglishToChinese, ModeListening, ModeGrammar, ModeNotes}

// ParseMode converts a string into a supported Mode, falling back to DefaultMode.
func ParseMode(s string) Mode {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeChineseToEnglish, ModeEnglishToChinese, ModeListening, ModeGrammar, ModeNotes:
		return m
	default:
		return DefaultMode
	}
}

// ItemType discriminates the payload of a ModeContentItem.
type ItemType string

const (
	ItemTypeTranslationPair   ItemType = "translation-pair"
	ItemTypeListeningExercise ItemType = "listening-exercise"
	ItemTypeGrammarAnalysis   ItemType = "grammar-analysis"
	ItemTypeNoteContent       ItemType = "note-content"
)

// ModeContentItem is a formatted, mode-specific exercise derived from one sentence pair.
type ModeContentItem struct {
	ID       string       `json:"id"`
	Type     ItemType     `json:"type"`
	Content  ItemContent  `json:"content"`
	Metadata ItemMetadata `json:"metadata"`
}

// ItemContent is implemented only by the payload types in this package.
type ItemContent interface {
	ItemType() ItemType
	isItemContent()
}

type VocabularyEntry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// TranslationContent serves both translation directions.
type TranslationContent struct {
	Prompt            string            `json:"prompt"`
	Answer            string            `json:"answer"`
	AudioURL          string            `json:"audioUrl,omitempty"`
	Keywords          []string          `json:"keywords,omitempty"`
	ContextVocabulary []VocabularyEntry `json:"contextVocabulary,omitempty"`
}

type ListeningQuestion struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type ListeningContent struct {
	AudioURL    string              `json:"audioUrl,omitempty"`
	Transcript  string              `json:"transcript"`
	Translation string              `json:"translation"`
	Questions   []ListeningQuestion `json:"questions"`
}

type GrammarExample struct {
	English string `json:"english"`
	Chinese string `json:"chinese"`
}

type GrammarContent struct {
	Sentence     string           `json:"sentence"`
	Translation  string           `json:"translation"`
	Explanation  string           `json:"explanation"`
	GrammarPoint string           `json:"grammarPoint"`
	Examples     []GrammarExample `json:"examples"`
}

type NoteSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type NoteContent struct {
	Title    string        `json:"title"`
	Content  string        `json:"content"`
	Sections []NoteSection `json:"sections"`
}

func (TranslationContent) ItemType() ItemType { return ItemTypeTranslationPair }
func (ListeningContent) ItemType() ItemType   { return ItemTypeListeningExercise }
func (GrammarContent) ItemType() ItemType     { return ItemTypeGrammarAnalysis }
func (NoteContent) ItemType() ItemType        { return ItemTypeNoteContent }

func (TranslationContent) isItemContent() {}
func (ListeningContent) isItemContent()   {}
func (GrammarContent) isItemContent()     {}
func (NoteContent) isItemContent()        {}

// PartRole is the rule-based role of a word in grammar analysis.
type PartRole string

const (
	PartSubject     PartRole = "subject"
	PartVerb        PartRole = "verb"
	PartPreposition PartRole = "preposition"
	PartArticle     PartRole = "article"
	PartOther       PartRole = "other"
)

type GrammarPart struct {
	Text string   `json:"text"`
	Role PartRole `json:"role"`
}

// ItemMetadata carries the back-references common to every item plus mode extras.
type ItemMetadata struct {
	Order       int    `json:"order"`
	BlockOrigin string `json:"blockOrigin,omitempty"`

	// english-to-chinese: merged from the originating pair.
	Difficulty           Difficulty        `json:"difficulty,omitempty"`
	AIAdjustedDifficulty Level             `json:"aiAdjustedDifficulty,omitempty"`
	CalculatedDifficulty int               `json:"calculatedDifficulty,omitempty"`
	Extra                map[string]string `json:"extra,omitempty"`

	// listening
	BlankWords []string `json:"blankWords,omitempty"`
	Sentence   string   `json:"sentence,omitempty"`

	// grammar
	Structure string        `json:"structure,omitempty"`
	Parts     []GrammarPart `json:"parts,omitempty"`

	// notes
	English  string   `json:"english,omitempty"`
	Chinese  string   `json:"chinese,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	AudioURL string   `json:"audioUrl,omitempty"`
}
