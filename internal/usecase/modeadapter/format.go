package modeadapter

import (
	"github.com/eslsoft/learnmode/internal/entity"
)

// formatFunc builds the item for the pair at position index.
type formatFunc func(a *Adapter, pair entity.SentencePair, index int) entity.ModeContentItem

var formatters = map[entity.Mode]formatFunc{
	entity.ModeChineseToEnglish: (*Adapter).formatChineseToEnglish,
	entity.ModeEnglishToChinese: (*Adapter).formatEnglishToChinese,
	entity.ModeListening:        (*Adapter).formatListening,
	entity.ModeGrammar:          (*Adapter).formatGrammar,
	entity.ModeNotes:            (*Adapter).formatNotes,
}

// FormatForMode converts pairs into items for mode. Unrecognised modes use
// chinese-to-english. Items keep the order of pairs, carry their pair's id,
// and record the positional index and the id of the block the pair came from.
func (a *Adapter) FormatForMode(mode entity.Mode, pairs []entity.SentencePair, origins map[string]entity.ContentBlock) []entity.ModeContentItem {
	format, ok := formatters[mode]
	if !ok {
		format = formatters[entity.DefaultMode]
	}

	items := make([]entity.ModeContentItem, 0, len(pairs))
	for i, pair := range pairs {
		item := format(a, pair, i)
		item.ID = pair.ID
		item.Metadata.Order = i
		if block, ok := origins[pair.ID]; ok {
			item.Metadata.BlockOrigin = block.ID
		}
		items = append(items, item)
	}
	return items
}

func (a *Adapter) formatChineseToEnglish(pair entity.SentencePair, _ int) entity.ModeContentItem {
	return entity.ModeContentItem{
		Type: entity.ItemTypeTranslationPair,
		Content: entity.TranslationContent{
			Prompt:   pair.Chinese,
			Answer:   pair.English,
			AudioURL: pair.AudioURL,
			Keywords: ExtractKeywords(pair.English, a.cfg.KeywordCount),
		},
	}
}

func (a *Adapter) formatEnglishToChinese(pair entity.SentencePair, _ int) entity.ModeContentItem {
	vocabulary := make([]entity.VocabularyEntry, 0, a.cfg.KeywordCount)
	for _, word := range ExtractKeywords(pair.English, a.cfg.KeywordCount) {
		definition, ok := a.glossary.Define(word)
		if !ok {
			definition, _ = stubGlossary{}.Define(word)
		}
		vocabulary = append(vocabulary, entity.VocabularyEntry{Word: word, Definition: definition})
	}

	meta := entity.ItemMetadata{
		Difficulty:           pair.Metadata.Difficulty,
		AIAdjustedDifficulty: pair.Metadata.AIAdjustedDifficulty,
		CalculatedDifficulty: pair.CalculatedDifficulty,
		Extra:                pair.Clone().Metadata.Extra,
	}
	return entity.ModeContentItem{
		Type: entity.ItemTypeTranslationPair,
		Content: entity.TranslationContent{
			Prompt:            pair.English,
			Answer:            pair.Chinese,
			AudioURL:          pair.AudioURL,
			ContextVocabulary: vocabulary,
		},
		Metadata: meta,
	}
}
