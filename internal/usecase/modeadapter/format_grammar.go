package modeadapter

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/eslsoft/learnmode/internal/entity"
)

var (
	auxiliaryVerbs = lo.Associate([]string{
		"is", "am", "are", "was", "were", "have", "has", "had", "do", "does", "did",
	}, func(w string) (string, struct{}) { return w, struct{}{} })

	prepositions = lo.Associate([]string{
		"in", "on", "at", "to", "for", "with", "from", "by", "of", "about",
		"into", "over", "under", "after", "before", "between", "through", "during",
	}, func(w string) (string, struct{}) { return w, struct{}{} })

	articles = lo.Associate([]string{"a", "an", "the"}, func(w string) (string, struct{}) { return w, struct{}{} })
)

func (a *Adapter) formatGrammar(pair entity.SentencePair, _ int) entity.ModeContentItem {
	parts := TagParts(pair.English)
	return entity.ModeContentItem{
		Type: entity.ItemTypeGrammarAnalysis,
		Content: entity.GrammarContent{
			Sentence:     pair.English,
			Translation:  pair.Chinese,
			Explanation:  explainParts(parts),
			GrammarPoint: GrammarPoint,
			Examples:     []entity.GrammarExample{{English: pair.English, Chinese: pair.Chinese}},
		},
		Metadata: entity.ItemMetadata{
			Structure: GrammarStructure,
			Parts:     parts,
		},
	}
}

// TagParts assigns a rule-based role to every word of an English sentence.
// A capitalised first word is the subject; closed word lists identify
// auxiliary verbs, prepositions and articles; everything else is "other".
func TagParts(sentence string) []entity.GrammarPart {
	var parts []entity.GrammarPart
	for _, t := range tokenize(sentence) {
		if t.word == "" {
			continue
		}
		parts = append(parts, entity.GrammarPart{Text: t.word, Role: roleOf(t.word, len(parts) == 0)})
	}
	return parts
}

func roleOf(word string, first bool) entity.PartRole {
	if first && unicode.IsUpper([]rune(word)[0]) {
		return entity.PartSubject
	}
	lower := strings.ToLower(word)
	if _, ok := auxiliaryVerbs[lower]; ok {
		return entity.PartVerb
	}
	if _, ok := prepositions[lower]; ok {
		return entity.PartPreposition
	}
	if _, ok := articles[lower]; ok {
		return entity.PartArticle
	}
	return entity.PartOther
}

func explainParts(parts []entity.GrammarPart) string {
	count := func(role entity.PartRole) int {
		return lo.CountBy(parts, func(p entity.GrammarPart) bool { return p.Role == role })
	}
	return fmt.Sprintf("这个句子采用“%s”的基本结构，共 %d 个词，其中主语 %d 个、谓语动词 %d 个、介词 %d 个、冠词 %d 个。",
		GrammarStructure, len(parts),
		count(entity.PartSubject), count(entity.PartVerb), count(entity.PartPreposition), count(entity.PartArticle))
}
