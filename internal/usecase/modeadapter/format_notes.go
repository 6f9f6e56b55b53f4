package modeadapter

import (
	"fmt"
	"strings"

	"github.com/eslsoft/learnmode/internal/entity"
)

func (a *Adapter) formatNotes(pair entity.SentencePair, index int) entity.ModeContentItem {
	keywords := ExtractKeywords(pair.English, a.cfg.KeywordCount)
	return entity.ModeContentItem{
		Type: entity.ItemTypeNoteContent,
		Content: entity.NoteContent{
			Title:   fmt.Sprintf("笔记 %d", index+1),
			Content: pair.English + "\n" + pair.Chinese,
			Sections: []entity.NoteSection{
				{Title: NoteKeywordSectionTitle, Content: strings.Join(keywords, ", ")},
			},
		},
		Metadata: entity.ItemMetadata{
			English:  pair.English,
			Chinese:  pair.Chinese,
			Keywords: keywords,
			AudioURL: pair.AudioURL,
		},
	}
}
