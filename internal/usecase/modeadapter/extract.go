package modeadapter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/learnmode/internal/entity"
)

// ParagraphPairID is the pair id assigned to a paragraph block.
func ParagraphPairID(blockID string) string {
	return "pair-" + blockID
}

// DialogPairID is the pair id assigned to the n-th (0-based) line of a dialog block.
func DialogPairID(blockID string, line int) string {
	return fmt.Sprintf("dialog-%s-line-%d", blockID, line)
}

// Extract flattens content blocks into sentence pairs.
//
// Blocks are visited in ascending Order, ties keep their input order. Headings
// produce nothing; unknown or malformed blocks are skipped with a warning. A
// pair whose id was already emitted is dropped so ids stay unique.
func (a *Adapter) Extract(blocks []entity.ContentBlock) []entity.SentencePair {
	pairs := make([]entity.SentencePair, 0, len(blocks))
	walkPairs(blocks,
		func(_ entity.ContentBlock, pair entity.SentencePair) {
			pairs = append(pairs, pair)
		},
		func(block entity.ContentBlock, reason string) {
			a.log.WithFields(logrus.Fields{
				"block_id":   block.ID,
				"block_type": string(block.Kind()),
			}).Warn(reason)
		},
	)
	return pairs
}

// BuildBlockOrigins maps every pair id Extract would emit to its source block.
func BuildBlockOrigins(blocks []entity.ContentBlock) map[string]entity.ContentBlock {
	origins := make(map[string]entity.ContentBlock, len(blocks))
	walkPairs(blocks,
		func(block entity.ContentBlock, pair entity.SentencePair) {
			origins[pair.ID] = block
		},
		nil,
	)
	return origins
}

type emitFunc func(block entity.ContentBlock, pair entity.SentencePair)

type skipFunc func(block entity.ContentBlock, reason string)

// walkPairs is the single id-assignment scheme shared by Extract and BuildBlockOrigins.
func walkPairs(blocks []entity.ContentBlock, emit emitFunc, skip skipFunc) {
	if skip == nil {
		skip = func(entity.ContentBlock, string) {}
	}
	seen := make(map[string]struct{}, len(blocks))
	emitOnce := func(block entity.ContentBlock, pair entity.SentencePair) {
		if _, dup := seen[pair.ID]; dup {
			skip(block, fmt.Sprintf("duplicate sentence pair id %q skipped", pair.ID))
			return
		}
		seen[pair.ID] = struct{}{}
		emit(block, pair)
	}

	for _, block := range orderedBlocks(blocks) {
		if strings.TrimSpace(block.ID) == "" {
			skip(block, "content block without id skipped")
			continue
		}
		switch body := block.Body.(type) {
		case entity.HeadingBlock:
		case entity.ParagraphBlock:
			if isBlankPair(body.English, body.Chinese) {
				skip(block, "empty paragraph skipped")
				continue
			}
			emitOnce(block, entity.SentencePair{
				ID:      ParagraphPairID(block.ID),
				English: body.English,
				Chinese: body.Chinese,
				Pinyin:  body.Pinyin,
			})
		case entity.DialogBlock:
			for i, line := range body.Lines {
				if isBlankPair(line.English, line.Chinese) {
					skip(block, fmt.Sprintf("empty dialog line %d skipped", i))
					continue
				}
				emitOnce(block, entity.SentencePair{
					ID:       DialogPairID(block.ID, i),
					English:  line.English,
					Chinese:  line.Chinese,
					Pinyin:   line.Pinyin,
					AudioURL: line.AudioURL,
					Speaker:  body.SpeakerName(line.SpeakerID),
				})
			}
		case entity.SentencesBlock:
			for _, pair := range body.Pairs {
				if strings.TrimSpace(pair.ID) == "" {
					skip(block, "embedded sentence pair without id skipped")
					continue
				}
				emitOnce(block, pair.Clone())
			}
		case entity.UnknownBlock:
			skip(block, "unknown content block type skipped")
		default:
			skip(block, "content block without body skipped")
		}
	}
}

func orderedBlocks(blocks []entity.ContentBlock) []entity.ContentBlock {
	sorted := make([]entity.ContentBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

func isBlankPair(english, chinese string) bool {
	return strings.TrimSpace(english) == "" && strings.TrimSpace(chinese) == ""
}
