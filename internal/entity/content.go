package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// BlockKind is the type tag of a content block.
type BlockKind string

const (
	BlockKindHeading   BlockKind = "heading"
	BlockKindParagraph BlockKind = "paragraph"
	BlockKindDialog    BlockKind = "dialog"
	BlockKindSentences BlockKind = "sentences"
)

// ContentBlock is one structural unit of lesson content.
// Body holds exactly one of HeadingBlock, ParagraphBlock, DialogBlock,
// SentencesBlock or UnknownBlock.
type ContentBlock struct {
	ID    string
	Order int
	Body  BlockBody
}

// BlockBody is implemented only by the block variants in this package.
type BlockBody interface {
	Kind() BlockKind
	isBlockBody()
}

type HeadingBlock struct {
	Text  string `json:"text" yaml:"text"`
	Level int    `json:"level" yaml:"level"`
}

type ParagraphBlock struct {
	English string `json:"english" yaml:"english"`
	Chinese string `json:"chinese" yaml:"chinese"`
	Pinyin  string `json:"pinyin,omitempty" yaml:"pinyin,omitempty"`
}

type Speaker struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type DialogLine struct {
	SpeakerID string `json:"speakerId" yaml:"speakerId"`
	English   string `json:"english" yaml:"english"`
	Chinese   string `json:"chinese" yaml:"chinese"`
	Pinyin    string `json:"pinyin,omitempty" yaml:"pinyin,omitempty"`
	AudioURL  string `json:"audioUrl,omitempty" yaml:"audioUrl,omitempty"`
}

type DialogBlock struct {
	Speakers []Speaker    `json:"speakers" yaml:"speakers"`
	Lines    []DialogLine `json:"lines" yaml:"lines"`
}

// SpeakerName resolves a speaker id to its display name.
func (d DialogBlock) SpeakerName(id string) string {
	for _, s := range d.Speakers {
		if s.ID == id {
			return s.Name
		}
	}
	return ""
}

// SentencesBlock embeds pre-extracted sentence pairs.
type SentencesBlock struct {
	Pairs []SentencePair `json:"pairs" yaml:"pairs"`
}

// UnknownBlock keeps a block whose type tag this build does not recognise.
type UnknownBlock struct {
	Type string
	Raw  json.RawMessage
}

func (HeadingBlock) Kind() BlockKind   { return BlockKindHeading }
func (ParagraphBlock) Kind() BlockKind { return BlockKindParagraph }
func (DialogBlock) Kind() BlockKind    { return BlockKindDialog }
func (SentencesBlock) Kind() BlockKind { return BlockKindSentences }
func (u UnknownBlock) Kind() BlockKind { return BlockKind(u.Type) }

func (HeadingBlock) isBlockBody()   {}
func (ParagraphBlock) isBlockBody() {}
func (DialogBlock) isBlockBody()    {}
func (SentencesBlock) isBlockBody() {}
func (UnknownBlock) isBlockBody()   {}

// Kind returns the block's type tag, or "" when the body is missing.
func (b ContentBlock) Kind() BlockKind {
	if b.Body == nil {
		return ""
	}
	return b.Body.Kind()
}

type blockEnvelope struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Order   int             `json:"order"`
	Content json.RawMessage `json:"content,omitempty"`
}

// MarshalJSON encodes the block as {"id","type","order","content"}.
func (b ContentBlock) MarshalJSON() ([]byte, error) {
	env := blockEnvelope{ID: b.ID, Order: b.Order, Type: string(b.Kind())}
	switch body := b.Body.(type) {
	case nil:
	case UnknownBlock:
		env.Content = body.Raw
	default:
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s block %q: %w", env.Type, b.ID, err)
		}
		env.Content = raw
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes a block envelope. Unrecognised types decode to UnknownBlock.
func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var env blockEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	b.ID = env.ID
	b.Order = env.Order

	body, err := newBlockBody(env.Type)
	if err != nil {
		b.Body = UnknownBlock{Type: env.Type, Raw: env.Content}
		return nil
	}
	if len(env.Content) > 0 && string(env.Content) != "null" {
		if err := json.Unmarshal(env.Content, body); err != nil {
			return fmt.Errorf("decode %s block %q: %w", env.Type, env.ID, err)
		}
	}
	b.Body = derefBody(body)
	return nil
}

type yamlBlockEnvelope struct {
	ID      string    `yaml:"id"`
	Type    string    `yaml:"type"`
	Order   int       `yaml:"order"`
	Content yaml.Node `yaml:"content"`
}

// UnmarshalYAML decodes the same envelope shape as UnmarshalJSON.
func (b *ContentBlock) UnmarshalYAML(value *yaml.Node) error {
	var env yamlBlockEnvelope
	if err := value.Decode(&env); err != nil {
		return err
	}
	b.ID = env.ID
	b.Order = env.Order

	body, err := newBlockBody(env.Type)
	if err != nil {
		var content any
		if env.Content.Kind != 0 {
			if err := env.Content.Decode(&content); err != nil {
				return fmt.Errorf("decode %s block %q: %w", env.Type, env.ID, err)
			}
		}
		raw, _ := json.Marshal(content)
		b.Body = UnknownBlock{Type: env.Type, Raw: raw}
		return nil
	}
	if env.Content.Kind != 0 {
		if err := env.Content.Decode(body); err != nil {
			return fmt.Errorf("decode %s block %q: %w", env.Type, env.ID, err)
		}
	}
	b.Body = derefBody(body)
	return nil
}

func newBlockBody(kind string) (any, error) {
	switch BlockKind(strings.TrimSpace(kind)) {
	case BlockKindHeading:
		return &HeadingBlock{}, nil
	case BlockKindParagraph:
		return &ParagraphBlock{}, nil
	case BlockKindDialog:
		return &DialogBlock{}, nil
	case BlockKindSentences:
		return &SentencesBlock{}, nil
	default:
		return nil, fmt.Errorf("unknown block type %q", kind)
	}
}

func derefBody(body any) BlockBody {
	switch v := body.(type) {
	case *HeadingBlock:
		return *v
	case *ParagraphBlock:
		return *v
	case *DialogBlock:
		return *v
	case *SentencesBlock:
		return *v
	default:
		return nil
	}
}
