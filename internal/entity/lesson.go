package entity

import (
	"strings"
	"time"
)

// Lesson is a unit of course content as stored by the lesson catalog.
type Lesson struct {
	ID            string         `json:"id" yaml:"id"`
	Title         string         `json:"title" yaml:"title"`
	Description   string         `json:"description" yaml:"description"`
	Level         Level          `json:"level,omitempty" yaml:"level,omitempty"`
	Tags          []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	ContentBlocks []ContentBlock `json:"contentBlocks" yaml:"contentBlocks"`
	// SentencePairs is used when a lesson has no content blocks.
	SentencePairs []SentencePair `json:"sentencePairs,omitempty" yaml:"sentencePairs,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" yaml:"createdAt,omitempty"`
	UpdatedAt     time.Time      `json:"updatedAt" yaml:"updatedAt,omitempty"`
}

// Normalize ensures defaults & constraints before persistence.
func (l *Lesson) Normalize(now time.Time) {
	l.ID = strings.TrimSpace(l.ID)
	l.Title = strings.TrimSpace(l.Title)
	l.Description = strings.TrimSpace(l.Description)
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	if l.ContentBlocks == nil {
		l.ContentBlocks = []ContentBlock{}
	}
	if l.Tags == nil {
		l.Tags = []string{}
	}
}

// Validate checks the lesson before it is stored.
func (l *Lesson) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return ErrInvalidLessonID
	}
	if strings.TrimSpace(l.Title) == "" {
		return ErrInvalidLessonTitle
	}
	seen := make(map[string]struct{}, len(l.ContentBlocks))
	for _, b := range l.ContentBlocks {
		id := strings.TrimSpace(b.ID)
		if id == "" {
			return ErrInvalidContentBlock
		}
		if _, dup := seen[id]; dup {
			return ErrDuplicateContentBlock
		}
		seen[id] = struct{}{}
	}
	return nil
}

// LessonSummary is the catalog view of a lesson, without content.
type LessonSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Level       Level     `json:"level,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	BlockCount  int       `json:"blockCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Summary drops the content of the lesson.
func (l *Lesson) Summary() LessonSummary {
	return LessonSummary{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Level:       l.Level,
		Tags:        l.Tags,
		BlockCount:  len(l.ContentBlocks),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
