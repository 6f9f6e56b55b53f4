package database

import (
	"context"
	"fmt"
	"math"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Lesson table layout. Blocks, pairs and tags are stored as JSON documents.
const (
	LessonsTable = "lessons"

	LessonColumnID            = "id"
	LessonColumnTitle         = "title"
	LessonColumnDescription   = "description"
	LessonColumnLevel         = "level"
	LessonColumnTags          = "tags"
	LessonColumnContentBlocks = "content_blocks"
	LessonColumnSentencePairs = "sentence_pairs"
	LessonColumnCreatedAt     = "created_at"
	LessonColumnUpdatedAt     = "updated_at"
)

// LessonColumns lists the lesson columns in scan order.
var LessonColumns = []string{
	LessonColumnID,
	LessonColumnTitle,
	LessonColumnDescription,
	LessonColumnLevel,
	LessonColumnTags,
	LessonColumnContentBlocks,
	LessonColumnSentencePairs,
	LessonColumnCreatedAt,
	LessonColumnUpdatedAt,
}

var jsonb = map[string]string{dialect.Postgres: "jsonb"}

var lessonsColumns = []*schema.Column{
	{Name: LessonColumnID, Type: field.TypeString, Size: 128},
	{Name: LessonColumnTitle, Type: field.TypeString, Size: 512},
	{Name: LessonColumnDescription, Type: field.TypeString, Size: math.MaxInt32, Default: ""},
	{Name: LessonColumnLevel, Type: field.TypeString, Size: 32, Default: ""},
	{Name: LessonColumnTags, Type: field.TypeJSON, SchemaType: jsonb},
	{Name: LessonColumnContentBlocks, Type: field.TypeJSON, SchemaType: jsonb},
	{Name: LessonColumnSentencePairs, Type: field.TypeJSON, SchemaType: jsonb},
	{Name: LessonColumnCreatedAt, Type: field.TypeTime},
	{Name: LessonColumnUpdatedAt, Type: field.TypeTime},
}

var lessonsTable = &schema.Table{
	Name:       LessonsTable,
	Columns:    lessonsColumns,
	PrimaryKey: []*schema.Column{lessonsColumns[0]},
	Indexes: []*schema.Index{
		{Name: "lesson_level", Columns: []*schema.Column{lessonsColumns[3]}},
		{Name: "lesson_created_at", Columns: []*schema.Column{lessonsColumns[7]}},
	},
}

// Tables is every table the application owns.
var Tables = []*schema.Table{lessonsTable}

// Migrate creates or upgrades the application tables.
func Migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv, schema.WithDropColumn(false), schema.WithDropIndex(false))
	if err != nil {
		return fmt.Errorf("prepare migration: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}
