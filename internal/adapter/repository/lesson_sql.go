package repository

import (
	"context"
	stdsql "database/sql"
	"encoding/json"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"
	"github.com/samber/lo"

	"github.com/eslsoft/learnmode/internal/entity"
	"github.com/eslsoft/learnmode/internal/infrastructure/database"
	"github.com/eslsoft/learnmode/internal/repository"
)

// SQLLessonRepository stores lessons in the lessons table through ent's SQL builder.
type SQLLessonRepository struct {
	drv dialect.Driver
}

// NewSQLLessonRepository constructs a repository on top of an ent dialect driver.
func NewSQLLessonRepository(drv dialect.Driver) *SQLLessonRepository {
	return &SQLLessonRepository{drv: drv}
}

var _ repository.LessonRepository = (*SQLLessonRepository)(nil)

func (r *SQLLessonRepository) builder() *sql.DialectBuilder {
	return sql.Dialect(r.drv.Dialect())
}

func (r *SQLLessonRepository) FetchLessonContent(ctx context.Context, id string) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query, args := r.builder().
		Select(database.LessonColumns...).
		From(sql.Table(database.LessonsTable)).
		Where(sql.EQ(database.LessonColumnID, id)).
		Limit(1).
		Query()

	lessons, err := r.queryLessons(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	if len(lessons) == 0 {
		return nil, entity.ErrLessonNotFound
	}
	return lessons[0], nil
}

func (r *SQLLessonRepository) List(ctx context.Context, query *repository.ListLessonQuery) ([]entity.LessonSummary, int64, error) {
	params, err := bindListLessons(query)
	if err != nil {
		return nil, 0, err
	}
	preds := params.predicates()

	countSel := r.builder().Select(sql.Count("*")).From(sql.Table(database.LessonsTable))
	if len(preds) > 0 {
		countSel.Where(sql.And(preds...))
	}
	countQuery, countArgs := countSel.Query()
	total, err := r.count(ctx, countQuery, countArgs)
	if err != nil {
		return nil, 0, fmt.Errorf("count lessons: %w", err)
	}

	sel := r.builder().Select(database.LessonColumns...).From(sql.Table(database.LessonsTable))
	if len(preds) > 0 {
		sel.Where(sql.And(preds...))
	}
	for _, term := range params.Order {
		col, ok := orderColumn(term.Key)
		if !ok {
			continue
		}
		if term.Desc {
			sel.OrderBy(sql.Desc(sel.C(col)))
		} else {
			sel.OrderBy(sql.Asc(sel.C(col)))
		}
	}
	if offset := query.Offset(); offset > 0 {
		sel.Offset(int(offset))
	}
	if query.PageSize > 0 {
		sel.Limit(int(query.PageSize))
	}

	listQuery, listArgs := sel.Query()
	lessons, err := r.queryLessons(ctx, listQuery, listArgs)
	if err != nil {
		return nil, 0, fmt.Errorf("list lessons: %w", err)
	}

	summaries := make([]entity.LessonSummary, 0, len(lessons))
	for _, l := range lessons {
		summaries = append(summaries, l.Summary())
	}
	return summaries, total, nil
}

func (r *SQLLessonRepository) Upsert(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tags, err := json.Marshal(lo.Ternary(lesson.Tags == nil, []string{}, lesson.Tags))
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	blocks, err := json.Marshal(lesson.ContentBlocks)
	if err != nil {
		return nil, fmt.Errorf("encode content blocks: %w", err)
	}
	pairs, err := json.Marshal(lesson.SentencePairs)
	if err != nil {
		return nil, fmt.Errorf("encode sentence pairs: %w", err)
	}

	query, args := r.builder().
		Insert(database.LessonsTable).
		Columns(database.LessonColumns...).
		Values(
			lesson.ID,
			lesson.Title,
			lesson.Description,
			string(lesson.Level),
			string(tags),
			string(blocks),
			string(pairs),
			lesson.CreatedAt.UTC(),
			lesson.UpdatedAt.UTC(),
		).
		OnConflict(
			sql.ConflictColumns(database.LessonColumnID),
			sql.ResolveWith(func(u *sql.UpdateSet) {
				for _, col := range database.LessonColumns {
					if col == database.LessonColumnID || col == database.LessonColumnCreatedAt {
						continue
					}
					u.SetExcluded(col)
				}
			}),
		).
		Query()

	var res stdsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return nil, fmt.Errorf("upsert lesson: %w", err)
	}
	return r.FetchLessonContent(ctx, lesson.ID)
}

func (r *SQLLessonRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	query, args := r.builder().
		Delete(database.LessonsTable).
		Where(sql.EQ(database.LessonColumnID, id)).
		Query()

	var res stdsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if affected == 0 {
		return entity.ErrLessonNotFound
	}
	return nil
}

func (r *SQLLessonRepository) count(ctx context.Context, query string, args []any) (int64, error) {
	rows := &sql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return 0, err
	}
	defer rows.Close()

	var total int64
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			return 0, err
		}
	}
	return total, rows.Err()
}

func (r *SQLLessonRepository) queryLessons(ctx context.Context, query string, args []any) ([]*entity.Lesson, error) {
	rows := &sql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []*entity.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}
	return lessons, rows.Err()
}

func scanLesson(rows *sql.Rows) (*entity.Lesson, error) {
	var (
		lesson               entity.Lesson
		level                string
		tags, blocks, pairs  []byte
		createdAt, updatedAt stdsql.NullTime
	)
	if err := rows.Scan(
		&lesson.ID,
		&lesson.Title,
		&lesson.Description,
		&level,
		&tags,
		&blocks,
		&pairs,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan lesson: %w", err)
	}

	lesson.Level = entity.ParseLevel(level)
	lesson.CreatedAt = createdAt.Time
	lesson.UpdatedAt = updatedAt.Time
	if err := decodeJSONColumn(tags, &lesson.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of lesson %q: %w", lesson.ID, err)
	}
	if err := decodeJSONColumn(blocks, &lesson.ContentBlocks); err != nil {
		return nil, fmt.Errorf("decode content blocks of lesson %q: %w", lesson.ID, err)
	}
	if err := decodeJSONColumn(pairs, &lesson.SentencePairs); err != nil {
		return nil, fmt.Errorf("decode sentence pairs of lesson %q: %w", lesson.ID, err)
	}
	if lesson.ContentBlocks == nil {
		lesson.ContentBlocks = []entity.ContentBlock{}
	}
	return &lesson, nil
}

func decodeJSONColumn(data []byte, v any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, v)
}
