package repository

import (
	"sort"
	"strings"
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/samber/lo"

	"github.com/eslsoft/learnmode/internal/entity"
	"github.com/eslsoft/learnmode/internal/infrastructure/database"
	"github.com/eslsoft/learnmode/internal/repository"
	"github.com/eslsoft/learnmode/pkg/filterexpr"
)

var lessonOrderColumns = map[string]string{
	"created_at": database.LessonColumnCreatedAt,
	"updated_at": database.LessonColumnUpdatedAt,
	"title":      database.LessonColumnTitle,
	"id":         database.LessonColumnID,
}

var listLessonsSchema = filterexpr.Schema{
	Fields: map[string]filterexpr.Field{
		"keyword":    {Kind: filterexpr.KindString, Ops: []filterexpr.Op{filterexpr.OpEQ}},
		"level":      {Kind: filterexpr.KindString, Ops: []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpIN}},
		"title":      {Kind: filterexpr.KindString, Ops: []filterexpr.Op{filterexpr.OpSW}},
		"created_at": {Kind: filterexpr.KindTimestamp, Ops: []filterexpr.Op{filterexpr.OpGTE, filterexpr.OpLTE}},
	},
	OrderKeys:    []string{"created_at", "updated_at", "title", "id"},
	DefaultOrder: []filterexpr.Term{{Key: "created_at", Desc: true}},
	TieBreaker:   "id",
}

type listLessonsParams struct {
	Keyword     string
	Levels      []string
	TitlePrefix string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Order       []filterexpr.Term
}

// bindListLessons parses the filter and order_by of query into params
// shared by the SQL and file stores.
func bindListLessons(query *repository.ListLessonQuery) (listLessonsParams, error) {
	q, err := filterexpr.Parse(query, listLessonsSchema)
	if err != nil {
		return listLessonsParams{}, err
	}

	p := listLessonsParams{Order: q.Order}
	for _, c := range q.Conditions {
		switch c.Field {
		case "keyword":
			p.Keyword = c.Text()
		case "level":
			if c.Op == filterexpr.OpIN {
				p.Levels = append(p.Levels, c.List()...)
			} else {
				p.Levels = append(p.Levels, c.Text())
			}
		case "title":
			p.TitlePrefix = c.Text()
		case "created_at":
			t := c.Time()
			if c.Op == filterexpr.OpGTE {
				p.CreatedFrom = &t
			} else {
				p.CreatedTo = &t
			}
		}
	}
	return p, nil
}

func (p listLessonsParams) levels() []string {
	levels := lo.Map(p.Levels, func(l string, _ int) string { return strings.ToLower(strings.TrimSpace(l)) })
	return lo.Uniq(lo.Compact(levels))
}

// predicates renders the filter as SQL predicates.
func (p listLessonsParams) predicates() []*sql.Predicate {
	var preds []*sql.Predicate
	if kw := strings.TrimSpace(p.Keyword); kw != "" {
		preds = append(preds, sql.Or(
			sql.ContainsFold(database.LessonColumnTitle, kw),
			sql.ContainsFold(database.LessonColumnDescription, kw),
		))
	}
	if levels := p.levels(); len(levels) > 0 {
		preds = append(preds, sql.In(database.LessonColumnLevel, lo.ToAnySlice(levels)...))
	}
	if p.TitlePrefix != "" {
		preds = append(preds, sql.HasPrefix(database.LessonColumnTitle, p.TitlePrefix))
	}
	if p.CreatedFrom != nil {
		preds = append(preds, sql.GTE(database.LessonColumnCreatedAt, *p.CreatedFrom))
	}
	if p.CreatedTo != nil {
		preds = append(preds, sql.LTE(database.LessonColumnCreatedAt, *p.CreatedTo))
	}
	return preds
}

// match applies the same filter to an in-memory lesson.
func (p listLessonsParams) match(l *entity.Lesson) bool {
	if kw := strings.ToLower(strings.TrimSpace(p.Keyword)); kw != "" {
		if !strings.Contains(strings.ToLower(l.Title), kw) && !strings.Contains(strings.ToLower(l.Description), kw) {
			return false
		}
	}
	if levels := p.levels(); len(levels) > 0 && !lo.Contains(levels, string(l.Level)) {
		return false
	}
	if p.TitlePrefix != "" && !strings.HasPrefix(l.Title, p.TitlePrefix) {
		return false
	}
	if p.CreatedFrom != nil && l.CreatedAt.Before(*p.CreatedFrom) {
		return false
	}
	if p.CreatedTo != nil && l.CreatedAt.After(*p.CreatedTo) {
		return false
	}
	return true
}

// sortLessons orders lessons in memory by the bound order terms, then by id.
func (p listLessonsParams) sortLessons(lessons []*entity.Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		a, b := lessons[i], lessons[j]
		for _, t := range p.Order {
			c := compareLessons(a, b, t.Key)
			if c == 0 {
				continue
			}
			if t.Desc {
				return c > 0
			}
			return c < 0
		}
		return a.ID < b.ID
	})
}

func compareLessons(a, b *entity.Lesson, key string) int {
	switch key {
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updated_at":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "id":
		return strings.Compare(a.ID, b.ID)
	default:
		return 0
	}
}

func orderColumn(key string) (string, bool) {
	col, ok := lessonOrderColumns[key]
	return col, ok
}
