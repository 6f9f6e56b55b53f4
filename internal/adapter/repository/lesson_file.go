package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/eslsoft/learnmode/internal/entity"
	"github.com/eslsoft/learnmode/internal/repository"
)

// FileLessonRepository serves lessons from a directory of YAML or JSON files.
// It is read-only: Upsert and Delete return entity.ErrReadOnlyStore.
type FileLessonRepository struct {
	dir string
	log logrus.FieldLogger

	mu      sync.RWMutex
	lessons map[string]*entity.Lesson
}

var _ repository.LessonRepository = (*FileLessonRepository)(nil)

// NewFileLessonRepository loads every lesson file under dir.
func NewFileLessonRepository(dir string, log logrus.FieldLogger) (*FileLessonRepository, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := &FileLessonRepository{dir: dir, log: log}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload rescans the directory, replacing the loaded lessons only on success.
func (r *FileLessonRepository) Reload() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("read lesson dir: %w", err)
	}

	lessons := make(map[string]*entity.Lesson, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsLessonFile(entry.Name()) {
			continue
		}
		path := filepath.Join(r.dir, entry.Name())
		lesson, err := LoadLessonFile(path)
		if err != nil {
			return err
		}
		if _, dup := lessons[lesson.ID]; dup {
			return fmt.Errorf("load lesson %s: duplicate lesson id %q", path, lesson.ID)
		}
		lessons[lesson.ID] = lesson
	}

	r.mu.Lock()
	r.lessons = lessons
	r.mu.Unlock()

	r.log.WithFields(logrus.Fields{"dir": r.dir, "lessons": len(lessons)}).Info("lesson files loaded")
	return nil
}

// IsLessonFile reports whether name has a lesson file extension.
func IsLessonFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

// LoadLessonFile decodes and validates a single YAML or JSON lesson file.
// Missing timestamps default to the file's modification time.
func LoadLessonFile(path string) (*entity.Lesson, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load lesson %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load lesson %s: %w", path, err)
	}

	var lesson entity.Lesson
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &lesson)
	default:
		err = yaml.Unmarshal(data, &lesson)
	}
	if err != nil {
		return nil, fmt.Errorf("load lesson %s: %w", path, err)
	}

	modTime := info.ModTime().UTC()
	createdAt, updatedAt := lesson.CreatedAt, lesson.UpdatedAt
	lesson.Normalize(modTime)
	if !updatedAt.IsZero() {
		lesson.UpdatedAt = updatedAt
	}
	if createdAt.IsZero() && !updatedAt.IsZero() {
		lesson.CreatedAt = updatedAt
	}
	if err := lesson.Validate(); err != nil {
		return nil, fmt.Errorf("load lesson %s: %w", path, err)
	}
	return &lesson, nil
}

func (r *FileLessonRepository) FetchLessonContent(ctx context.Context, id string) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	lesson, ok := r.lessons[id]
	if !ok {
		return nil, entity.ErrLessonNotFound
	}
	out := *lesson
	return &out, nil
}

func (r *FileLessonRepository) List(ctx context.Context, query *repository.ListLessonQuery) ([]entity.LessonSummary, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	params, err := bindListLessons(query)
	if err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	matched := make([]*entity.Lesson, 0, len(r.lessons))
	for _, l := range r.lessons {
		if params.match(l) {
			matched = append(matched, l)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	params.sortLessons(matched)

	total := int64(len(matched))
	start, end := query.Window(len(matched))

	summaries := make([]entity.LessonSummary, 0, end-start)
	for _, l := range matched[start:end] {
		summaries = append(summaries, l.Summary())
	}
	return summaries, total, nil
}

func (r *FileLessonRepository) Upsert(context.Context, *entity.Lesson) (*entity.Lesson, error) {
	return nil, entity.ErrReadOnlyStore
}

func (r *FileLessonRepository) Delete(context.Context, string) error {
	return entity.ErrReadOnlyStore
}
