package backup

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"entgo.io/ent/dialect/sql/schema"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/learnmode/internal/entity"
	"github.com/eslsoft/learnmode/internal/infrastructure/database"
	"github.com/eslsoft/learnmode/internal/repository"
)

const (
	defaultBatchSize = 100
	formatVersion    = 1

	recordTypeMeta   = "meta"
	recordTypeLesson = "lesson"
)

type ProgressReporter interface {
	Start(total int)
	Increment(delta int)
	Finish()
}

type noopProgress struct{}

func (noopProgress) Start(int)     {}
func (noopProgress) Increment(int) {}
func (noopProgress) Finish()       {}

// Service streams the lesson catalog to and from NDJSON backups.
type Service struct {
	repo       repository.LessonRepository
	log        logrus.FieldLogger
	batchSize  int32
	schemaHash string
	now        func() time.Time
}

type Option func(*Service)

func WithBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.batchSize = int32(min(size, 10000))
		}
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService constructs a backup service over the given lesson repository.
func NewService(repo repository.LessonRepository, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, errors.New("backup: lesson repository is required")
	}
	svc := &Service{
		repo:       repo,
		log:        logrus.StandardLogger(),
		batchSize:  defaultBatchSize,
		schemaHash: computeSchemaHash(database.Tables),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

type ExportOption func(*exportConfig)

type exportConfig struct {
	filter   string
	reporter ProgressReporter
}

// WithFilter restricts the export to lessons matching a list filter expression.
func WithFilter(filter string) ExportOption {
	return func(cfg *exportConfig) {
		cfg.filter = strings.TrimSpace(filter)
	}
}

// WithProgressReporter registers a reporter that receives progress callbacks during export.
func WithProgressReporter(reporter ProgressReporter) ExportOption {
	return func(cfg *exportConfig) {
		cfg.reporter = reporter
	}
}

type ImportOption func(*importConfig)

type importConfig struct {
	dryRun bool
}

// WithDryRun decodes and validates every record without writing.
func WithDryRun() ImportOption {
	return func(cfg *importConfig) {
		cfg.dryRun = true
	}
}

type record struct {
	Type       string         `json:"type"`
	Version    int            `json:"version,omitempty"`
	ExportedAt *time.Time     `json:"exported_at,omitempty"`
	SchemaHash string         `json:"schema_hash,omitempty"`
	Count      int            `json:"count,omitempty"`
	Payload    *entity.Lesson `json:"payload,omitempty"`
}

type rawRecord struct {
	Type       string          `json:"type"`
	Version    int             `json:"version"`
	ExportedAt *time.Time      `json:"exported_at"`
	SchemaHash string          `json:"schema_hash"`
	Count      int             `json:"count"`
	Payload    json.RawMessage `json:"payload"`
}

// ImportResult reports what an import did.
type ImportResult struct {
	Imported int
	Meta     Meta
}

// Meta is the header record of a backup.
type Meta struct {
	Version    int
	ExportedAt time.Time
	SchemaHash string
	Count      int
}

// Export writes a meta record followed by one lesson record per line.
func (s *Service) Export(ctx context.Context, w io.Writer, opts ...ExportOption) error {
	cfg := exportConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	reporter := cfg.reporter
	if reporter == nil {
		reporter = noopProgress{}
	}

	page := func(pageNo int32) ([]entity.LessonSummary, int64, error) {
		return s.repo.List(ctx, &repository.ListLessonQuery{
			Pagination:  repository.Pagination{PageNo: pageNo, PageSize: s.batchSize},
			FilterOrder: repository.FilterOrder{Filter: cfg.filter, OrderBy: "id asc"},
		})
	}

	first, total, err := page(1)
	if err != nil {
		return fmt.Errorf("list lessons: %w", err)
	}

	writer := bufio.NewWriter(w)
	defer writer.Flush()

	now := s.now().UTC()
	meta := record{
		Type:       recordTypeMeta,
		Version:    formatVersion,
		ExportedAt: &now,
		SchemaHash: s.schemaHash,
		Count:      int(total),
	}
	if err := writeRecord(writer, meta); err != nil {
		return err
	}

	reporter.Start(int(total))
	summaries := first
	for pageNo := int32(1); len(summaries) > 0; {
		for _, summary := range summaries {
			lesson, err := s.repo.FetchLessonContent(ctx, summary.ID)
			if err != nil {
				return fmt.Errorf("fetch lesson %s: %w", summary.ID, err)
			}
			if err := writeRecord(writer, record{Type: recordTypeLesson, Payload: lesson}); err != nil {
				return err
			}
			reporter.Increment(1)
		}
		if int32(len(summaries)) < s.batchSize {
			break
		}
		pageNo++
		if summaries, _, err = page(pageNo); err != nil {
			return fmt.Errorf("list lessons: %w", err)
		}
	}
	reporter.Finish()
	return writer.Flush()
}

// Import reads a backup produced by Export and upserts every lesson. The
// meta record must come first.
func (s *Service) Import(ctx context.Context, r io.Reader, opts ...ImportOption) (*ImportResult, error) {
	cfg := importConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	br := bufio.NewReader(r)
	var (
		metaSeen bool
		result   ImportResult
		lineNo   int
	)

	for {
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read backup: %w", err)
		}
		lineNo++
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			var rec rawRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				return nil, fmt.Errorf("decode record on line %d: %w", lineNo, err)
			}

			switch rec.Type {
			case recordTypeMeta:
				if rec.Version != formatVersion {
					return nil, fmt.Errorf("%w: version %d", entity.ErrUnsupportedBackup, rec.Version)
				}
				if rec.SchemaHash != "" && rec.SchemaHash != s.schemaHash {
					s.log.WithFields(logrus.Fields{
						"backup_schema": rec.SchemaHash,
						"local_schema":  s.schemaHash,
					}).Warn("backup was taken from a different schema")
				}
				metaSeen = true
				result.Meta = Meta{Version: rec.Version, SchemaHash: rec.SchemaHash, Count: rec.Count}
				if rec.ExportedAt != nil {
					result.Meta.ExportedAt = *rec.ExportedAt
				}
			case recordTypeLesson:
				if !metaSeen {
					return nil, fmt.Errorf("%w: missing meta record", entity.ErrUnsupportedBackup)
				}
				if len(rec.Payload) == 0 {
					return nil, fmt.Errorf("backup: missing payload on line %d", lineNo)
				}
				if err := s.importLesson(ctx, rec.Payload, cfg.dryRun); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				result.Imported++
			default:
				s.log.WithField("type", rec.Type).Warn("unknown backup record skipped")
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}

	if !metaSeen {
		return nil, fmt.Errorf("%w: missing meta record", entity.ErrUnsupportedBackup)
	}
	return &result, nil
}

func (s *Service) importLesson(ctx context.Context, payload json.RawMessage, dryRun bool) error {
	var lesson entity.Lesson
	if err := json.Unmarshal(payload, &lesson); err != nil {
		return fmt.Errorf("decode lesson: %w", err)
	}
	updatedAt := lesson.UpdatedAt
	lesson.Normalize(s.now().UTC())
	if !updatedAt.IsZero() {
		lesson.UpdatedAt = updatedAt
	}
	if err := lesson.Validate(); err != nil {
		return fmt.Errorf("lesson %q: %w", lesson.ID, err)
	}
	if dryRun {
		return nil
	}
	if _, err := s.repo.Upsert(ctx, &lesson); err != nil {
		return fmt.Errorf("upsert lesson %q: %w", lesson.ID, err)
	}
	return nil
}

func computeSchemaHash(tables []*schema.Table) string {
	builder := &strings.Builder{}
	sortedTables := make([]*schema.Table, len(tables))
	copy(sortedTables, tables)
	sort.Slice(sortedTables, func(i, j int) bool { return sortedTables[i].Name < sortedTables[j].Name })

	for _, tbl := range sortedTables {
		builder.WriteString(tbl.Name)
		builder.WriteString("|cols:")
		for _, col := range tbl.Columns {
			fmt.Fprintf(builder, "%s:%d:%t;", col.Name, col.Type, col.Nullable)
		}
		builder.WriteString("|pk:")
		for _, pk := range tbl.PrimaryKey {
			builder.WriteString(pk.Name)
			builder.WriteByte(',')
		}
		builder.WriteByte('\n')
	}
	sum := sha256.Sum256([]byte(builder.String()))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func writeRecord(w io.Writer, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return err
	}
	return nil
}
