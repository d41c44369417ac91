package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"TrendsReporter/internal/domain"
	"TrendsReporter/internal/ports"
)

// PostgresRepository persists report runs and curated articles.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.CurationRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// AlreadyReported returns the subset of URLs that appeared in prior runs.
func (r *PostgresRepository) AlreadyReported(ctx context.Context, urls []string) (map[string]bool, error) {
	if r.db == nil || len(urls) == 0 {
		return map[string]bool{}, nil
	}

	query, args, err := r.builder.
		Select("url").
		From("curated_articles").
		Where(sq.Expr("url = ANY(?)", pq.StringArray(urls))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build reported query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reported: %w", err)
	}

	result := make(map[string]bool)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan url: %w", err)
		}
		result[url] = true
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

// SaveRun stores the run header and upserts every curated article in
// one transaction.
func (r *PostgresRepository) SaveRun(ctx context.Context, run domain.ReportRun) error {
	if r.db == nil {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertRun := r.builder.
		Insert("report_runs").
		Columns("id", "generated_at", "date_range", "export_path",
			"input_count", "kept_count", "improved_count").
		Values(run.ID, run.GeneratedAt, run.DateRange, run.ExportPath,
			run.Stats.Input, run.Stats.Kept, run.Stats.Improved)

	query, args, err := insertRun.ToSql()
	if err != nil {
		return fmt.Errorf("build run insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, group := range run.Groups {
		insertArticle := r.builder.
			Insert("curated_articles").
			Columns("run_id", "url", "title", "source_domain", "category",
				"url_quality", "cross_source_count", "editorial_score",
				"popularity_score", "combined_score").
			Values(run.ID, group.URL, group.Title, group.SourceDomain, group.Category,
				string(group.URLQuality), group.CrossSourceCount, group.EditorialScore,
				group.PopularityScore, group.CombinedScore).
			Suffix(`ON CONFLICT (url) DO UPDATE
                    SET run_id = EXCLUDED.run_id,
                        cross_source_count = EXCLUDED.cross_source_count,
                        combined_score = EXCLUDED.combined_score,
                        updated_at = NOW()`)

		query, args, err := insertArticle.ToSql()
		if err != nil {
			return fmt.Errorf("build article insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert article %s: %w", group.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}

	return nil
}
