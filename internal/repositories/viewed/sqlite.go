package viewed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/orgball2608/story-viewer/pkg/logger"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type SqliteRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSqliteRepository(db *sql.DB, logger logger.Logger) *SqliteRepository {
	return &SqliteRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SqliteRepository) MarkViewed(ctx context.Context, storyID string, at time.Time) error {
	query, args, err := builder.
		Insert("viewed_stories").
		Columns("story_id", "viewed_at").
		Values(storyID, at.UTC()).
		Suffix("ON CONFLICT(story_id) DO UPDATE SET viewed_at = excluded.viewed_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark viewed query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %v", ErrCannotCreate, err)
	}
	return nil
}

func (r *SqliteRepository) FilterViewed(ctx context.Context, storyIDs []string) (map[string]bool, error) {
	seen := make(map[string]bool, len(storyIDs))
	if len(storyIDs) == 0 {
		return seen, nil
	}

	ids := make([]any, 0, len(storyIDs))
	for _, id := range storyIDs {
		ids = append(ids, id)
	}

	query, args, err := builder.
		Select("story_id").
		From("viewed_stories").
		Where(sq.Eq{"story_id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter viewed query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query viewed stories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan viewed story row: %w", err)
		}
		seen[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating viewed story rows: %w", err)
	}
	return seen, nil
}

func (r *SqliteRepository) CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	query, args, err := builder.
		Delete("viewed_stories").
		Where(sq.Lt{"viewed_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build cleanup query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up viewed stories: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted rows: %w", err)
	}
	return deleted, nil
}

var _ Repository = (*SqliteRepository)(nil)
