package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateViewedStories, downCreateViewedStories)
}

func upCreateViewedStories(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE viewed_stories (
		story_id TEXT PRIMARY KEY,
		viewed_at TIMESTAMP NOT NULL
	);
	CREATE INDEX idx_viewed_stories_viewed_at ON viewed_stories (viewed_at);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downCreateViewedStories(tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE viewed_stories;
	`)
	if err != nil {
		return err
	}
	return nil
}
