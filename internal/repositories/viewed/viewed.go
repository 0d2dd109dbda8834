package viewed

import (
	"context"
	"errors"
	"time"
)

var ErrCannotCreate = errors.New("error recording viewed story")

//go:generate go run go.uber.org/mock/mockgen -source=viewed.go -destination=mocks/mock.go -package=mocks

// Repository persists which stories this device has already seen, so
// hydration can derive the viewed flags and groups can open at the
// first unseen story. Records are short-lived: stories expire
// server-side within a day, so stale rows are cleaned up on schedule.
type Repository interface {
	MarkViewed(ctx context.Context, storyID string, at time.Time) error
	FilterViewed(ctx context.Context, storyIDs []string) (map[string]bool, error)
	CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error)
}
