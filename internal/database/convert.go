// internal/database/convert.go
package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Helpers for moving between Go values and pgtype's nullable wrappers.

func Text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func Bool(b bool) pgtype.Bool {
	return pgtype.Bool{Bool: b, Valid: true}
}

func Timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t.UTC(), Valid: !t.IsZero()}
}

func TimestamptzPtr(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return Timestamptz(*t)
}

func Int8(v int64, ok bool) pgtype.Int8 {
	return pgtype.Int8{Int64: v, Valid: ok}
}

// TimePtr returns nil for a NULL timestamp.
func TimePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time.UTC()
	return &t
}
