package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "SELECT 1", 1 }

	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		elapsed time.Duration
		err     error
		want    string
	}{
		{name: "query error", level: gormlogger.Warn, err: errors.New("boom"), want: "Query failed"},
		{name: "record not found is quiet", level: gormlogger.Warn, err: gorm.ErrRecordNotFound, want: ""},
		{name: "slow query", level: gormlogger.Warn, elapsed: 50 * time.Millisecond, want: "Slow query"},
		{name: "fast query at warn", level: gormlogger.Warn, want: ""},
		{name: "fast query at info", level: gormlogger.Info, want: "Query"},
		{name: "silent", level: gormlogger.Silent, err: errors.New("boom"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewGormLogger(zerolog.New(&buf).Level(zerolog.DebugLevel), 10*time.Millisecond).LogMode(tt.level)

			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), query, tt.err)

			if tt.want == "" {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), `"message":"`+tt.want+`"`)
			assert.Contains(t, buf.String(), "SELECT 1")
		})
	}
}

func TestGormLogger_LogModeCopies(t *testing.T) {
	var buf bytes.Buffer
	base := NewGormLogger(zerolog.New(&buf), time.Second)

	_ = base.LogMode(gormlogger.Silent)
	base.Warn(context.Background(), "pool %s", "exhausted")

	assert.Contains(t, buf.String(), "pool exhausted")
}
