package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dropDatabas3/bestseller/internal/observability/logger"
)

func TestLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core))

	Log(ctx, EventUserDeleted, "admin@x.com", logger.UserID("abc"))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		e := entries[0]
		assert.Equal(t, "audit", e.LoggerName)
		fields := e.ContextMap()
		assert.Equal(t, EventUserDeleted, fields["event"])
		assert.Equal(t, "admin@x.com", fields["actor"])
		assert.Equal(t, "abc", fields["user_id"])
	}
}
