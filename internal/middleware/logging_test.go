package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func loggedRouter() (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})
	return router, logs
}

func perform(router *gin.Engine, target string) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
}

func fieldMap(entry observer.LoggedEntry) map[string]interface{} {
	out := make(map[string]interface{})
	for _, f := range entry.Context {
		switch f.Type {
		case zapcore.StringType:
			out[f.Key] = f.String
		case zapcore.Int64Type:
			out[f.Key] = f.Integer
		}
	}
	return out
}

func TestRequestLoggerLevelsFollowStatusClass(t *testing.T) {
	router, logs := loggedRouter()

	perform(router, "/ok")
	perform(router, "/missing")
	perform(router, "/boom")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestRequestLoggerIncludesQueryAndErrors(t *testing.T) {
	router, logs := loggedRouter()

	perform(router, "/boom?source=checkout")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := fieldMap(entries[0])
	assert.Equal(t, "source=checkout", fields["query"])
	assert.Contains(t, fields["errors"], assert.AnError.Error())
	assert.Equal(t, "/boom", fields["path"])
}

func TestRequestLoggerOmitsEmptyQuery(t *testing.T) {
	router, logs := loggedRouter()

	perform(router, "/ok")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := fieldMap(entries[0])
	_, hasQuery := fields["query"]
	assert.False(t, hasQuery)
}
