package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const idempotencyKeyHeader = "Idempotency-Key"

// bodyRecorder tees the response body so a successful mutation can be cached
// against its idempotency key.
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the cached response for a repeated Idempotency-Key, so
// blind client retries cannot apply a mutation twice. Keys are scoped to the
// authenticated caller. Only 2xx responses are cached; a failed request may be
// retried with the same key.
//
// The cache is best-effort: two requests racing on the same key can both miss
// the lookup and both reach the handler. The unique (reference, account_id)
// index on transactions is what actually blocks a double-apply; this layer
// only short-circuits the common sequential-retry case.
func Idempotency(dbPool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())
		actorID, _ := GetUserIDFromContext(c)

		var status int
		var body []byte
		err := dbPool.QueryRow(c.Request.Context(),
			`SELECT response_status, response_body FROM idempotency_keys WHERE key_id = $1 AND actor_id = $2`,
			key, actorID,
		).Scan(&status, &body)
		switch {
		case err == nil:
			logger.Info("Replaying cached response for idempotency key", slog.String("key", key))
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(status, "application/json", body)
			c.Abort()
			return
		case !errors.Is(err, pgx.ErrNoRows):
			logger.Error("Idempotency key lookup failed", slog.String("key", key), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		statusCode := recorder.Status()
		if statusCode < 200 || statusCode >= 300 {
			return
		}

		_, insertErr := dbPool.Exec(c.Request.Context(),
			`INSERT INTO idempotency_keys (key_id, actor_id, response_status, response_body) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
			key, actorID, statusCode, recorder.body.Bytes(),
		)
		if insertErr != nil {
			logger.Error("Failed to save idempotency key", slog.String("key", key), slog.String("error", insertErr.Error()))
		}
	}
}
