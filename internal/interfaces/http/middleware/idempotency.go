package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"producer-payout.backend/pkg/logger"
	"producer-payout.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	idempotencyHitHeader = "X-Idempotency-Hit"
	idempotencyConflict  = "ERR_IDEMPOTENCY_CONFLICT"
)

// ResponseStore keeps replayable responses
type ResponseStore interface {
	Lookup(ctx context.Context, key string) (*redis.StoredResponse, error)
	Acquire(ctx context.Context, key string, lockFor time.Duration) (bool, error)
	Save(ctx context.Context, key string, resp *redis.StoredResponse, retention time.Duration) error
	Release(ctx context.Context, key string) error
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored 2xx response for a repeated
// Idempotency-Key on the same route. Requests without the header pass through.
func IdempotencyMiddleware(store ResponseStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		operator, _ := GetOperator(c)
		storageKey := c.Request.Method + ":" + c.FullPath() + ":" + operator + ":" + key
		ctx := c.Request.Context()

		stored, err := store.Lookup(ctx, storageKey)
		switch {
		case errors.Is(err, redis.ErrInFlight):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "Request already in progress",
				"code":  idempotencyConflict,
			})
			return
		case err != nil:
			// store unavailable: process without deduplication
			logger.Warn(ctx, "Idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		case stored != nil:
			c.Header(idempotencyHitHeader, "true")
			c.Data(stored.Status, stored.ContentType, stored.Body)
			c.Abort()
			return
		}

		acquired, err := store.Acquire(ctx, storageKey, LockDuration)
		if err != nil || !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "Request already in progress",
				"code":  idempotencyConflict,
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			resp := &redis.StoredResponse{
				Status:      status,
				ContentType: c.Writer.Header().Get("Content-Type"),
				Body:        w.body.Bytes(),
			}
			if err := store.Save(ctx, storageKey, resp, RetentionDuration); err != nil {
				logger.Error(ctx, "Failed to store idempotent response", zap.Error(err))
			}
			return
		}
		// allow the client to retry after a failure
		if err := store.Release(ctx, storageKey); err != nil {
			logger.Error(ctx, "Failed to release idempotency key", zap.Error(err))
		}
	}
}
