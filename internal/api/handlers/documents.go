package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/concave-dev/crpt/internal/api/dispatch"
	"github.com/concave-dev/crpt/internal/crpt"
	"github.com/concave-dev/crpt/internal/document"
	"github.com/concave-dev/crpt/internal/logging"
	"github.com/gin-gonic/gin"
)

const (
	// SignatureHeader carries the document signature on gateway requests
	SignatureHeader = "X-Document-Signature"

	// MaxDocumentBytes caps a posted document body
	MaxDocumentBytes = 1 << 20
)

// Enqueuer accepts documents for submission, implemented by dispatch.Dispatcher
type Enqueuer interface {
	Enqueue(ctx context.Context, id string, doc *document.Document, signature string) (<-chan crpt.Result, error)
}

// SubmitResponse reports the registry outcome of one document
type SubmitResponse struct {
	ID             string `json:"id"`
	Outcome        string `json:"outcome"`
	RegistryStatus int    `json:"registry_status,omitempty"`
	RegistryBody   string `json:"registry_body,omitempty"`
	Duration       string `json:"duration"`
	Signed         bool   `json:"signed"`
	Error          string `json:"error,omitempty"`
}

// HandleSubmitDocument validates the posted document, queues it and waits for
// the registry outcome. The request ID set by middleware under requestIDKey
// becomes the job ID.
func HandleSubmitDocument(queue Enqueuer, requestIDKey string, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetString(requestIDKey)

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxDocumentBytes)

		var doc document.Document
		if err := c.ShouldBindJSON(&doc); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{
					"status":  "error",
					"message": "document body too large",
					"limit":   tooLarge.Limit,
				})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "invalid document body",
				"error":   err.Error(),
			})
			return
		}

		if err := doc.Validate(); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status":  "error",
				"message": "document validation failed",
				"error":   err.Error(),
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		results, err := queue.Enqueue(ctx, id, &doc, c.GetHeader(SignatureHeader))
		if err != nil {
			var full *dispatch.QueueFullError
			if errors.As(err, &full) {
				logging.Warn("Rejecting document %s: %v", id, err)
				c.JSON(http.StatusTooManyRequests, gin.H{
					"status":   "error",
					"message":  "document queue full",
					"current":  full.Current,
					"capacity": full.Capacity,
				})
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "error",
				"message": err.Error(),
			})
			return
		}

		select {
		case result := <-results:
			c.JSON(statusForResult(result), SubmitResponse{
				ID:             id,
				Outcome:        string(result.Outcome),
				RegistryStatus: result.StatusCode,
				RegistryBody:   string(result.Body),
				Duration:       result.Duration.String(),
				Signed:         result.Signed,
				Error:          result.ErrorMessage(),
			})
		case <-ctx.Done():
			// Worker still owns the job; it sees the same ctx and gives up
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"status":  "error",
				"id":      id,
				"message": "timed out waiting for registry outcome",
			})
		}
	}
}

// statusForResult maps a submission outcome onto the gateway response status
func statusForResult(r crpt.Result) int {
	switch r.Outcome {
	case crpt.OutcomeSuccess:
		return http.StatusOK
	case crpt.OutcomeEncodingError:
		return http.StatusUnprocessableEntity
	case crpt.OutcomeHTTPError, crpt.OutcomeTransportError:
		return http.StatusBadGateway
	case crpt.OutcomeCanceled:
		if errors.Is(r.Err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
