package handlers

import (
	"net/http"

	"github.com/concave-dev/crpt/internal/api/dispatch"
	"github.com/concave-dev/crpt/internal/throttle"
	"github.com/gin-gonic/gin"
)

// QueueStatser exposes the dispatcher snapshot
type QueueStatser interface {
	Stats() dispatch.Stats
}

// GateStatser exposes the throttle gate snapshot
type GateStatser interface {
	Stats() throttle.Stats
}

// QueueResponse reports the gateway queue and the throttle gate behind it
type QueueResponse struct {
	Queue dispatch.Stats `json:"queue"`
	Gate  GateView       `json:"gate"`
}

// GateView renders throttle.Stats durations as strings
type GateView struct {
	Waiting     int64  `json:"waiting"`
	InFlight    bool   `json:"in_flight"`
	Completed   uint64 `json:"completed"`
	MinInterval string `json:"min_interval"`
	LastWait    string `json:"last_wait"`
	LastHold    string `json:"last_hold"`
}

// HandleQueue returns queue depth and gate statistics
func HandleQueue(queue QueueStatser, gate GateStatser) gin.HandlerFunc {
	return func(c *gin.Context) {
		g := gate.Stats()
		c.JSON(http.StatusOK, QueueResponse{
			Queue: queue.Stats(),
			Gate: GateView{
				Waiting:     g.Waiting,
				InFlight:    g.InFlight,
				Completed:   g.Completed,
				MinInterval: g.MinInterval.String(),
				LastWait:    g.LastWait.String(),
				LastHold:    g.LastHold.String(),
			},
		})
	}
}
