package progress

import (
	"io"

	"github.com/gin-gonic/gin"
)

// Handler streams progress events to clients over server-sent events.
type Handler struct {
	Notifier *Notifier
}

// NewHandler constructs a Handler.
func NewHandler(n *Notifier) *Handler {
	return &Handler{Notifier: n}
}

// RegisterRoutes attaches the progress stream route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents/:id/progress", h.stream)
}

func (h *Handler) stream(c *gin.Context) {
	documentID := c.Param("id")

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	events := h.Notifier.Subscribe(c.Request.Context(), documentID)

	c.Stream(func(w io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent("message", ev)
		return true
	})
}
