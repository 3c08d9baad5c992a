package progress

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// closeNotifyRecorder adds the CloseNotifier method c.Stream expects.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyRecorder() *closeNotifyRecorder {
	return &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool, 1)}
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func (r *closeNotifyRecorder) close() {
	r.closed <- true
}

func TestStreamDeliversEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)

	notifier := NewNotifier()
	handler := NewHandler(notifier)

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/doc-1/progress", nil).WithContext(ctx)
	resp := newCloseNotifyRecorder()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		router.ServeHTTP(resp, req)
	}()

	// Wait for the subscription to register before publishing.
	deadline := time.Now().Add(time.Second)
	for notifier.SubscriberCount("doc-1") == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	notifier.Publish("doc-1", Event{
		Type:       EventTypeUpdate,
		DocumentID: "doc-1",
		Step:       "started",
		Progress:   10,
		Message:    "Summarization started",
	})

	// Give the stream loop a moment to flush, then end the request.
	time.Sleep(50 * time.Millisecond)
	resp.close()
	cancel()
	wg.Wait()

	body := resp.Body.String()
	if !strings.Contains(body, "processing_update") {
		t.Fatalf("stream output missing event type: %q", body)
	}
	if !strings.Contains(body, "started") {
		t.Fatalf("stream output missing step: %q", body)
	}
	if got := resp.Header().Get("Content-Type"); !strings.Contains(got, "text/event-stream") {
		t.Fatalf("Content-Type = %q", got)
	}
}
