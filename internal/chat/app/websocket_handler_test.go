package app

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"drift_chronicles_service/pkg/logger"

	"github.com/gofiber/websocket/v2"
	"github.com/stretchr/testify/assert"
)

// overlapWriter counts frames that enter while another is in flight
type overlapWriter struct {
	inFlight int32
	overlaps int32
	frames   int32
}

func (w *overlapWriter) WriteMessage(mt int, data []byte) error {
	if atomic.AddInt32(&w.inFlight, 1) > 1 {
		atomic.AddInt32(&w.overlaps, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&w.inFlight, -1)
	atomic.AddInt32(&w.frames, 1)
	return nil
}

func TestLockedWriter_SerializesConcurrentFrames(t *testing.T) {
	logger.SetNewNop()
	raw := &overlapWriter{}
	out := &lockedWriter{conn: raw}
	h := NewLiveFeedHandler(nil)

	const writers = 12
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			switch n % 3 {
			case 0:
				// transcript push from the subscription callback
				h.sendResponse(out, WSResponse{Action: "transcript", Success: true})
			case 1:
				// action ack from the read loop
				h.sendResponse(out, WSResponse{Action: "send", Success: true})
			default:
				// keepalive ping
				assert.NoError(t, out.WriteMessage(websocket.PingMessage, []byte("ping message")))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(0), atomic.LoadInt32(&raw.overlaps))
	assert.Equal(t, int32(writers), atomic.LoadInt32(&raw.frames))
}
