// Package spectator serves a read-only view of the running game over HTTP:
// the latest rendered frame as PNG and the simulation state as JSON.
package spectator

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"chosenoffset.com/glowworm/internal/engine"
)

// Server holds the most recently published frame and state. The game loop
// publishes after each frame; HTTP handlers only ever read the stored copy,
// so they never touch the engine directly.
type Server struct {
	mu    sync.RWMutex
	frame *image.RGBA
	state engine.Snapshot
}

func NewServer() *Server {
	return &Server{}
}

// PublishFrame stores a copy of img for later requests. The copy matters:
// the renderer reuses its canvas on the next frame.
func (s *Server) PublishFrame(img image.Image) {
	bounds := img.Bounds()
	cp := image.NewRGBA(bounds)
	draw.Draw(cp, bounds, img, bounds.Min, draw.Src)

	s.mu.Lock()
	s.frame = cp
	s.mu.Unlock()
}

// PublishState stores the latest simulation snapshot.
func (s *Server) PublishState(snap engine.Snapshot) {
	s.mu.Lock()
	s.state = snap
	s.mu.Unlock()
}

// Router builds the gin handler serving /frame.png and /state.json.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/frame.png", s.handleFrame)
	r.GET("/state.json", s.handleState)
	return r
}

// ListenAndServe blocks serving the spectator endpoints on addr.
func (s *Server) ListenAndServe(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) handleFrame(c *gin.Context) {
	s.mu.RLock()
	frame := s.frame
	s.mu.RUnlock()

	if frame == nil {
		c.String(http.StatusServiceUnavailable, "no frame rendered yet")
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		c.String(http.StatusInternalServerError, "encode frame: %v", err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleState(c *gin.Context) {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()

	c.JSON(http.StatusOK, state)
}
