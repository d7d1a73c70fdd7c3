package vizweb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/pdrpinto/gridsearch/internal/ctxlog"
	"github.com/pdrpinto/gridsearch/runner"
)

const (
	streamPath   = "/api/stream"
	writeTimeout = 5 * time.Second
)

// handleStream pushes one frame per automatic step over a websocket until
// the search finishes, the board is replaced, or the client goes away.
// Pause, resume and speed changes arrive through the regular endpoints.
func (s *Server) handleStream(c *gin.Context) {
	sess := s.current()
	if !sess.streaming.TryLock() {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "a stream is already attached to this board"})
		return
	}
	defer sess.streaming.Unlock()

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		ctxlog.From(c.Request.Context()).Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	stop := context.AfterFunc(sess.ctx, cancel)
	defer stop()
	ctx = ctxlog.With(ctx,
		"board", fmt.Sprintf("%dx%d", sess.grid.Rows(), sess.grid.Cols()),
		"algorithm", sess.algorithm.String())
	logger := ctxlog.From(ctx)

	// The client never sends anything meaningful; reading surfaces its close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(frame runner.Frame) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		return conn.WriteJSON(frame)
	}
	if err := send(sess.controller.Frame()); err != nil {
		return
	}

	err = sess.controller.Run(ctx, send)
	reason := "finished"
	switch {
	case errors.Is(err, context.Canceled):
		reason = "canceled"
	case err != nil:
		logger.Warn("stream ended", "error", err)
		reason = "error"
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
		time.Now().Add(writeTimeout))
	logger.Debug("stream closed", "reason", reason)
}
