package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/service/bot"
	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/service/move"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager *ConnectionManager
	Moves       *move.Service
	Upgrader    websocket.Upgrader
}

// NewHandler creates the analysis stream handler. An empty allowedOrigins
// list accepts any origin.
func NewHandler(cm *ConnectionManager, moves *move.Service, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager: cm,
		Moves:       moves,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowedOrigins) == 0 {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin {
						return true
					}
				}
				return false
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades the connection and serves analysis requests on it
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Str("component", "ws").Err(err).Msg("upgrade error")
		return
	}

	h.handleConnection(c.Request.Context(), conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	cl := h.ConnManager.AddConnection(conn)
	defer h.ConnManager.RemoveConnection(cl)

	// Set read deadline to detect stale connections
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := cl.ping(); err != nil {
					return
				}
			}
		}
	}()

	log.Debug().Str("component", "ws").Uint64("conn", cl.id).Msg("analysis stream opened")

	// Main Message Loop
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Info().Str("component", "ws").Err(err).Msg("client disconnected unexpectedly")
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			cl.send(ErrorMessage{Type: "error", Message: "invalid message format"})
			continue
		}

		if err := h.processMessage(ctx, cl, msg); err != nil {
			log.Debug().Str("component", "ws").Err(err).Msg("write failed, closing")
			break
		}
	}

	log.Debug().Str("component", "ws").Uint64("conn", cl.id).Msg("analysis stream closed")
}

// processMessage routes one request. The returned error is a write failure;
// engine errors are reported to the client instead.
func (h *Handler) processMessage(ctx context.Context, cl *client, msg ClientMessage) error {
	switch msg.Type {
	case "analyze":
		var writeErr error
		onDepth := func(r bot.DepthReport) {
			if writeErr != nil {
				return
			}
			writeErr = cl.send(DepthMessage{
				Type:      "depth",
				Depth:     r.Depth,
				Column:    r.Column,
				Score:     r.Score,
				Nodes:     r.Nodes,
				ElapsedMs: r.Elapsed.Milliseconds(),
			})
		}

		resp, err := h.Moves.ChooseMove(ctx, msg.Request, bot.WithDepthReports(onDepth))
		if writeErr != nil {
			return writeErr
		}
		if err != nil {
			return cl.send(ErrorMessage{Type: "error", Message: err.Error()})
		}
		return cl.send(DecisionMessage{Type: "decision", Response: resp})

	default:
		return cl.send(ErrorMessage{Type: "error", Message: "unknown message type " + msg.Type})
	}
}
