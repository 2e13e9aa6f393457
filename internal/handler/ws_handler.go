package handler

import (
	"net/http"
	"strings"

	"github.com/Vaishnavcibu/schedule-manager/internal/middleware"
	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/Vaishnavcibu/schedule-manager/internal/refresh"
	"github.com/Vaishnavcibu/schedule-manager/internal/service"
	ws "github.com/Vaishnavcibu/schedule-manager/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live view models to connected clients. Each connection
// subscribes its role-scoped view on the refresh coordinator and receives a
// push whenever a mutation invalidates it.
type WSHandler struct {
	coordinator *refresh.Coordinator
	viewService *service.ViewService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(coordinator *refresh.Coordinator, viewService *service.ViewService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		coordinator: coordinator,
		viewService: viewService,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// ViewStream godoc
// WS /ws/v1/view?token=...
// Upgrades to WebSocket and pushes the caller's view model on every change.
func (h *WSHandler) ViewStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	key := refresh.Key{Role: claims.Role, UserID: claims.UserID}
	wsLog := h.log.With().
		Str("role", string(claims.Role)).
		Int("user_id", claims.UserID).
		Logger()

	// All writes go through a single channel so the pump goroutine is the
	// only writer on the connection. The outbox is never closed; late
	// coordinator callbacks after disconnect just drop into the buffer.
	outbox := make(chan interface{}, 8)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case payload := <-outbox:
				if err := ws.WriteTyped(conn, payload); err != nil {
					wsLog.Debug().Err(err).Msg("Write failed, dropping connection")
					conn.Close()
					return
				}
			case <-stop:
				return
			}
		}
	}()

	unsubscribe := h.coordinator.Subscribe(key, func(vm *model.ViewModel) {
		// Coordinator callbacks must not block. A full outbox means the
		// client is not keeping up; the skipped push is superseded by the
		// next one anyway.
		select {
		case outbox <- ws.ViewResponse{Event: ws.EventView, View: vm}:
		default:
			wsLog.Warn().Msg("Outbox full, view push skipped")
		}
	})
	defer unsubscribe()

	// Initial snapshot so the client renders without waiting for a mutation.
	vm, err := h.viewService.Load(c.Request.Context(), claims.Role, claims.UserID)
	if err != nil {
		wsLog.Error().Err(err).Msg("Initial view load failed")
		outbox <- ws.ErrorResponse{Event: ws.EventError, Error: "view load failed"}
	} else {
		outbox <- ws.ViewResponse{Event: ws.EventView, View: vm}
	}

	wsLog.Info().Msg("View stream connected")

	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionPing:
			select {
			case outbox <- ws.PongResponse{Event: ws.EventPong}:
			default:
			}
		case ws.ActionRefresh:
			h.coordinator.Invalidate(key)
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
		}
	}

	unsubscribe()
	close(stop)
	<-done
}
