package websocket

import "github.com/Vaishnavcibu/schedule-manager/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionRefresh Action = "refresh"
	ActionPing    Action = "ping"
)

// RequestEnvelope carries the client's action.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventView  Event = "view"
	EventError Event = "error"
	EventPong  Event = "pong"
)

// ViewResponse pushes a freshly projected view model to the client.
type ViewResponse struct {
	Event Event            `json:"event"`
	View  *model.ViewModel `json:"view"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
