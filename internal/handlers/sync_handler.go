package handlers

import (
	"net/http"

	"vocamaster/internal/live"
)

// SyncHandler upgrades clients onto the live collection stream
type SyncHandler struct {
	hub *live.Hub
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(hub *live.Hub) *SyncHandler {
	return &SyncHandler{hub: hub}
}

// Stream serves the websocket endpoint. The identity middleware runs
// first, so an unauthenticated socket never sees any collection data.
func (h *SyncHandler) Stream(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWs(w, r)
}
