package http

import (
	"encoding/json"
	"net/http"

	"logpulse/internal/snapshots"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type snapshotHandler struct {
	cell *snapshots.Cell
}

func NewSnapshotHandler(cell *snapshots.Cell) AppHttpHandler {
	return &snapshotHandler{
		cell: cell,
	}
}

// Handle serves GET /snapshot with the latest published stats. Until the
// aggregator publishes for the first time there is nothing to serve, which is
// a not-found rather than an error.
func (h *snapshotHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	snap, ok := h.cell.Latest()
	if !ok {
		return errSnapshotNotReady()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(snap)
	return nil
}
