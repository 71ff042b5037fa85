package snapshots

import (
	"sync/atomic"

	"logpulse/internal/models"
)

// Cell is a single-slot, latest-value-wins publication point between the
// aggregation task and its readers (reporter, HTTP handler, exporter).
// Publish overwrites whatever was there; an unconsumed snapshot is simply
// superseded. Publishing never blocks the aggregator and readers never see
// a partially written snapshot.
type Cell struct {
	ptr atomic.Pointer[models.StatsSnapshot]
}

// NewCell creates an empty cell. Latest reports ok=false until the first
// Publish.
func NewCell() *Cell {
	return &Cell{}
}

// Publish stores s as the latest snapshot.
func (c *Cell) Publish(s models.StatsSnapshot) {
	c.ptr.Store(&s)
}

// Latest returns a copy of the most recent snapshot. ok is false before the
// first Publish.
func (c *Cell) Latest() (models.StatsSnapshot, bool) {
	p := c.ptr.Load()
	if p == nil {
		return models.StatsSnapshot{}, false
	}
	return *p, true
}
