package relief

import (
	"context"
	"time"

	"github.com/rajasatyajit/ReliefOps/config"
	"github.com/rajasatyajit/ReliefOps/internal/logger"
	"github.com/rajasatyajit/ReliefOps/internal/metrics"
	"github.com/rajasatyajit/ReliefOps/internal/models"
)

// Report is the outcome of one allocation round.
type Report struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Total       Supplies          `json:"total_inventory"`
	Buffer      Supplies          `json:"buffer"`
	Available   Supplies          `json:"available"`
	Allocations []EventAllocation `json:"allocations"`
}

// Manager owns the inventory and runs allocation rounds over batches of
// deduplicated events.
type Manager struct {
	inventory *Inventory
	allocator *Allocator
}

// NewManager creates a manager from config
func NewManager(cfg config.ReliefConfig) *Manager {
	return &Manager{
		inventory: NewInventory(cfg),
		allocator: NewAllocator(cfg.TopK),
	}
}

// Inventory exposes the managed inventory for reads and updates
func (m *Manager) Inventory() *Inventory {
	return m.inventory
}

// AllocateResources runs one allocation round: hold back the buffer,
// then distribute the rest across the most urgent events. The inventory
// itself is not decremented; the report describes a proposed dispatch.
func (m *Manager) AllocateResources(ctx context.Context, events []models.Event) Report {
	report := Report{
		GeneratedAt: time.Now().UTC(),
		Total:       m.inventory.Snapshot(),
		Buffer:      m.inventory.Buffer(),
		Available:   m.inventory.Available(),
	}
	report.Allocations = m.allocator.Allocate(events, report.Available)

	logger.Info("Allocated relief supplies",
		"events", len(events),
		"served", len(report.Allocations),
	)
	metrics.RecordAllocation(len(report.Allocations))

	return report
}
