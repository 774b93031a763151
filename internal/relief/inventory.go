package relief

import (
	"sync"

	"github.com/rajasatyajit/ReliefOps/config"
)

// Supplies holds quantities of each relief supply type. Food and medicine
// are in units, water in liters, shelter in kits.
type Supplies struct {
	Food     float64 `json:"food"`
	Water    float64 `json:"water"`
	Medicine float64 `json:"medicine"`
	Shelter  float64 `json:"shelter"`
}

// scale multiplies every component by f
func (s Supplies) scale(f float64) Supplies {
	return Supplies{
		Food:     s.Food * f,
		Water:    s.Water * f,
		Medicine: s.Medicine * f,
		Shelter:  s.Shelter * f,
	}
}

// sub subtracts o componentwise
func (s Supplies) sub(o Supplies) Supplies {
	return Supplies{
		Food:     s.Food - o.Food,
		Water:    s.Water - o.Water,
		Medicine: s.Medicine - o.Medicine,
		Shelter:  s.Shelter - o.Shelter,
	}
}

// Inventory tracks total supply stock and the reserve buffer held back
// from every allocation round. Safe for concurrent use.
type Inventory struct {
	mu        sync.RWMutex
	total     Supplies
	bufferPct float64
}

// NewInventory seeds the inventory from config
func NewInventory(cfg config.ReliefConfig) *Inventory {
	return &Inventory{
		total: Supplies{
			Food:     cfg.FoodUnits,
			Water:    cfg.WaterLiters,
			Medicine: cfg.MedicineUnits,
			Shelter:  cfg.ShelterUnits,
		},
		bufferPct: cfg.BufferPercentage,
	}
}

// Set replaces the total stock
func (inv *Inventory) Set(s Supplies) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.total = s
}

// Snapshot returns the current total stock
func (inv *Inventory) Snapshot() Supplies {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.total
}

// Buffer returns the reserve held back from allocation, a fixed
// percentage of each supply type.
func (inv *Inventory) Buffer() Supplies {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.total.scale(inv.bufferPct / 100)
}

// Available returns what an allocation round may distribute: total stock
// minus the buffer.
func (inv *Inventory) Available() Supplies {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.total.sub(inv.total.scale(inv.bufferPct / 100))
}
