package relief

import (
	"context"
	"testing"

	"github.com/rajasatyajit/ReliefOps/internal/models"
)

func TestManager_AllocateResources(t *testing.T) {
	mgr := NewManager(testReliefConfig())
	ctx := context.Background()

	events := []models.Event{
		{ID: "a", DisasterType: "earthquake", Severity: models.SeverityHigh, Location: "tokyo"},
		{ID: "b", DisasterType: "flood", Severity: models.SeverityLow, Location: "osaka"},
	}

	report := mgr.AllocateResources(ctx, events)

	if report.Total.Food != 1000 {
		t.Errorf("Expected total food 1000, got %f", report.Total.Food)
	}
	if report.Buffer.Food != 200 {
		t.Errorf("Expected food buffer 200, got %f", report.Buffer.Food)
	}
	if report.Available.Food != 800 {
		t.Errorf("Expected available food 800, got %f", report.Available.Food)
	}
	if len(report.Allocations) != 2 {
		t.Fatalf("Expected 2 allocations, got %d", len(report.Allocations))
	}
	if report.Allocations[0].EventID != "a" {
		t.Errorf("Expected the high severity event first, got %s", report.Allocations[0].EventID)
	}
	if report.GeneratedAt.IsZero() {
		t.Error("Expected a generation timestamp")
	}
}

func TestManager_AllocateResources_NoEvents(t *testing.T) {
	mgr := NewManager(testReliefConfig())

	report := mgr.AllocateResources(context.Background(), nil)
	if len(report.Allocations) != 0 {
		t.Errorf("Expected no allocations, got %d", len(report.Allocations))
	}
	if report.Buffer.Water != 200 {
		t.Errorf("Expected buffer reported even with no events, got %f", report.Buffer.Water)
	}
}

func TestManager_InventoryUpdateFlowsIntoNextRound(t *testing.T) {
	mgr := NewManager(testReliefConfig())

	mgr.Inventory().Set(Supplies{Food: 100, Water: 100, Medicine: 100, Shelter: 100})

	report := mgr.AllocateResources(context.Background(), []models.Event{{ID: "a"}})
	if report.Available.Food != 80 {
		t.Errorf("Expected available food 80 after restock, got %f", report.Available.Food)
	}
}
