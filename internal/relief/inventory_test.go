package relief

import (
	"testing"

	"github.com/rajasatyajit/ReliefOps/config"
)

func testReliefConfig() config.ReliefConfig {
	return config.ReliefConfig{
		BufferPercentage: 20,
		TopK:             5,
		FoodUnits:        1000,
		WaterLiters:      1000,
		MedicineUnits:    100,
		ShelterUnits:     500,
	}
}

func TestInventory_BufferAndAvailable(t *testing.T) {
	inv := NewInventory(testReliefConfig())

	buffer := inv.Buffer()
	if buffer.Food != 200 {
		t.Errorf("Expected food buffer 200, got %f", buffer.Food)
	}
	if buffer.Medicine != 20 {
		t.Errorf("Expected medicine buffer 20, got %f", buffer.Medicine)
	}

	available := inv.Available()
	if available.Food != 800 {
		t.Errorf("Expected available food 800, got %f", available.Food)
	}
	if available.Water != 800 {
		t.Errorf("Expected available water 800, got %f", available.Water)
	}
	if available.Medicine != 80 {
		t.Errorf("Expected available medicine 80, got %f", available.Medicine)
	}
	if available.Shelter != 400 {
		t.Errorf("Expected available shelter 400, got %f", available.Shelter)
	}
}

func TestInventory_Set(t *testing.T) {
	inv := NewInventory(testReliefConfig())

	inv.Set(Supplies{Food: 500, Water: 250, Medicine: 50, Shelter: 100})

	snapshot := inv.Snapshot()
	if snapshot.Food != 500 {
		t.Errorf("Expected updated food 500, got %f", snapshot.Food)
	}
	if got := inv.Buffer().Water; got != 50 {
		t.Errorf("Expected water buffer to track new stock, got %f", got)
	}
	if got := inv.Available().Shelter; got != 80 {
		t.Errorf("Expected available shelter 80, got %f", got)
	}
}

func TestInventory_ZeroBuffer(t *testing.T) {
	cfg := testReliefConfig()
	cfg.BufferPercentage = 0
	inv := NewInventory(cfg)

	if got := inv.Available().Food; got != 1000 {
		t.Errorf("Expected full stock available with zero buffer, got %f", got)
	}
}
