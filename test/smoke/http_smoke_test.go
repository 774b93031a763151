package smoke

import (
	"net/http/httptest"
	"testing"

	chi "github.com/go-chi/chi/v5"

	"github.com/rajasatyajit/ReliefOps/config"
	"github.com/rajasatyajit/ReliefOps/internal/api"
	"github.com/rajasatyajit/ReliefOps/internal/relief"
	"github.com/rajasatyajit/ReliefOps/internal/store"
)

func TestHealthEventsAndInventorySmoke(t *testing.T) {
	st := store.NewInMemoryStore()
	manager := relief.NewManager(config.ReliefConfig{
		BufferPercentage: 20,
		TopK:             5,
		FoodUnits:        1000,
		WaterLiters:      1000,
		MedicineUnits:    100,
		ShelterUnits:     500,
	})
	h := api.NewHandler(st, nil, manager, "dev", "now", "git")
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/health", nil))
	if rec.Code != 200 {
		t.Fatalf("/v1/health %d", rec.Code)
	}

	rec2 := httptest.NewRecorder()
	r.ServeHTTP(rec2, httptest.NewRequest("GET", "/v1/events", nil))
	if rec2.Code != 200 {
		t.Fatalf("/v1/events %d", rec2.Code)
	}

	rec3 := httptest.NewRecorder()
	r.ServeHTTP(rec3, httptest.NewRequest("GET", "/v1/inventory", nil))
	if rec3.Code != 200 {
		t.Fatalf("/v1/inventory %d", rec3.Code)
	}
}
