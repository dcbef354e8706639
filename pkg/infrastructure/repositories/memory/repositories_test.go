package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"planforge/pkg/application/dto"
	"planforge/pkg/domain/entities"
)

func TestItemRepository_GetItem(t *testing.T) {
	repo := NewItemRepository(2)
	item, err := entities.NewItem("FG-1", "Widget", decimal.RequireFromString("25.00"), 5)
	if err != nil {
		t.Fatalf("Failed to create item: %v", err)
	}
	repo.AddItem(*item)

	retrieved, err := repo.GetItem("FG-1")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if retrieved.Description != "Widget" {
		t.Errorf("Expected description Widget, got %s", retrieved.Description)
	}

	if _, err := repo.GetItem("MISSING"); err == nil {
		t.Error("Expected error for missing item")
	}
}

func TestItemRepository_Overrides(t *testing.T) {
	repo := NewItemRepository(1)
	abc := entities.ClassA
	repo.AddOverride(entities.ClassificationOverride{SKU: "FG-1", ABC: &abc})

	overrides, err := repo.GetOverrides()
	if err != nil {
		t.Fatalf("Failed to get overrides: %v", err)
	}
	if len(overrides) != 1 {
		t.Fatalf("Expected 1 override, got %d", len(overrides))
	}
	if *overrides[0].ABC != entities.ClassA {
		t.Errorf("Expected ABC override A, got %s", *overrides[0].ABC)
	}
}

func TestDemandRepository_KeepsPeriodOrder(t *testing.T) {
	repo := NewDemandRepository()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// Insert out of order.
	for _, offset := range []int{5, 1, 3} {
		obs, err := entities.NewDemandObservation("FG-1", base.AddDate(0, 0, offset), 10)
		if err != nil {
			t.Fatalf("Failed to create observation: %v", err)
		}
		repo.AddObservation(*obs)
	}

	observations, err := repo.GetObservations("FG-1")
	if err != nil {
		t.Fatalf("Failed to get observations: %v", err)
	}
	if len(observations) != 3 {
		t.Fatalf("Expected 3 observations, got %d", len(observations))
	}
	for i := 1; i < len(observations); i++ {
		if observations[i].PeriodDate.Before(observations[i-1].PeriodDate) {
			t.Errorf("Observations out of order at index %d", i)
		}
	}
}

func TestBOMRepository_IndexesAndRoots(t *testing.T) {
	repo := NewBOMRepository(3)
	for _, e := range [][2]entities.SKU{{"FG-1", "SUB"}, {"SUB", "SCREW"}, {"FG-2", "SCREW"}} {
		edge, err := entities.NewBOMEdge(e[0], e[1], 1, false)
		if err != nil {
			t.Fatalf("Failed to create edge: %v", err)
		}
		repo.AddEdge(*edge)
	}

	components, err := repo.GetComponents("FG-1")
	if err != nil {
		t.Fatalf("Failed to get components: %v", err)
	}
	if len(components) != 1 || components[0].ComponentSKU != "SUB" {
		t.Errorf("Expected single component SUB, got %v", components)
	}

	parents, err := repo.GetParents("SCREW")
	if err != nil {
		t.Fatalf("Failed to get parents: %v", err)
	}
	if len(parents) != 2 {
		t.Errorf("Expected 2 parent edges for SCREW, got %d", len(parents))
	}

	roots, err := repo.Roots()
	if err != nil {
		t.Fatalf("Failed to get roots: %v", err)
	}
	if len(roots) != 2 || roots[0] != "FG-1" || roots[1] != "FG-2" {
		t.Errorf("Expected roots [FG-1 FG-2], got %v", roots)
	}
}

func TestSupplyRepository_ReceiptsSortedAndOverdue(t *testing.T) {
	repo := NewSupplyRepository(1)
	base := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	pos, err := entities.NewSupplyPosition("MOTOR", 40, []entities.OpenReceipt{
		{Quantity: 10, ExpectedDate: base.AddDate(0, 0, 5), Reference: "PO-2"},
		{Quantity: 20, ExpectedDate: base.AddDate(0, 0, -3), Reference: "PO-1"},
	})
	if err != nil {
		t.Fatalf("Failed to create position: %v", err)
	}
	repo.AddPosition(*pos)

	retrieved, err := repo.GetPosition("MOTOR")
	if err != nil {
		t.Fatalf("Failed to get position: %v", err)
	}
	if retrieved.OpenReceipts[0].Reference != "PO-1" {
		t.Errorf("Expected receipts sorted by expected date, got %s first", retrieved.OpenReceipts[0].Reference)
	}

	overdue := retrieved.OverdueReceipts(base)
	if len(overdue) != 1 || overdue[0].Reference != "PO-1" {
		t.Errorf("Expected PO-1 overdue, got %v", overdue)
	}
}

func TestRunRepository_PublishIsAtomic(t *testing.T) {
	repo := NewRunRepository()
	if _, ok := repo.Current(); ok {
		t.Fatal("Expected no published run initially")
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			repo.Publish(&dto.RunResult{RunID: "run", Status: dto.RunCommitted})
		}(i)
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if result, ok := repo.Current(); ok && result.RunID == "" {
				t.Error("Observed half-published run")
			}
		}()
	}
	wg.Wait()

	result, ok := repo.Current()
	if !ok || result.RunID != "run" {
		t.Fatalf("Expected published run, got %v", result)
	}
}
