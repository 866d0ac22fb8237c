package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"dustbin-dashboard/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestNextID(t *testing.T) {
	tests := []struct {
		name string
		bins []models.Bin
		want int
	}{
		{"empty", nil, 1},
		{"seed", models.SeedBins(), 6},
		{"gaps", []models.Bin{{ID: 9}, {ID: 2}}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextID(tt.bins); got != tt.want {
				t.Errorf("NextID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStore_Add(t *testing.T) {
	s := New(models.SeedBins())

	bin, err := s.Add(models.CreateBinRequest{
		SerialNumber: "  SRM006 ",
		Lat:          ptr(12.82),
		Lng:          ptr(80.04),
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if bin.ID != 6 {
		t.Errorf("Expected id 6, got %d", bin.ID)
	}
	if bin.SerialNumber != "SRM006" {
		t.Errorf("Expected trimmed serial, got %q", bin.SerialNumber)
	}
	if bin.FillPercentage != 0 {
		t.Errorf("Expected new bin to start empty, got %d", bin.FillPercentage)
	}
	if s.Len() != 6 {
		t.Errorf("Expected 6 bins, got %d", s.Len())
	}

	last := s.Snapshot()[5]
	if last != bin {
		t.Errorf("Expected new bin appended last, got %+v", last)
	}
}

func TestStore_AddClampsFill(t *testing.T) {
	s := New(nil)

	bin, err := s.Add(models.CreateBinRequest{
		SerialNumber:   "X",
		FillPercentage: ptr(250),
		Lat:            ptr(0.0),
		Lng:            ptr(0.0),
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if bin.FillPercentage != 100 {
		t.Errorf("Expected fill clamped to 100, got %d", bin.FillPercentage)
	}
	if bin.ID != 1 {
		t.Errorf("Expected id 1 on an empty store, got %d", bin.ID)
	}
}

func TestStore_AddValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateBinRequest
		want error
	}{
		{"blank serial", models.CreateBinRequest{SerialNumber: "   ", Lat: ptr(1.0), Lng: ptr(1.0)}, ErrSerialRequired},
		{"no location", models.CreateBinRequest{SerialNumber: "SRM009"}, ErrLocationRequired},
		{"no longitude", models.CreateBinRequest{SerialNumber: "SRM009", Lat: ptr(1.0)}, ErrLocationRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(models.SeedBins())
			_, err := s.Add(tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Add() error = %v, want %v", err, tt.want)
			}
			if s.Len() != 5 {
				t.Errorf("Store changed on invalid input: %d bins", s.Len())
			}
		})
	}
}

func TestStore_Remove(t *testing.T) {
	s := New(models.SeedBins())

	if !s.Remove(3) {
		t.Error("Remove(3) = false, want true")
	}
	if s.Len() != 4 {
		t.Errorf("Expected 4 bins, got %d", s.Len())
	}
	if _, ok := s.Get(3); ok {
		t.Error("Bin 3 still present after removal")
	}

	before := s.Snapshot()
	if s.Remove(42) {
		t.Error("Remove(42) = true for unknown id")
	}
	after := s.Snapshot()
	if len(before) != len(after) {
		t.Fatalf("Unknown id changed store size: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("Bin %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestStore_RemovedIDNotReusedWhileHigherExists(t *testing.T) {
	s := New(models.SeedBins())
	s.Remove(2)

	bin, err := s.Add(models.CreateBinRequest{SerialNumber: "SRM010", Lat: ptr(1.0), Lng: ptr(2.0)})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if bin.ID != 6 {
		t.Errorf("Expected id 6, got %d", bin.ID)
	}
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := New(models.SeedBins())

	snap := s.Snapshot()
	snap[0].FillPercentage = 0

	if got, _ := s.Get(1); got.FillPercentage != 75 {
		t.Errorf("Snapshot mutation leaked into store: %d", got.FillPercentage)
	}
}

func TestStore_Subscribe(t *testing.T) {
	s := New(models.SeedBins())

	var calls [][]models.Bin
	s.Subscribe(func(bins []models.Bin) {
		calls = append(calls, bins)
	})

	s.Remove(1)
	s.Add(models.CreateBinRequest{SerialNumber: "SRM007", Lat: ptr(1.0), Lng: ptr(1.0)})

	if len(calls) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(calls))
	}
	if len(calls[0]) != 4 || len(calls[1]) != 5 {
		t.Errorf("Unexpected snapshot sizes: %d, %d", len(calls[0]), len(calls[1]))
	}
}

func TestStore_SubscribersSeeCommitOrder(t *testing.T) {
	s := New(models.SeedBins())

	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	var sizes []int
	first := true
	s.Subscribe(func(bins []models.Bin) {
		mu.Lock()
		block := first
		first = false
		mu.Unlock()
		if block {
			close(entered)
			<-release
		}
		mu.Lock()
		sizes = append(sizes, len(bins))
		mu.Unlock()
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Remove(2)
	}()
	<-entered

	go func() {
		defer wg.Done()
		s.Add(models.CreateBinRequest{SerialNumber: "SRM006", Lat: ptr(1.0), Lng: ptr(1.0)})
	}()
	// give the add a chance to race ahead of the blocked delivery
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(sizes) != 2 || sizes[0] != 4 || sizes[1] != 5 {
		t.Fatalf("delivered sizes = %v, want [4 5]", sizes)
	}
	if last := sizes[len(sizes)-1]; last != s.Len() {
		t.Errorf("last delivered snapshot has %d bins, store has %d", last, s.Len())
	}
}

func TestStore_AddAfterRemovingHighestID(t *testing.T) {
	s := New(models.SeedBins())
	s.Remove(5)

	bin, err := s.Add(models.CreateBinRequest{SerialNumber: "SRM006", Lat: ptr(1.0), Lng: ptr(1.0)})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	// max+1 policy: the highest id is handed out again once its bin is gone
	if bin.ID != 5 {
		t.Errorf("ID = %d, want 5", bin.ID)
	}
}
