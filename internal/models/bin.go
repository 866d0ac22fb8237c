package models

import "fmt"

const (
	MinFillPercentage = 0
	MaxFillPercentage = 100
)

// Bin is a single smart dustbin as shown on the dashboard
type Bin struct {
	ID             int     `json:"id"`
	SerialNumber   string  `json:"serialNumber"`
	FillPercentage int     `json:"fillPercentage"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
}

// IsFull reports whether the bin reached its capacity
func (b Bin) IsFull() bool {
	return b.FillPercentage >= MaxFillPercentage
}

// FullMessage is the alert text raised when the bin fills up
func (b Bin) FullMessage() string {
	return fmt.Sprintf("Dustbin %s is full!", b.SerialNumber)
}

// CreateBinRequest is the request body for POST /api/bins
type CreateBinRequest struct {
	SerialNumber   string   `json:"serialNumber"`
	FillPercentage *int     `json:"fillPercentage,omitempty"`
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
}

// ClampFill keeps a fill level inside [0, 100]
func ClampFill(val int) int {
	if val < MinFillPercentage {
		return MinFillPercentage
	}
	if val > MaxFillPercentage {
		return MaxFillPercentage
	}
	return val
}

// SeedBins returns the five bins the dashboard starts with (SRM KTR campus)
func SeedBins() []Bin {
	return []Bin{
		{ID: 1, SerialNumber: "SRM001", FillPercentage: 75, Lat: 12.823084, Lng: 80.044794},
		{ID: 2, SerialNumber: "SRM002", FillPercentage: 30, Lat: 12.824084, Lng: 80.045794},
		{ID: 3, SerialNumber: "SRM003", FillPercentage: 90, Lat: 12.822084, Lng: 80.043794},
		{ID: 4, SerialNumber: "SRM004", FillPercentage: 50, Lat: 12.825084, Lng: 80.046794},
		{ID: 5, SerialNumber: "SRM005", FillPercentage: 10, Lat: 12.821084, Lng: 80.042794},
	}
}
