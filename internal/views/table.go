package views

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"dustbin-dashboard/internal/models"
)

type SortField string

const (
	SortByID             SortField = "id"
	SortBySerialNumber   SortField = "serialNumber"
	SortByFillPercentage SortField = "fillPercentage"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Fill classes used to colour the fill badge in the table
const (
	FillLow    = "low"
	FillMedium = "medium"
	FillHigh   = "high"
)

// TableState is the table's sort and filter settings
type TableState struct {
	Field     SortField `json:"sort"`
	Direction Direction `json:"dir"`
	Filter    string    `json:"filter"`
}

// DefaultTableState sorts by id ascending with no filter
func DefaultTableState() TableState {
	return TableState{Field: SortByID, Direction: Asc}
}

// ParseTableState reads sort, dir and filter values, falling back to the defaults when empty
func ParseTableState(sort, dir, filter string) (TableState, error) {
	state := DefaultTableState()
	state.Filter = filter

	switch SortField(sort) {
	case "":
	case SortByID, SortBySerialNumber, SortByFillPercentage:
		state.Field = SortField(sort)
	default:
		return state, fmt.Errorf("invalid sort field %q (use id, serialNumber, fillPercentage)", sort)
	}

	switch Direction(dir) {
	case "":
	case Asc, Desc:
		state.Direction = Direction(dir)
	default:
		return state, fmt.Errorf("invalid sort direction %q (use asc, desc)", dir)
	}

	return state, nil
}

// Toggle is a click on a column header: same column flips direction, a new column sorts ascending
func (s TableState) Toggle(field SortField) TableState {
	next := s
	if field == s.Field {
		if s.Direction == Asc {
			next.Direction = Desc
		} else {
			next.Direction = Asc
		}
		return next
	}
	next.Field = field
	next.Direction = Asc
	return next
}

// TableRow is one rendered table line
type TableRow struct {
	models.Bin
	FillClass string `json:"fillClass"`
}

// FillClass buckets a fill level for the table badge: under 50 low, under 75 medium, otherwise high
func FillClass(percentage int) string {
	if percentage < 50 {
		return FillLow
	}
	if percentage < 75 {
		return FillMedium
	}
	return FillHigh
}

// Sort returns a sorted copy of bins. Equal keys keep their store order.
func Sort(bins []models.Bin, field SortField, dir Direction) []models.Bin {
	sorted := slices.Clone(bins)
	slices.SortStableFunc(sorted, func(a, b models.Bin) int {
		var c int
		switch field {
		case SortBySerialNumber:
			c = strings.Compare(a.SerialNumber, b.SerialNumber)
		case SortByFillPercentage:
			c = a.FillPercentage - b.FillPercentage
		default:
			c = a.ID - b.ID
		}
		if dir == Desc {
			return -c
		}
		return c
	})
	return sorted
}

// Filter keeps bins whose serial number contains the text (ignoring case) or whose
// fill percentage written in decimal contains it
func Filter(bins []models.Bin, text string) []models.Bin {
	if text == "" {
		return slices.Clone(bins)
	}

	needle := strings.ToLower(text)
	var out []models.Bin
	for _, bin := range bins {
		if strings.Contains(strings.ToLower(bin.SerialNumber), needle) ||
			strings.Contains(strconv.Itoa(bin.FillPercentage), text) {
			out = append(out, bin)
		}
	}
	return out
}

// Rows applies the state to a snapshot
func (s TableState) Rows(bins []models.Bin) []TableRow {
	filtered := Filter(Sort(bins, s.Field, s.Direction), s.Filter)
	rows := make([]TableRow, len(filtered))
	for i, bin := range filtered {
		rows[i] = TableRow{Bin: bin, FillClass: FillClass(bin.FillPercentage)}
	}
	return rows
}
