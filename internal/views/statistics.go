package views

import (
	"math"

	"dustbin-dashboard/internal/models"
)

// AttentionThreshold is the fill level above which a bin needs attention
const AttentionThreshold = 75

// FillBand is one slice of the fill level distribution chart
type FillBand struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// SeriesPoint is one bar of the per-bin fill chart
type SeriesPoint struct {
	SerialNumber   string `json:"serialNumber"`
	FillPercentage int    `json:"fillPercentage"`
}

// Statistics is everything the statistics view shows
type Statistics struct {
	TotalBins             int           `json:"totalBins"`
	AverageFillPercentage int           `json:"averageFillPercentage"`
	NeedingAttention      int           `json:"needingAttention"`
	Distribution          []FillBand    `json:"distribution"`
	Series                []SeriesPoint `json:"series"`
}

// ComputeStatistics summarises a snapshot. The average of an empty fleet is 0.
func ComputeStatistics(bins []models.Bin) Statistics {
	stats := Statistics{
		TotalBins: len(bins),
		Distribution: []FillBand{
			{Name: "Low (0-50%)", Color: "#4CAF50"},
			{Name: "Medium (51-75%)", Color: "#FFC107"},
			{Name: "High (76-100%)", Color: "#F44336"},
		},
		Series: make([]SeriesPoint, len(bins)),
	}

	sum := 0
	for i, bin := range bins {
		sum += bin.FillPercentage
		switch {
		case bin.FillPercentage <= 50:
			stats.Distribution[0].Value++
		case bin.FillPercentage <= AttentionThreshold:
			stats.Distribution[1].Value++
		default:
			stats.Distribution[2].Value++
		}
		if bin.FillPercentage > AttentionThreshold {
			stats.NeedingAttention++
		}
		stats.Series[i] = SeriesPoint{SerialNumber: bin.SerialNumber, FillPercentage: bin.FillPercentage}
	}

	if len(bins) > 0 {
		stats.AverageFillPercentage = int(math.Round(float64(sum) / float64(len(bins))))
	}
	return stats
}
