package detection

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
)

// Stats summarises an accumulator. Mean and standard deviation are taken over
// cells with at least one vote.
type Stats struct {
	EdgePixels   int     `json:"edge_pixels"`
	MaxVotes     uint32  `json:"max_votes"`
	TotalVotes   uint64  `json:"total_votes"`
	NonZeroCells int     `json:"non_zero_cells"`
	MeanVotes    float64 `json:"mean_votes"`
	StdDevVotes  float64 `json:"stddev_votes"`
}

// ComputeStats summarises acc.
func ComputeStats(acc *hough.Accumulator) Stats {
	s := Stats{EdgePixels: acc.EdgePixels}

	var votes []float64
	for _, v := range acc.Values() {
		if v == 0 {
			continue
		}
		s.TotalVotes += uint64(v)
		votes = append(votes, float64(v))
	}
	s.NonZeroCells = len(votes)
	if len(votes) == 0 {
		return s
	}

	s.MaxVotes = uint32(floats.Max(votes))
	if len(votes) == 1 {
		s.MeanVotes = votes[0]
		return s
	}

	mean, std := stat.MeanStdDev(votes, nil)
	s.MeanVotes = math.Round(mean*100) / 100
	s.StdDevVotes = math.Round(std*100) / 100
	return s
}
