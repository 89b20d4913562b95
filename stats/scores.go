package stats

import (
	"fmt"
	"io"
	"slices"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"
)

// DefaultSampleLimit caps how many scores a ScoreSample keeps for the
// histogram. The running Statistic sees every score regardless.
const DefaultSampleLimit = 1 << 20

// ScoreSample records the scores of explored game states.
type ScoreSample struct {
	Statistic
	limit  int
	scores []float64
}

func NewScoreSample(limit int) *ScoreSample {
	if limit <= 0 {
		limit = DefaultSampleLimit
	}
	return &ScoreSample{limit: limit}
}

func (s *ScoreSample) Add(score int) {
	v := float64(score)
	s.Push(v)
	if len(s.scores) < s.limit {
		s.scores = append(s.scores, v)
	}
}

// Sampled is the number of scores kept for the histogram.
func (s *ScoreSample) Sampled() int {
	return len(s.scores)
}

// Quantile returns the p-quantile of the kept scores.
func (s *ScoreSample) Quantile(p float64) float64 {
	if len(s.scores) == 0 {
		return 0
	}
	sorted := slices.Clone(s.scores)
	slices.Sort(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Summary is a one-line description of the sample.
func (s *ScoreSample) Summary() string {
	if s.Count() == 0 {
		return "no scores"
	}
	mean, std := stat.MeanStdDev(s.scores, nil)
	return fmt.Sprintf("n=%d min=%.0f median=%.0f max=%.0f mean=%.2f stdev=%.2f",
		s.Count(), s.Min(), s.Quantile(0.5), s.Max(), mean, std)
}

// Histogram returns the distribution of the kept scores in bins buckets.
func (s *ScoreSample) Histogram(bins int) histogram.Histogram {
	return histogram.Hist(bins, s.scores)
}

// WriteHistogram prints the histogram as text bars of up to width columns.
func (s *ScoreSample) WriteHistogram(w io.Writer, bins, width int) error {
	if len(s.scores) == 0 {
		_, err := io.WriteString(w, "no scores\n")
		return err
	}
	return histogram.Fprint(w, s.Histogram(bins), histogram.Linear(width))
}
