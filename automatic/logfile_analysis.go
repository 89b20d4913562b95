package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/domino14/lambdaminer/stats"
)

// AnalyzeLogFile summarizes a batch log written by SolveBatch.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return AnalyzeLog(file)
}

func AnalyzeLog(in io.Reader) (string, error) {
	r := csv.NewReader(in)

	// Record looks like:
	// name,moves,score,outcome,visited,elapsed-ms
	scores := &stats.Statistic{}
	visited := &stats.Statistic{}
	elapsed := &stats.Statistic{}
	outcomes := map[string]int{}
	mapsSolved := 0
	first := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if first {
			first = false
			if record[0] == "name" {
				continue
			}
		}
		score, err := strconv.Atoi(record[2])
		if err != nil {
			return "", err
		}
		nvisited, err := strconv.Atoi(record[4])
		if err != nil {
			return "", err
		}
		ms, err := strconv.Atoi(record[5])
		if err != nil {
			return "", err
		}
		scores.Push(float64(score))
		visited.Push(float64(nvisited))
		elapsed.Push(float64(ms))
		outcomes[record[3]]++
		mapsSolved++
	}
	if mapsSolved == 0 {
		return "No maps in log\n", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Maps solved: %d\n", mapsSolved)
	for _, o := range []string{"won", "aborted", "lost", "ongoing"} {
		if outcomes[o] > 0 {
			fmt.Fprintf(&sb, "%v: %d (%.3f%%)\n", o, outcomes[o],
				100.0*float64(outcomes[o])/float64(mapsSolved))
		}
	}
	fmt.Fprintf(&sb, "Score: total %.0f  mean %.6f  stdev %.6f\n",
		scores.Mean()*float64(scores.Count()), scores.Mean(), scores.Stdev())
	fmt.Fprintf(&sb, "Visited: mean %.1f  max %.0f\n", visited.Mean(), visited.Max())
	fmt.Fprintf(&sb, "Elapsed ms: mean %.1f  max %.0f\n", elapsed.Mean(), elapsed.Max())
	return sb.String(), nil
}
