// Package export writes the run results to disk: a JSON summary document
// and a CSV with one row per task mirroring the full per-task metric
// record.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vk/dagreplay/internal/metrics"
)

// JSONFileName and CSVFileName are the fixed result file names inside the
// output directory.
const (
	JSONFileName = "simulation_results.json"
	CSVFileName  = "task_metrics.csv"
)

// InputFiles echoes the input paths into the results document.
type InputFiles struct {
	DAG      string `json:"dag"`
	Topology string `json:"topology"`
	Schedule string `json:"schedule"`
}

// RunConfig echoes the effective run configuration.
type RunConfig struct {
	BaseComputeSpeed float64 `json:"base_compute_speed"`
}

// Summary is the metrics summary extended with run provenance.
type Summary struct {
	metrics.Summary
	InputFiles    InputFiles `json:"input_files"`
	Configuration RunConfig  `json:"configuration"`
}

// Results is the complete JSON results document.
type Results struct {
	Summary Summary               `json:"summary"`
	Tasks   []metrics.TaskMetrics `json:"tasks"`
}

// Write stores both result files under dir, creating it as needed, and
// returns their paths.
func Write(dir string, results *Results) (jsonPath, csvPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating output directory: %w", err)
	}

	jsonPath = filepath.Join(dir, JSONFileName)
	if err := WriteJSON(jsonPath, results); err != nil {
		return "", "", err
	}

	csvPath = filepath.Join(dir, CSVFileName)
	if err := WriteCSV(csvPath, results.Tasks); err != nil {
		return "", "", err
	}

	return jsonPath, csvPath, nil
}

// WriteJSON marshals the results document to path with indentation.
func WriteJSON(path string, results *Results) error {
	raw, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing JSON results: %w", err)
	}
	return nil
}

// csvHeader fixes the column order of the per-task CSV.
var csvHeader = []string{
	"task_id",
	"node_id",
	"scheduled_start",
	"scheduled_end",
	"scheduled_duration",
	"actual_start",
	"actual_end",
	"actual_duration",
	"uplink_time",
	"compute_time",
	"downlink_time",
	"start_delta",
	"end_delta",
	"duration_delta",
}

// WriteCSV writes one row per task in the given order.
func WriteCSV(path string, tasks []metrics.TaskMetrics) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing CSV metrics: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("writing CSV metrics: %w", err)
	}
	for _, m := range tasks {
		row := []string{
			m.TaskID,
			m.NodeID,
			formatFloat(m.ScheduledStart),
			formatFloat(m.ScheduledEnd),
			formatFloat(m.ScheduledDuration),
			formatFloat(m.ActualStart),
			formatFloat(m.ActualEnd),
			formatFloat(m.ActualDuration),
			formatFloat(m.UplinkTime),
			formatFloat(m.ComputeTime),
			formatFloat(m.DownlinkTime),
			formatFloat(m.StartDelta),
			formatFloat(m.EndDelta),
			formatFloat(m.DurationDelta),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("writing CSV metrics: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing CSV metrics: %w", err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
