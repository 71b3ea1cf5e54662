package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/roots"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Tolerance float64           `json:"tolerance"`
	MaxIter   int               `json:"max_iterations"`
	Report    experiment.Report `json:"report"`
}

// IterationSource supplies the per-iteration trace saved with a run.
type IterationSource interface {
	Methods() []string
	Iterations(method string) []roots.Iteration
}

func (s *Store) Save(rep *experiment.Report, cfg roots.Config, trace IterationSource) (string, error) {
	now := time.Now()
	if err := s.Init(); err != nil {
		return "", err
	}

	runID := fmt.Sprintf("run_%d", now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	for n := 1; ; n++ {
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return "", err
		}
		runID = fmt.Sprintf("run_%d_%d", now.UnixNano(), n)
		runDir = filepath.Join(s.baseDir, runID)
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: now,
		Tolerance: cfg.Tolerance,
		MaxIter:   cfg.MaxIterations,
		Report:    *rep,
	}

	if err := writeRun(runDir, &meta, trace); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, meta *RunMetadata, trace IterationSource) error {
	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return err
	}
	if err := metaFile.Close(); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "iterations.csv"))
	if err != nil {
		return err
	}
	if err := writeIterations(csvFile, trace); err != nil {
		csvFile.Close()
		return err
	}
	return csvFile.Close()
}

func writeIterations(out io.Writer, trace IterationSource) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"method", "index", "estimate", "value"}); err != nil {
		return err
	}

	if trace != nil {
		for _, method := range trace.Methods() {
			for _, it := range trace.Iterations(method) {
				row := []string{
					method,
					strconv.Itoa(it.Index),
					strconv.FormatFloat(it.Estimate, 'g', 17, 64),
					strconv.FormatFloat(it.Value, 'g', 17, 64),
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
	}

	w.Flush()
	return w.Error()
}

// List returns saved runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadIterations reads a run's trace back, keyed by method.
func (s *Store) LoadIterations(runID string) (map[string][]roots.Iteration, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "iterations.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	out := make(map[string][]roots.Iteration)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		idx, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		est, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		val, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out[rec[0]] = append(out[rec[0]], roots.Iteration{Index: idx, Estimate: est, Value: val})
	}

	return out, nil
}
