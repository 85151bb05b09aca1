package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/geodesim/internal/engine"
)

var ErrRunNotFound = errors.New("run not found")

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
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

type BlueprintResult struct {
	ID      int    `json:"id"`
	Geodes  int    `json:"geodes"`
	Quality int    `json:"quality"`
	Robots  string `json:"robots"`
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Source     string             `json:"source"`
	Timestamp  time.Time          `json:"timestamp"`
	Horizon    int                `json:"horizon"`
	Steps      int                `json:"steps"`
	QualitySum int                `json:"quality_sum"`
	Blueprints []BlueprintResult  `json:"blueprints"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Steps holds the frontier size of every blueprint per minute.
type Steps struct {
	Minutes []int
	// Sizes[i][m] is the frontier of the i-th blueprint after minute
	// Minutes[m].
	Sizes [][]int
}

// Save records the state sim has reached. elapsed is the wall time spent
// stepping it.
func (s *Store) Save(source string, sim *engine.Simulation, elapsed time.Duration) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	lanes := sim.Lanes()
	meta := RunMetadata{
		ID:        runID,
		Source:    source,
		Timestamp: time.Now(),
		Horizon:   sim.Horizon(),
		Steps:     sim.Steps(),
		Metrics: map[string]float64{
			"elapsed_ms":    float64(elapsed.Milliseconds()),
			"peak_frontier": float64(sim.PeakSize()),
			"coverage":      engine.Coverage(sim),
		},
	}
	total := 0
	for _, l := range lanes {
		q := l.Blueprint.ID * l.Geodes()
		meta.QualitySum += q
		meta.Blueprints = append(meta.Blueprints, BlueprintResult{
			ID:      l.Blueprint.ID,
			Geodes:  l.Geodes(),
			Quality: q,
			Robots:  l.BestPath.String(),
		})
		for _, n := range l.Sizes {
			total += n
		}
	}
	meta.Metrics["states_visited"] = float64(total)

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSteps(filepath.Join(runDir, stepsFile), lanes); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSteps(path string, lanes []engine.Lane) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"minute"}
	for _, l := range lanes {
		header = append(header, fmt.Sprintf("blueprint_%d", l.Blueprint.ID))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	if len(lanes) > 0 {
		for m := range lanes[0].Sizes {
			row := []string{strconv.Itoa(m)}
			for _, l := range lanes {
				row = append(row, strconv.Itoa(l.Sizes[m]))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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

// open only accepts ids in the canonical form Save hands out.
func (s *Store) open(runID, name string) (*os.File, error) {
	if id, err := uuid.Parse(runID); err != nil || id.String() != runID {
		return nil, fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	f, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return f, err
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	f, err := s.open(runID, metadataFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var meta RunMetadata
	if err := json.NewDecoder(f).Decode(&meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSteps(runID string) (*Steps, error) {
	f, err := s.open(runID, stepsFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 1 {
		return &Steps{}, nil
	}

	steps := &Steps{Sizes: make([][]int, len(records[0])-1)}
	for _, record := range records[1:] {
		m, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("run %s: minute %q: %w", runID, record[0], err)
		}
		steps.Minutes = append(steps.Minutes, m)
		for j, field := range record[1:] {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("run %s: size %q: %w", runID, field, err)
			}
			steps.Sizes[j] = append(steps.Sizes[j], n)
		}
	}
	return steps, nil
}

// CopySteps writes the raw steps.csv of a run to w.
func (s *Store) CopySteps(w io.Writer, runID string) error {
	f, err := s.open(runID, stepsFile)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
