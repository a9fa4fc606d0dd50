package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/seismo/internal/slowness"
)

const (
	metadataFile = "metadata.json"
	layersFile   = "layers.csv"
)

var ErrBadLayers = errors.New("storage: malformed layers file")

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
	ID             string                    `json:"id"`
	Model          string                    `json:"model"`
	Timestamp      time.Time                 `json:"timestamp"`
	Radius         float64                   `json:"radius"`
	Params         slowness.Params           `json:"params"`
	NumLayers      int                       `json:"num_layers"`
	CriticalDepths []slowness.CriticalDepth  `json:"critical_depths"`
	HighSlownessP  []slowness.DepthRange     `json:"high_slowness_p"`
	HighSlownessS  []slowness.DepthRange     `json:"high_slowness_s"`
	FluidZones     []slowness.DepthRange     `json:"fluid_zones"`
	Stats          map[string]slowness.Stats `json:"stats"`
}

func (s *Store) Save(model string, m *slowness.Model) (string, error) {
	runID := fmt.Sprintf("%s_%d_%s", model, time.Now().Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Model:          model,
		Timestamp:      time.Now(),
		Radius:         m.Radius(),
		Params:         m.Params(),
		NumLayers:      m.NumLayers(slowness.P),
		CriticalDepths: m.CriticalDepths(),
		HighSlownessP:  m.HighSlownessZones(slowness.P),
		HighSlownessS:  m.HighSlownessZones(slowness.S),
		FluidZones:     m.FluidZones(),
		Stats: map[string]slowness.Stats{
			slowness.P.String(): m.Stats(slowness.P),
			slowness.S.String(): m.Stats(slowness.S),
		},
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeLayers(filepath.Join(runDir, layersFile), m); err != nil {
		return "", err
	}
	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeLayers(path string, m *slowness.Model) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"top_depth", "bot_depth", "p_top", "p_bot", "s_top", "s_bot"}
	if err := w.Write(header); err != nil {
		return err
	}

	pl, sl := m.Layers(slowness.P), m.Layers(slowness.S)
	for i := range pl {
		row := []string{
			formatFloat(pl[i].TopDepth),
			formatFloat(pl[i].BotDepth),
			formatFloat(pl[i].TopP),
			formatFloat(pl[i].BotP),
			formatFloat(sl[i].TopP),
			formatFloat(sl[i].BotP),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every saved run, oldest first. Directories without readable
// metadata are skipped.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadLayers reads back the P and S layer sequences of a run.
func (s *Store) LoadLayers(runID string) (p, sl []slowness.SlownessLayer, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, layersFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 6

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadLayers, err)
	}
	if len(records) < 2 {
		return []slowness.SlownessLayer{}, []slowness.SlownessLayer{}, nil
	}

	p = make([]slowness.SlownessLayer, 0, len(records)-1)
	sl = make([]slowness.SlownessLayer, 0, len(records)-1)
	for i, record := range records[1:] {
		var vals [6]float64
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: row %d column %d: %v", ErrBadLayers, i+1, j, err)
			}
			vals[j] = v
		}
		p = append(p, slowness.SlownessLayer{TopDepth: vals[0], BotDepth: vals[1], TopP: vals[2], BotP: vals[3]})
		sl = append(sl, slowness.SlownessLayer{TopDepth: vals[0], BotDepth: vals[1], TopP: vals[4], BotP: vals[5]})
	}
	return p, sl, nil
}
