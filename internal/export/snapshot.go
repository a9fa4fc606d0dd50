package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/san-kum/seismo/internal/slowness"
)

// Snapshot is a self-contained copy of a built slowness model.
type Snapshot struct {
	Model          string                   `json:"model" msgpack:"model"`
	Radius         float64                  `json:"radius" msgpack:"radius"`
	Params         slowness.Params          `json:"params" msgpack:"params"`
	PLayers        []slowness.SlownessLayer `json:"p_layers" msgpack:"p_layers"`
	SLayers        []slowness.SlownessLayer `json:"s_layers" msgpack:"s_layers"`
	CriticalDepths []slowness.CriticalDepth `json:"critical_depths" msgpack:"critical_depths"`
	HighSlownessP  []slowness.DepthRange    `json:"high_slowness_p" msgpack:"high_slowness_p"`
	HighSlownessS  []slowness.DepthRange    `json:"high_slowness_s" msgpack:"high_slowness_s"`
	FluidZones     []slowness.DepthRange    `json:"fluid_zones" msgpack:"fluid_zones"`
}

func NewSnapshot(name string, m *slowness.Model) *Snapshot {
	return &Snapshot{
		Model:          name,
		Radius:         m.Radius(),
		Params:         m.Params(),
		PLayers:        m.Layers(slowness.P),
		SLayers:        m.Layers(slowness.S),
		CriticalDepths: m.CriticalDepths(),
		HighSlownessP:  m.HighSlownessZones(slowness.P),
		HighSlownessS:  m.HighSlownessZones(slowness.S),
		FluidZones:     m.FluidZones(),
	}
}

// Layers returns the sequence for one wave type.
func (s *Snapshot) Layers(w slowness.WaveType) []slowness.SlownessLayer {
	if w == slowness.P {
		return s.PLayers
	}
	return s.SLayers
}

func WriteJSON(w io.Writer, snap *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func WriteJSONFile(path string, snap *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func WriteMsgpack(w io.Writer, snap *Snapshot) error {
	return msgpack.NewEncoder(w).Encode(snap)
}

func ReadMsgpack(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
