package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/geometry"
)

//go:embed flock.schema.json
var configSchema string

const configSchemaURL = "flock.schema.json"

type Config struct {
	// Seed of the random source, 0 lets the command pick one
	Seed uint64 `json:"seed"`

	// Population
	NumBoids    int `json:"numBoids"` // leader included
	SpawnExtent int `json:"spawnExtent"`

	// Steering
	MinimumSeparation     float64 `json:"minimumSeparation"`
	MaxSpeed              float64 `json:"maxSpeed"`
	AlignWeight           float64 `json:"alignWeight"`
	BruteSeparationWeight float64 `json:"bruteSeparationWeight"`
	IndexSeparationWeight float64 `json:"indexSeparationWeight"`
	ArrivalRadius         float64 `json:"arrivalRadius"`

	InitialDestination geometry.Vector3D `json:"initialDestination"`
	LeaderStart        geometry.Vector3D `json:"leaderStart"`
	DestinationBounds  geometry.Box      `json:"destinationBounds"`

	// Octree
	Region        geometry.Box `json:"region"`
	LeafCapacity  int          `json:"leafCapacity"`
	MinOctantSize float64      `json:"minOctantSize"`

	// Viewer
	UseSpatialIndex bool    `json:"useSpatialIndex"`
	ShowOctree      bool    `json:"showOctree"`
	TickRate        int     `json:"tickRate"` // steps per second
	ScreenWidth     int     `json:"screenWidth"`
	ScreenHeight    int     `json:"screenHeight"`
	Scale           float64 `json:"scale"` // pixels per world unit
}

func DefaultConfig() *Config {
	s := flock.DefaultSettings()
	return &Config{
		NumBoids:              s.NumBoids,
		SpawnExtent:           s.SpawnExtent,
		MinimumSeparation:     s.MinimumSeparation,
		MaxSpeed:              s.MaxSpeed,
		AlignWeight:           s.AlignWeight,
		BruteSeparationWeight: s.BruteSeparationWeight,
		IndexSeparationWeight: s.IndexSeparationWeight,
		ArrivalRadius:         s.ArrivalRadius,
		InitialDestination:    s.InitialDestination,
		LeaderStart:           s.LeaderStart,
		DestinationBounds:     s.DestinationBounds,
		Region:                s.Region,
		LeafCapacity:          s.LeafCapacity,
		MinOctantSize:         s.MinOctantSize,
		UseSpatialIndex:       true,
		ShowOctree:            false,
		TickRate:              60,
		ScreenWidth:           1200,
		ScreenHeight:          800,
		Scale:                 8,
	}
}

// Settings maps the configuration onto the flock parameters.
func (c *Config) Settings() flock.Settings {
	return flock.Settings{
		NumBoids:              c.NumBoids,
		MinimumSeparation:     c.MinimumSeparation,
		SpawnExtent:           c.SpawnExtent,
		MaxSpeed:              c.MaxSpeed,
		AlignWeight:           c.AlignWeight,
		BruteSeparationWeight: c.BruteSeparationWeight,
		IndexSeparationWeight: c.IndexSeparationWeight,
		ArrivalRadius:         c.ArrivalRadius,
		LeaderStart:           c.LeaderStart,
		InitialDestination:    c.InitialDestination,
		DestinationBounds:     c.DestinationBounds,
		Region:                c.Region,
		LeafCapacity:          c.LeafCapacity,
		MinOctantSize:         c.MinOctantSize,
	}
}

// LoadConfig reads a .json or .toml file, validates it against the embedded
// schema and applies it over DefaultConfig. Keys missing from the file keep
// their default value.
func LoadConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw []byte
	switch ext := strings.ToLower(filepath.Ext(configFile)); ext {
	case ".json":
		raw = data
	case ".toml":
		if raw, err = tomlToJSON(data); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	return parseConfig(raw)
}

// tomlToJSON re-encodes a TOML document so both formats share one validation path.
func tomlToJSON(data []byte) ([]byte, error) {
	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode config toml: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config as json: %w", err)
	}
	return raw, nil
}

func parseConfig(raw []byte) (*Config, error) {
	sch, err := jsonschema.CompileString(configSchemaURL, configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
