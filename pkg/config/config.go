// Package config loads sheet configuration from YAML.
//
// A configuration file names one or more sheets and optional shared defaults:
//
//	version: v1
//	defaults:
//	  drag_threshold: 60
//	sheets:
//	  filters:
//	    snap_points: ["30%", 0.6, 640]
//	    open_duration: 250ms
//	    avoid_keyboard: true
//
// Keys match the mapstructure tags of [sheet.Config]. Durations use Go
// duration syntax; a bare number is milliseconds. Snap points accept "50%" strings, fractions in (0, 1]
// and pixel heights.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/modalsheet/pkg/errors"
	"github.com/go-drift/modalsheet/pkg/sheet"
)

// FileName is the configuration file LoadOptional looks for.
const FileName = "sheets.yaml"

// SupportedMajor is the configuration format major version this package reads.
const SupportedMajor = "v1"

// rawFile is the YAML shape before sheet entries are decoded.
type rawFile struct {
	Version  string                    `yaml:"version"`
	Defaults map[string]any            `yaml:"defaults"`
	Sheets   map[string]map[string]any `yaml:"sheets"`
}

// Set is a decoded configuration file.
type Set struct {
	// Version is the canonical format version, e.g. "v1.0.0".
	Version string
	sheets  map[string]sheet.Config
}

// Names returns the configured sheet names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.sheets))
	for name := range s.sheets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Sheet returns the configuration for name. Its Name field is set to name.
func (s *Set) Sheet(name string) (sheet.Config, bool) {
	cfg, ok := s.sheets[name]
	return cfg, ok
}

// Len returns the number of configured sheets.
func (s *Set) Len() int {
	return len(s.sheets)
}

// LoadOptional reads sheets.yaml from dir if present. A missing file yields
// an empty Set.
func LoadOptional(dir string) (*Set, error) {
	set, err := Load(filepath.Join(dir, FileName))
	if stderrors.Is(err, os.ErrNotExist) {
		return &Set{Version: canonical(SupportedMajor), sheets: map[string]sheet.Config{}}, nil
	}
	return set, err
}

// Load reads and decodes a configuration file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("config.Load", errors.KindConfig, fmt.Errorf("failed to read %s: %w", path, err))
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Parse decodes configuration from YAML bytes.
func Parse(data []byte) (*Set, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.New("config.Parse", errors.KindConfig, fmt.Errorf("failed to parse YAML: %w", err))
	}

	version, err := CheckVersion(raw.Version)
	if err != nil {
		return nil, err
	}

	set := &Set{Version: version, sheets: make(map[string]sheet.Config, len(raw.Sheets))}
	for name, entry := range raw.Sheets {
		cfg, err := Decode(merge(raw.Defaults, entry))
		if err != nil {
			se := errors.New("config.Parse", errors.KindConfig, err)
			se.Sheet = name
			return nil, se
		}
		cfg.Name = name
		set.sheets[name] = cfg
	}
	return set, nil
}

// CheckVersion validates a format version and returns its canonical form.
// An empty version means the current one; a missing "v" prefix is allowed.
func CheckVersion(version string) (string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return canonical(SupportedMajor), nil
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return "", errors.New("config.CheckVersion", errors.KindConfig, fmt.Errorf("invalid version %q", version))
	}
	if major := semver.Major(version); major != SupportedMajor {
		return "", errors.New("config.CheckVersion", errors.KindConfig,
			fmt.Errorf("unsupported version %s (supported: %s)", version, SupportedMajor))
	}
	return canonical(version), nil
}

func canonical(version string) string {
	return semver.Canonical(version)
}

// merge overlays entry on defaults. Only top-level keys are merged.
func merge(defaults, entry map[string]any) map[string]any {
	out := make(map[string]any, len(defaults)+len(entry))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range entry {
		out[k] = v
	}
	return out
}

// Decode converts a generic map, as produced by a YAML or JSON decoder, into
// a sheet configuration. Unknown keys are an error.
func Decode(raw map[string]any) (sheet.Config, error) {
	var cfg sheet.Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			millisecondsHook,
			snapPointHook,
		),
		ErrorUnused: true,
		Result:      &cfg,
	})
	if err != nil {
		return sheet.Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return sheet.Config{}, fmt.Errorf("invalid sheet config: %w", err)
	}
	return cfg, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// millisecondsHook reads bare numbers as milliseconds, so open_duration: 300
// is 300ms rather than 300ns.
func millisecondsHook(from, to reflect.Type, data any) (any, error) {
	if to != durationType {
		return data, nil
	}
	var ms float64
	switch v := data.(type) {
	case int:
		ms = float64(v)
	case int64:
		ms = float64(v)
	case uint64:
		ms = float64(v)
	case float64:
		ms = v
	default:
		return data, nil
	}
	if ms < 0 {
		return nil, fmt.Errorf("duration: negative value %v", data)
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}

var snapPointType = reflect.TypeOf(sheet.SnapPoint{})

// snapPointHook turns scalars into snap points.
func snapPointHook(from, to reflect.Type, data any) (any, error) {
	if to != snapPointType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return sheet.ParseSnapPoint(v)
	case float64:
		return sheet.Number(v), nil
	case float32:
		return sheet.Number(float64(v)), nil
	case int:
		return sheet.Number(float64(v)), nil
	case int64:
		return sheet.Number(float64(v)), nil
	case uint64:
		return sheet.Number(float64(v)), nil
	default:
		return nil, fmt.Errorf("snap point: unsupported %s value %v", from, data)
	}
}
