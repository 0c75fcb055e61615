// Package scenario reads and replays scripted sheet interactions.
//
// A scenario file configures one sheet and lists the steps to drive it,
// interleaved with expectations:
//
//	name: scroll expands
//	sheet:
//	  snap_points: [0.3, 0.6, 0.9]
//	steps:
//	  - open
//	  - settle
//	  - scroll: {offset: 10, velocity: 4}
//	  - settle
//	  - expect: {phase: visible, index: 2, offset: 0}
package scenario

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/modalsheet/pkg/config"
	"github.com/go-drift/modalsheet/pkg/errors"
	"github.com/go-drift/modalsheet/pkg/sheet"
)

// Scenario is a parsed scenario file.
type Scenario struct {
	Name string
	Path string
	// Use names a sheet from a configuration file instead of Sheet.
	Use   string
	Sheet map[string]any
	Steps []Step
}

type rawScenario struct {
	Version string         `yaml:"version"`
	Name    string         `yaml:"name"`
	Use     string         `yaml:"use"`
	Sheet   map[string]any `yaml:"sheet"`
	Steps   []Step         `yaml:"steps"`
}

// Step is one action or expectation. Exactly one of its fields is set,
// named by Action.
type Step struct {
	Action string
	Line   int

	Index    int
	Frames   int
	Value    float64
	Duration time.Duration
	Drag     DragArgs
	Scroll   ScrollArgs
	Expect   Expectation
}

// DragArgs describes a pointer drag.
type DragArgs struct {
	DY    float64 `yaml:"dy"`
	Steps int     `yaml:"steps"`
}

// ScrollArgs describes one content scroll event.
type ScrollArgs struct {
	Offset   float64  `yaml:"offset"`
	Velocity *float64 `yaml:"velocity"`
}

func (a ScrollArgs) sample() sheet.ScrollSample {
	if a.Velocity == nil {
		return sheet.ScrollAt(a.Offset)
	}
	return sheet.ScrollWithVelocity(a.Offset, *a.Velocity)
}

// Expectation lists the state to check. Nil fields are not checked.
type Expectation struct {
	Phase     *string  `yaml:"phase"`
	Index     *int     `yaml:"index"`
	Offset    *float64 `yaml:"offset"`
	Opacity   *float64 `yaml:"opacity"`
	Animating *bool    `yaml:"animating"`
	Opens     *int     `yaml:"opens"`
	Closes    *int     `yaml:"closes"`
	Snaps     []int    `yaml:"snaps"`
}

// Actions lists the step names a scenario may use.
var Actions = []string{
	"open", "close", "snap", "drag", "cancel_drag",
	"scroll_begin", "scroll", "scroll_end",
	"keyboard", "viewport", "wait", "pump", "settle", "expect",
}

// UnmarshalYAML accepts a bare action name ("- open") or a single-key
// mapping from action to its argument ("- snap: 2").
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	s.Line = node.Line
	var arg *yaml.Node
	switch node.Kind {
	case yaml.ScalarNode:
		s.Action = node.Value
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: step must have exactly one action", node.Line)
		}
		s.Action = node.Content[0].Value
		arg = node.Content[1]
	default:
		return fmt.Errorf("line %d: step must be an action name or a mapping", node.Line)
	}

	need := func(what string) error {
		if arg == nil || (arg.Kind == yaml.ScalarNode && arg.Tag == "!!null") {
			return fmt.Errorf("line %d: %s needs %s", node.Line, s.Action, what)
		}
		return nil
	}

	switch s.Action {
	case "open", "close":
		return nil
	case "snap":
		if err := need("an index"); err != nil {
			return err
		}
		return arg.Decode(&s.Index)
	case "drag", "cancel_drag":
		if err := need("a distance"); err != nil {
			return err
		}
		if arg.Kind == yaml.ScalarNode {
			return arg.Decode(&s.Drag.DY)
		}
		return arg.Decode(&s.Drag)
	case "scroll_begin", "keyboard", "viewport":
		if err := need("a number"); err != nil {
			return err
		}
		return arg.Decode(&s.Value)
	case "scroll", "scroll_end":
		if err := need("an offset"); err != nil {
			return err
		}
		if arg.Kind == yaml.ScalarNode {
			return arg.Decode(&s.Scroll.Offset)
		}
		return arg.Decode(&s.Scroll)
	case "wait", "settle":
		if arg == nil || arg.Tag == "!!null" {
			return nil
		}
		d, err := time.ParseDuration(arg.Value)
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", node.Line, s.Action, err)
		}
		s.Duration = d
		return nil
	case "pump":
		s.Frames = 1
		if arg == nil || arg.Tag == "!!null" {
			return nil
		}
		return arg.Decode(&s.Frames)
	case "expect":
		if err := need("expectations"); err != nil {
			return err
		}
		return arg.Decode(&s.Expect)
	default:
		return fmt.Errorf("line %d: unknown action %q (want one of %s)", node.Line, s.Action, strings.Join(Actions, ", "))
	}
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("scenario.Load", errors.KindScenario, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sc.Path = path
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

// Parse decodes a scenario from YAML bytes.
func Parse(data []byte) (*Scenario, error) {
	var raw rawScenario
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.New("scenario.Parse", errors.KindScenario, err)
	}
	if _, err := config.CheckVersion(raw.Version); err != nil {
		return nil, errors.New("scenario.Parse", errors.KindScenario, err)
	}
	if raw.Use != "" && raw.Sheet != nil {
		return nil, errors.New("scenario.Parse", errors.KindScenario,
			fmt.Errorf("use and sheet are mutually exclusive"))
	}
	if len(raw.Steps) == 0 {
		return nil, errors.New("scenario.Parse", errors.KindScenario, fmt.Errorf("no steps"))
	}
	return &Scenario{
		Name:  raw.Name,
		Use:   raw.Use,
		Sheet: raw.Sheet,
		Steps: raw.Steps,
	}, nil
}

// Config resolves the sheet configuration, looking Use up in set.
func (sc *Scenario) Config(set *config.Set) (sheet.Config, error) {
	if sc.Use == "" {
		cfg, err := config.Decode(sc.Sheet)
		if err != nil {
			return sheet.Config{}, errors.New("scenario.Config", errors.KindScenario, err)
		}
		return cfg, nil
	}
	if set == nil {
		return sheet.Config{}, errors.New("scenario.Config", errors.KindScenario,
			fmt.Errorf("scenario uses sheet %q but no configuration file was given", sc.Use))
	}
	cfg, ok := set.Sheet(sc.Use)
	if !ok {
		return sheet.Config{}, errors.New("scenario.Config", errors.KindScenario,
			fmt.Errorf("sheet %q not found in configuration (have %s)", sc.Use, strings.Join(set.Names(), ", ")))
	}
	return cfg, nil
}
