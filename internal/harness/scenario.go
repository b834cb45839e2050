package harness

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Terminal names a scenario may request.
const (
	TerminalCollect      = "collect"
	TerminalTake         = "take"
	TerminalCount        = "count"
	TerminalSumInt       = "sum_int"
	TerminalSumFloat     = "sum_float"
	TerminalProductInt   = "product_int"
	TerminalProductFloat = "product_float"
)

// Scenario defines one conformance scenario: a program, its input
// bindings, a terminal, and the expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Program is the comprehension source text.
	Program string `yaml:"program"`

	// Terminal selects the consumer applied to the pipeline.
	// Empty means "collect".
	Terminal string `yaml:"terminal,omitempty"`

	// Take is the prefix length for the "take" terminal.
	Take int `yaml:"take,omitempty"`

	// Values are plain host values bound by name.
	Values map[string]any `yaml:"values,omitempty"`

	// Datasets are in-memory item lists bound by name as streams.
	Datasets map[string][]any `yaml:"datasets,omitempty"`

	// Tables are single-column SQLite tables, seeded into a fresh
	// in-memory database per run and bound by name as streams.
	Tables map[string][]any `yaml:"tables,omitempty"`

	// Expect is the expected terminal output. Nil means "don't check".
	Expect any `yaml:"expect,omitempty"`

	// ExpectError, when non-empty, means the run must fail with an
	// error containing this substring.
	ExpectError string `yaml:"expect_error,omitempty"`
}

var schemaOnce = sync.OnceValues(func() (cue.Value, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile scenario schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))
	if err := def.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("lookup #Scenario: %w", err)
	}
	return def, nil
})

// LoadScenario reads and parses a scenario YAML file. The file is
// checked against the embedded CUE schema first, then decoded with
// strict field validation (catches typos like "expects:" for
// "expect:"), then cross-field validated.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML bytes.
func ParseScenario(data []byte) (*Scenario, error) {
	def, err := schemaOnce()
	if err != nil {
		return nil, err
	}
	if err := cueyaml.Validate(data, def); err != nil {
		return nil, fmt.Errorf("scenario does not match schema: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadDir loads every scenario file (*.yaml, *.yml) in dir, in name
// order.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario directory: %w", err)
	}

	var scenarios []*Scenario
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		s, err := LoadScenario(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		scenarios = append(scenarios, s)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenario files in %s", dir)
	}
	return scenarios, nil
}

// validateScenario checks constraints the schema cannot express across
// fields.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Program == "" {
		return fmt.Errorf("program is required")
	}

	if s.Terminal == "" {
		s.Terminal = TerminalCollect
	}
	switch s.Terminal {
	case TerminalCollect, TerminalCount, TerminalSumInt, TerminalSumFloat,
		TerminalProductInt, TerminalProductFloat:
		if s.Take != 0 {
			return fmt.Errorf("take is only valid with the %q terminal", TerminalTake)
		}
	case TerminalTake:
		if s.Take <= 0 {
			return fmt.Errorf("the %q terminal requires take > 0", TerminalTake)
		}
	default:
		return fmt.Errorf("unknown terminal %q", s.Terminal)
	}

	if s.Expect != nil && s.ExpectError != "" {
		return fmt.Errorf("expect and expect_error are mutually exclusive")
	}

	for name := range s.Datasets {
		if _, clash := s.Values[name]; clash {
			return fmt.Errorf("name %q bound as both value and dataset", name)
		}
	}
	for name := range s.Tables {
		if _, clash := s.Values[name]; clash {
			return fmt.Errorf("name %q bound as both value and table", name)
		}
		if _, clash := s.Datasets[name]; clash {
			return fmt.Errorf("name %q bound as both dataset and table", name)
		}
	}

	return nil
}
