package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/seqlab/comprehend/internal/value"
)

// Snapshot serializes a result as canonical JSON: sorted keys, NFC
// strings, minimal escaping. Byte-stable for golden comparison as long
// as the run token is fixed.
func Snapshot(result *Result) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	if result.Err != nil {
		if err := writeField(&buf, "error", value.Str(result.Err.Error()), true); err != nil {
			return nil, err
		}
	} else {
		if err := writeField(&buf, "output", result.Output, true); err != nil {
			return nil, err
		}
	}
	if err := writeField(&buf, "run_id", value.Str(result.RunID), false); err != nil {
		return nil, err
	}
	if err := writeField(&buf, "scenario", value.Str(result.Scenario), false); err != nil {
		return nil, err
	}
	if err := writeField(&buf, "terminal", value.Str(result.Terminal), false); err != nil {
		return nil, err
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key string, v value.Value, first bool) error {
	b, err := value.MarshalCanonical(v)
	if err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	if !first {
		buf.WriteByte(',')
	}
	fmt.Fprintf(buf, "%q:", key)
	buf.Write(b)
	return nil
}

// RunWithGolden executes a scenario with a fixed run token and compares
// the result snapshot against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) *Result {
	t.Helper()

	result, err := RunWithTokens(scenario, NewFixedGenerator("run-"+scenario.Name))
	if err != nil {
		t.Fatalf("run scenario %s: %v", scenario.Name, err)
	}

	AssertGolden(t, result)
	return result
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, result *Result) {
	t.Helper()

	snapshot, err := Snapshot(result)
	if err != nil {
		t.Fatalf("snapshot scenario %s: %v", result.Scenario, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, result.Scenario, snapshot)
}
