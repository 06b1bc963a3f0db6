package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/GriffinCanCode/brigade/internal/bench"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat converts a name to a Format.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Relay writes the text summary of a relay run.
func Relay(w io.Writer, r *bench.RelayResult) error {
	line := fmt.Sprintf("%d iterations, %d tasks, mean %s per iteration, stddev %s",
		r.Latency.Count, r.Units,
		Duration(r.Latency.Mean),
		Duration(r.Latency.StdDev))
	if r.Units > 0 {
		line += fmt.Sprintf(" (%s per task per iter)", Duration(r.PerUnit))
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// Spawn writes the text summary of a spawn run.
func Spawn(w io.Writer, r *bench.SpawnResult) error {
	_, err := fmt.Fprintf(w, "create a task: mean %s per iter, stddev %s (%s per task)\ncreation to body: mean %s, stddev %s\n",
		Duration(r.Creation.Mean),
		Duration(r.Creation.StdDev),
		Duration(r.CreationPerUnit),
		Duration(r.StartLatency.Mean),
		Duration(r.StartLatency.StdDev))
	return err
}

// Write renders v in format f. Text output accepts *bench.RelayResult and
// *bench.SpawnResult only.
func Write(w io.Writer, f Format, v any) error {
	switch f {
	case FormatText:
		switch r := v.(type) {
		case *bench.RelayResult:
			return Relay(w, r)
		case *bench.SpawnResult:
			return Spawn(w, r)
		default:
			return fmt.Errorf("no text rendering for %T", v)
		}
	case FormatJSON, FormatYAML, FormatTOML:
		data, err := Encode(f, v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// Encode marshals v in a structured format.
func Encode(f Format, v any) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatJSON:
		data, err = sonic.MarshalIndent(v, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(v)
	case FormatTOML:
		data, err = toml.Marshal(v)
	default:
		return nil, fmt.Errorf("format %q is not structured", f)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", f, err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	return data, nil
}
