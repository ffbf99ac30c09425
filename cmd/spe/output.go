package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pyvenv/ape/internal/venv"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	case "yml":
		return formatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format %q (want table, json or yaml)", s)
	}
}

// writeEnvironments prints envs in a machine-readable format.
func writeEnvironments(w io.Writer, format outputFormat, envs []venv.Environment) error {
	if envs == nil {
		envs = []venv.Environment{}
	}

	var data []byte
	var err error
	switch format {
	case formatJSON:
		data, err = json.MarshalIndent(envs, "", "  ")
		data = append(data, '\n')
	case formatYAML:
		data, err = yaml.Marshal(envs)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal environments: %w", err)
	}

	_, err = w.Write(data)
	return err
}
