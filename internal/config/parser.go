// Package config loads and validates the architect settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	apperrors "github.com/alexisbeaulieu97/architect/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads settings from path. An empty path selects DefaultPath, which
// may be absent; an explicitly named file must exist. Keys missing from the
// file keep their defaults.
func Load(path string) (Settings, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return Settings{}, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, apperrors.NewParseError(path, 0, err)
	}

	return Parse(path, data)
}

// Parse decodes settings over the defaults and validates the result.
// Unknown keys are rejected. path is only used in errors.
func Parse(path string, data []byte) (Settings, error) {
	settings := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, apperrors.NewParseError(path, extractLine(err), err)
	}

	if err := Validate(&settings); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}

	return line
}
