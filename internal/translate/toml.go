// Package translate converts site files between YAML and TOML and decodes
// either into Go values.
package translate

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/pkg/fileutil"
)

// Format is a site file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Wrapf(errors.ErrUnsupportedFormat, "%s (want .yaml, .yml or .toml)", path)
	}
}

// YAMLToTOML converts YAML data to TOML data.
func YAMLToTOML(yamlData []byte) ([]byte, error) {
	var data any
	if err := yaml.Unmarshal(yamlData, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshaling yaml")
	}
	out, err := toml.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling toml")
	}
	return out, nil
}

// TOMLToYAML converts TOML data to YAML data.
func TOMLToYAML(tomlData []byte) ([]byte, error) {
	var data any
	if err := toml.Unmarshal(tomlData, &data); err != nil {
		return nil, tomlError(err)
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling yaml")
	}
	return out, nil
}

// Decode unmarshals data into v. TOML goes through YAML first so that both
// encodings share the yaml struct tags and custom unmarshalers of v.
func Decode(format Format, data []byte, v any) error {
	if format == FormatTOML {
		converted, err := TOMLToYAML(data)
		if err != nil {
			return err
		}
		data = converted
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, "unmarshaling yaml")
	}
	return nil
}

// DecodeFile reads path and decodes it by extension.
func DecodeFile(path string, v any) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := fileutil.ReadFileWithLimit(path, 0)
	if err != nil {
		return err
	}
	if err := Decode(format, data, v); err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}
	return nil
}

// tomlError keeps the line and column of a decode error in the message.
func tomlError(err error) error {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return errors.Wrapf(err, "unmarshaling toml at line %d, column %d", row, col)
	}
	return errors.Wrap(err, "unmarshaling toml")
}
