package site

import (
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/translate"
	"github.com/thoreinstein/docsite/pkg/fileutil"
)

// Load reads a site file. The format follows the extension: .yaml, .yml or
// .toml. Top-level keys docsite does not model are remembered and reported
// as warnings by Validate.
func Load(path string) (*Site, error) {
	format, err := translate.FormatOf(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Wrapf(errors.ErrNotFound, "site file %s", path)
	}
	data, err := fileutil.ReadFileWithLimit(path, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "reading site file %s", path)
	}
	s, err := Parse(format, data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding site file %s", path)
	}
	return s, nil
}

// Parse decodes a site document.
func Parse(format translate.Format, data []byte) (*Site, error) {
	var s Site
	if err := translate.Decode(format, data, &s); err != nil {
		return nil, err
	}

	var keys map[string]any
	if err := translate.Decode(format, data, &keys); err != nil {
		return nil, err
	}
	known := knownKeys()
	for k := range keys {
		if _, ok := known[k]; !ok {
			s.unknown = append(s.unknown, k)
		}
	}
	sort.Strings(s.unknown)
	return &s, nil
}

func knownKeys() map[string]struct{} {
	t := reflect.TypeOf(Site{})
	keys := make(map[string]struct{}, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			keys[name] = struct{}{}
		}
	}
	return keys
}
