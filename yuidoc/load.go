package yuidoc

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/teranos/dtsgen/errors"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of an input document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks YAML for .yaml/.yml files and JSON for everything else.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	doc, err := Decode(bytes.NewReader(data), FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return doc, nil
}

// Decode reads one document from r.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document

	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.WithHint(errors.Wrap(err, "invalid YAML document"),
				"YAML input must mirror the data.json layout (project, classes, classitems)")
		}
	default:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.WithHint(errors.Wrap(err, "invalid JSON document"),
				"pass the data.json written by `yuidoc --parse-only`")
		}
	}

	if doc.Classes == nil {
		doc.Classes = map[string]ClassDoc{}
	}
	return &doc, nil
}

// CheckVersion verifies the documented project version satisfies constraint.
// An empty constraint always passes.
func (p Project) CheckVersion(constraint string) error {
	if constraint == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(err, "invalid version constraint %s", constraint)
	}

	if p.Version == "" {
		return errors.WithHintf(errors.Wrap(errors.ErrVersionMismatch, "document has no project version"),
			"remove project.version_constraint or regenerate data.json with a versioned yuidoc.json")
	}

	v, err := semver.NewVersion(p.Version)
	if err != nil {
		return errors.Wrapf(err, "invalid project version %s", p.Version)
	}

	if !c.Check(v) {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrVersionMismatch, "%s %s does not satisfy %s", p.Name, p.Version, constraint),
			"generate from documentation matching %s", constraint)
	}
	return nil
}
