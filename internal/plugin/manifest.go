package plugin

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/verbkit-labs/verbkit/internal/command"
)

// ManifestFileName is the manifest file looked for in each plugin directory.
const ManifestFileName = "plugin.yaml"

// Manifest describes one external plugin. A plugin directory contains this
// file plus whatever its entrypoint needs.
type Manifest struct {
	Name          string          `yaml:"name" json:"name"`
	Verb          string          `yaml:"verb" json:"verb"`
	Version       string          `yaml:"version" json:"version"`
	Summary       string          `yaml:"summary,omitempty" json:"summary,omitempty"`
	MinCLIVersion string          `yaml:"min_cli_version,omitempty" json:"min_cli_version,omitempty"`
	Entry         []string        `yaml:"entry" json:"entry"`
	Params        []ManifestParam `yaml:"params,omitempty" json:"params,omitempty"`
}

// ManifestParam mirrors command.Param in manifest form.
type ManifestParam struct {
	Name     string   `yaml:"name" json:"name"`
	Kind     string   `yaml:"kind,omitempty" json:"kind,omitempty"`
	Required bool     `yaml:"required,omitempty" json:"required,omitempty"`
	Default  string   `yaml:"default,omitempty" json:"default,omitempty"`
	Choices  []string `yaml:"choices,omitempty" json:"choices,omitempty"`
	Usage    string   `yaml:"usage,omitempty" json:"usage,omitempty"`
}

// ParseManifest reads and unmarshals a plugin manifest. It does not validate;
// callers run the schema validator on the raw bytes first.
func ParseManifest(path string) (*Manifest, error) {
	data, err := readManifestBytes(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

func readManifestBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return data, nil
}

// CommandParams converts the manifest's parameter declarations to the
// registry's Param form. An omitted kind means string.
func (m *Manifest) CommandParams() []command.Param {
	params := make([]command.Param, 0, len(m.Params))
	for _, p := range m.Params {
		kind := command.Kind(p.Kind)
		if p.Kind == "" {
			kind = command.KindString
		}
		params = append(params, command.Param{
			Name:     p.Name,
			Kind:     kind,
			Required: p.Required,
			Default:  p.Default,
			Choices:  p.Choices,
			Usage:    p.Usage,
		})
	}
	return params
}
