package automatic

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// MapEntry is one map to solve.
type MapEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Manifest lists the maps of a batch. In YAML:
//
//	maps:
//	  - name: contest1
//	    path: maps/contest1.map
//	  - path: maps/flood1.map
//
// Relative paths are relative to the manifest file. A missing name defaults
// to the file name without its extension.
type Manifest struct {
	Maps []MapEntry `yaml:"maps"`
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i, e := range m.Maps {
		if e.Path == "" {
			return nil, fmt.Errorf("%s: map %d has no path", path, i+1)
		}
		if !filepath.IsAbs(e.Path) {
			m.Maps[i].Path = filepath.Join(dir, e.Path)
		}
	}
	m.fillNames()
	return m, nil
}

// ManifestFromPaths builds a manifest out of plain map file paths.
func ManifestFromPaths(paths []string) *Manifest {
	m := &Manifest{Maps: lo.Map(paths, func(p string, _ int) MapEntry {
		return MapEntry{Path: p}
	})}
	m.fillNames()
	return m
}

func (m *Manifest) fillNames() {
	for i, e := range m.Maps {
		if e.Name == "" {
			base := filepath.Base(e.Path)
			m.Maps[i].Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
	}
}
