package symbols

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ModuleEntry pairs a module name with its on-disk symbol file.
type ModuleEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// tableFile is the shape of modules.yaml.
type tableFile struct {
	Modules []ModuleEntry `yaml:"modules"`
}

// LoadTable reads the optional module path table. A missing file yields an
// empty table (no extra modules configured); a malformed file is an error the
// operator should see at startup, before any automation runs.
func LoadTable(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read module table: %w", err)
	}

	var cfg tableFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	table := make(map[string]string, len(cfg.Modules))
	for _, m := range cfg.Modules {
		if m.Name == "" || m.Path == "" {
			continue
		}
		table[m.Name] = m.Path
	}
	return table, nil
}
