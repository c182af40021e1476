package project

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is where commands look for a project config when no
// --config flag is given.
const DefaultFile = ".assertion-analyzer.yaml"

// Config holds per-project scanner settings. The built-in macro set and
// the lenient truncation behavior stay in effect unless overridden here.
type Config struct {
	// Macros lists assertion macro names recognized in addition to the
	// built-in set.
	Macros []string `yaml:"macros"`
	// Strict errors on unterminated class or function bodies.
	Strict bool `yaml:"strict"`
	// Extensions selects the files picked up when walking a repository.
	Extensions []string `yaml:"extensions"`
}

// Default returns the configuration written by 'init'.
func Default() Config {
	return Config{
		Extensions: []string{".c", ".cc", ".cpp", ".cxx", ".h", ".hh", ".hpp"},
	}
}

// Load reads a YAML config file.
func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var conf Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&conf); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// Save writes the config as YAML, refusing to clobber an existing file
// unless overwrite is set.
func (c Config) Save(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%s already exists", path)
	}

	yml, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, yml, 0644)
}
