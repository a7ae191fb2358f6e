package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// defaultConfigFile is looked for in the working directory when no
// --config flag is given.
const defaultConfigFile = "dsgen.yml"

// projectConfig is the YAML project file. It names schema inputs and the
// generators to run, mirroring what the *_out flags express.
type projectConfig struct {
	Schema    []string         `yaml:"schema"`
	Generates []generatesEntry `yaml:"generates"`
}

type generatesEntry struct {
	Out       string `yaml:"out"`
	Target    string `yaml:"target"`
	Generator string `yaml:"generator"`
}

// loadConfig reads the project config. A missing default file is not an
// error; a missing explicitly named file is.
func loadConfig(fs afero.Fs, name string) (*projectConfig, error) {
	explicit := name != ""
	if !explicit {
		name = defaultConfigFile
	}

	exists, err := afero.Exists(fs, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		if explicit {
			return nil, fmt.Errorf("dsgen: config file not found: %s", name)
		}
		return nil, nil
	}

	b, err := afero.ReadFile(fs, name)
	if err != nil {
		return nil, err
	}

	cfg := new(projectConfig)
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("dsgen: malformed config file %s: %w", name, err)
	}

	zap.L().Info("loaded project config", zap.String("name", name))
	return cfg, nil
}

// configGenerators resolves config entries against the registered *_out
// flags and creates their output directories.
func (c *rootCmd) configGenerators(cmd *cobra.Command, cfg *projectConfig) ([]*generator, error) {
	geners := make([]*generator, 0, len(cfg.Generates))
	for _, e := range cfg.Generates {
		name := e.Generator
		if name == "" {
			name = "model_out"
		}

		f := cmd.Flags().Lookup(name)
		if f == nil {
			return nil, fmt.Errorf("dsgen: config names unknown generator: %s", name)
		}
		gf, ok := f.Value.(genFlag)
		if !ok {
			return nil, fmt.Errorf("dsgen: config names non-generator flag: %s", name)
		}

		outDir := e.Out
		if !filepath.IsAbs(outDir) {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			outDir = filepath.Join(wd, outDir)
		}

		if err := c.fs.MkdirAll(outDir, 0755); err != nil {
			return nil, err
		}

		opts := map[string]interface{}{}
		if e.Target != "" {
			opts["target"] = e.Target
		}

		geners = append(geners, &generator{Generator: gf.g, opts: opts, outDir: outDir})
	}
	return geners, nil
}
