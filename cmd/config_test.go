package cmd

import (
	"testing"

	"github.com/spf13/afero"
)

func TestLoadConfig(t *testing.T) {
	valid := `
schema:
  - schema.graphql
generates:
  - out: ./models
    target: typescript
  - out: ./types
    target: typeDeclaration
    generator: model_out
`

	t.Run("MissingDefault", func(subT *testing.T) {
		cfg, err := loadConfig(afero.NewMemMapFs(), "")
		if err != nil {
			subT.Error(err)
			return
		}
		if cfg != nil {
			subT.Errorf("expected no config: %v", cfg)
		}
	})

	t.Run("MissingExplicit", func(subT *testing.T) {
		_, err := loadConfig(afero.NewMemMapFs(), "nope.yml")
		if err == nil {
			subT.Error("expected error for missing explicit config")
		}
	})

	t.Run("Default", func(subT *testing.T) {
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, defaultConfigFile, []byte(valid), 0644); err != nil {
			subT.Fatal(err)
		}

		cfg, err := loadConfig(fs, "")
		if err != nil {
			subT.Error(err)
			return
		}
		if cfg == nil {
			subT.Error("expected config")
			return
		}

		if len(cfg.Schema) != 1 || cfg.Schema[0] != "schema.graphql" {
			subT.Errorf("mismatched schema files: %v", cfg.Schema)
		}
		if len(cfg.Generates) != 2 {
			subT.Errorf("mismatched generates entries: %v", cfg.Generates)
			return
		}
		if cfg.Generates[0].Target != "typescript" {
			subT.Errorf("mismatched target: %s", cfg.Generates[0].Target)
		}
		if cfg.Generates[1].Generator != "model_out" {
			subT.Errorf("mismatched generator: %s", cfg.Generates[1].Generator)
		}
	})

	t.Run("Malformed", func(subT *testing.T) {
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "bad.yml", []byte("schema: {nope"), 0644); err != nil {
			subT.Fatal(err)
		}

		if _, err := loadConfig(fs, "bad.yml"); err == nil {
			subT.Error("expected error for malformed config")
		}
	})
}

func TestRootCmd_ConfigUnknownGenerator(t *testing.T) {
	fs := newTestFs(t)
	cfg := `
schema:
  - schema.graphql
generates:
  - out: /cfgout
    generator: nosuch_out
`
	if err := afero.WriteFile(fs, "/proj/dsgen.yml", []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	err := newTestCLI(fs).Run([]string{"dsgen", "--config", "/proj/dsgen.yml", "-I", "/home/graphql"})
	if err == nil {
		t.Error("expected error for unknown generator in config")
	}
}
