package cmd

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	json "github.com/goccy/go-json"

	"github.com/dsgen/dsgen/gen"
	"github.com/dsgen/dsgen/schema"
)

// pluginRequest is the JSON document written to a plugin's stdin.
type pluginRequest struct {
	Schema    string                 `json:"schema"`
	Options   map[string]interface{} `json:"options"`
	OutputDir string                 `json:"outputDir"`
}

type pluginGenerator struct {
	Name   string
	Prefix string
}

func (g *pluginGenerator) Generate(ctx context.Context, s *schema.Schema, opts map[string]interface{}) error {
	path, err := exec.LookPath(g.Prefix + g.Name)
	if err != nil {
		return gen.GeneratorError{DocName: s.Name, GenName: g.Name, Msg: err.Error()}
	}

	var outDir string
	if d, ok := gen.Context(ctx).(interface{ Dir() string }); ok {
		outDir = d.Dir()
	}

	req := &pluginRequest{
		Schema:    s.SDL,
		Options:   opts,
		OutputDir: outDir,
	}

	var in, out bytes.Buffer
	err = json.NewEncoder(&in).Encode(req)
	if err != nil {
		return err
	}

	c := exec.CommandContext(ctx, path)
	c.Stdin = &in
	c.Stderr = &out

	err = c.Run()
	if err != nil {
		return gen.GeneratorError{DocName: s.Name, GenName: g.Name, Msg: err.Error()}
	}

	// Plugins report failure by writing to stderr.
	b := out.Bytes()
	if len(b) == 0 {
		return nil
	}

	return errors.New(string(b))
}
