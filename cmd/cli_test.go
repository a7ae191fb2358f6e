package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/dsgen/dsgen/schema"
)

type panicGenerator struct{}

func (panicGenerator) Generate(ctx context.Context, s *schema.Schema, opts map[string]interface{}) error {
	panic("boom")
}

func TestRun_PanicRecovery(t *testing.T) {
	c := NewCLI(WithFS(newTestFs(t)))
	c.RegisterGenerator(panicGenerator{}, "boom_out", "", "Panic on purpose.")

	err := c.Run([]string{"dsgen", "-I", "/home/graphql", "--boom_out", "/out", "schema.graphql"})
	if err == nil {
		t.Error("expected recovered panic to surface as an error")
		return
	}
	if !strings.Contains(err.Error(), "dsgen: recovered from unexpected panic") {
		t.Errorf("unexpected error: %s", err)
	}
}

func TestRegisterGenerator(t *testing.T) {
	c := NewCLI(WithFS(newTestFs(t)))
	c.RegisterGenerator(panicGenerator{}, "test_out", "test_opt", "Test generator.")

	rc := c.newRootCmd([]string{"dsgen"})
	if rc.Flags().Lookup("test_out") == nil {
		t.Error("expected test_out flag")
	}
	if rc.Flags().Lookup("test_opt") == nil {
		t.Error("expected test_opt flag")
	}
}
