// Package metadata contains the DataStore model-metadata generator. It
// turns a parsed schema into a JSON metadata document and wraps it in a
// typed module, an untyped module, or a type declaration stub.
package metadata

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/dsgen/dsgen/gen"
	"github.com/dsgen/dsgen/schema"
)

// Target selects the textual form the metadata document is wrapped in.
type Target string

const (
	TargetJavaScript      Target = "javascript"
	TargetTypeScript      Target = "typescript"
	TargetTypeDeclaration Target = "typeDeclaration"
)

// schemaImport is the import line emitted for typed outputs.
const schemaImport = `import { Schema } from "@aws-amplify/datastore";`

// scalarTypes are the builtin GraphQL scalar tags, matched exactly.
var scalarTypes = map[string]struct{}{
	"ID":      {},
	"String":  {},
	"Int":     {},
	"Float":   {},
	"Boolean": {},
}

// UnsupportedTargetError is returned when the configured target matches
// none of the recognized values.
type UnsupportedTargetError struct {
	Target string
}

func (e *UnsupportedTargetError) Error() string {
	return fmt.Sprintf("metadata: unsupported target %q, supported targets are javascript and typescript", e.Target)
}

// Options contains the options for the metadata generator.
type Options struct {
	// Target is one of "javascript", "typescript" or "typeDeclaration".
	// Unset means "javascript".
	Target Target `json:"target"`
}

// Generator generates DataStore model metadata modules for a schema.
type Generator struct{}

// Generate renders the metadata module for the given schema and writes it
// through the GeneratorContext carried by ctx.
func (g *Generator) Generate(ctx context.Context, s *schema.Schema, opts map[string]interface{}) (err error) {
	defer func() {
		if err != nil {
			err = gen.GeneratorError{
				DocName: s.Name,
				GenName: "model",
				Msg:     err.Error(),
			}
		}
	}()

	gOpts, err := getOptions(opts)
	if err != nil {
		return
	}

	text, err := g.Render(s, gOpts.Target)
	if err != nil {
		return
	}

	gCtx := gen.Context(ctx)
	w, err := gCtx.Open(outputName(s.Name, gOpts.Target))
	if err != nil {
		return
	}
	defer w.Close()

	_, err = io.WriteString(w, text)
	return
}

// Render resolves relationship metadata, then dispatches on the target.
// An empty target renders the untyped module.
func (g *Generator) Render(s *schema.Schema, target Target) (string, error) {
	s.ProcessConnections()

	if target == "" {
		target = TargetJavaScript
	}

	switch target {
	case TargetTypeScript:
		return g.renderTypeScript(s)
	case TargetJavaScript:
		return g.renderJavaScript(s)
	case TargetTypeDeclaration:
		return g.renderTypeDeclaration(), nil
	default:
		return "", &UnsupportedTargetError{Target: string(target)}
	}
}

// renderTypeScript emits the typed module: the Schema import followed by a
// typed exported constant holding the serialized document.
func (g *Generator) renderTypeScript(s *schema.Schema) (string, error) {
	b, err := marshalDocument(g.Build(s))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\n\nexport const schema: Schema = %s;", schemaImport, b), nil
}

// renderJavaScript emits the untyped module: just the exported constant.
func (g *Generator) renderJavaScript(s *schema.Schema) (string, error) {
	b, err := marshalDocument(g.Build(s))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("export const schema = %s;", b), nil
}

// renderTypeDeclaration emits the fixed declaration stub. The metadata
// content is ignored entirely.
func (g *Generator) renderTypeDeclaration() string {
	return schemaImport + "\n\nexport declare const schema: Schema;"
}

func marshalDocument(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", strings.Repeat(" ", 4))
}

// Build constructs the metadata document. Models are keyed by their
// original schema name even though the entry's name field carries the
// display name; enums are keyed the opposite way. Both asymmetries are
// deliberate and relied upon downstream.
func (g *Generator) Build(s *schema.Schema) *Document {
	doc := &Document{
		Models:  NewMap[*Model](),
		Enums:   NewMap[Enum](),
		Version: s.Version(),
	}

	for _, m := range s.SelectedModels() {
		name := s.ModelName(m)
		entry := &Model{
			Name:             name,
			TargetName:       m.Name,
			PluralTargetName: schema.PluralName(name),
			Attributes:       modelAttributes(m),
			Fields:           NewMap[Field](),
			Syncable:         true,
		}

		for _, f := range m.Fields {
			fieldName := s.FieldName(f)
			entry.Fields.Set(fieldName, Field{
				Name:       fieldName,
				TargetName: f.Name,
				IsArray:    f.IsList,
				Type:       g.fieldType(s, f.Type),
				IsRequired: !f.IsNullable,
				Attributes: fieldAttributes(f),
			})
		}

		doc.Models.Set(m.Name, entry)
	}

	for _, e := range s.Enums() {
		doc.Enums.Set(s.EnumName(e), Enum{
			Name:   e.Name,
			Values: append([]string(nil), e.Values...),
		})
	}

	return doc
}

// fieldType resolves a raw schema type name: builtin scalar tag first, enum
// registry second, model reference otherwise. Unresolved model names are
// accepted as-is.
func (g *Generator) fieldType(s *schema.Schema, name string) FieldType {
	if _, ok := scalarTypes[name]; ok {
		return FieldType{Scalar: name}
	}
	if e := s.Enum(name); e != nil {
		return FieldType{Enum: s.EnumName(e)}
	}
	return FieldType{Model: name}
}

// modelAttributes copies the model's directives, one attribute per
// directive, arguments verbatim.
func modelAttributes(m *schema.Model) []Attribute {
	attrs := make([]Attribute, 0, len(m.Directives))
	for _, d := range m.Directives {
		attrs = append(attrs, Attribute{Type: d.Name, Properties: d.Arguments})
	}
	return attrs
}

// fieldAttributes emits at most one attribute, for fields carrying
// relationship info. HAS_MANY and HAS_ONE carry associatedWith; every other
// kind carries targetName. Never both.
func fieldAttributes(f *schema.Field) []Attribute {
	attrs := make([]Attribute, 0, 1)
	c := f.Connection
	if c == nil {
		return attrs
	}

	props := map[string]interface{}{
		"connectionType": string(c.Kind),
	}
	switch c.Kind {
	case schema.HasMany, schema.HasOne:
		props["associatedWith"] = schema.FieldName(c.AssociatedWith)
	default:
		props["targetName"] = c.TargetName
	}

	return append(attrs, Attribute{Type: "connection", Properties: props})
}

// getOptions decodes generator options. Precedence: CLI over default.
func getOptions(opts map[string]interface{}) (*Options, error) {
	gOpts := &Options{Target: TargetJavaScript}
	if opts == nil {
		return gOpts, nil
	}

	if v, ok := opts["target"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("metadata: target option must be a string, got %T", v)
		}
		gOpts.Target = Target(strings.Trim(s, `"`))
	}

	return gOpts, nil
}

// outputName derives the output file name from the document name.
func outputName(docName string, target Target) string {
	base := docName[:len(docName)-len(filepath.Ext(docName))]
	switch target {
	case TargetTypeScript:
		return base + ".ts"
	case TargetTypeDeclaration:
		return base + ".d.ts"
	default:
		return base + ".js"
	}
}
