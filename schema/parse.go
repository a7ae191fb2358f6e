package schema

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// Source is a named SDL input.
type Source struct {
	Name  string
	Input string
}

// builtins declares the directives dsgen understands, so user schemas
// validate without having to define them.
const builtins = `
directive @model(queries: ModelQueryMap, mutations: ModelMutationMap, subscriptions: ModelSubscriptionMap) on OBJECT

directive @connection(name: String, keyName: String, fields: [String!]) on FIELD_DEFINITION

directive @key(name: String, fields: [String!]!, queryField: String) repeatable on OBJECT

directive @auth(rules: [AuthRule!]!) on OBJECT | FIELD_DEFINITION

input ModelQueryMap {
  get: String
  list: String
}

input ModelMutationMap {
  create: String
  update: String
  delete: String
}

input ModelSubscriptionMap {
  onCreate: [String]
  onUpdate: [String]
  onDelete: [String]
}

enum AuthStrategy {
  owner
  groups
  private
  public
}

input AuthRule {
  allow: AuthStrategy!
  ownerField: String
  identityClaim: String
  groups: [String]
  groupsField: String
  operations: [String]
}
`

var builtinSource = &ast.Source{Name: "dsgen/directives.graphql", Input: builtins, BuiltIn: true}

// Load parses and validates one or more SDL sources and builds the model
// and enum registries in source order. The first source names the document.
func Load(sources ...Source) (*Schema, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("schema: no sources given")
	}

	srcs := make([]*ast.Source, 0, len(sources)+2)
	srcs = append(srcs, validator.Prelude, builtinSource)

	user := make(map[string]bool, len(sources))
	sdl := make([]string, 0, len(sources))
	for _, src := range sources {
		srcs = append(srcs, &ast.Source{Name: src.Name, Input: src.Input})
		user[src.Name] = true
		sdl = append(sdl, src.Input)
	}

	doc, err := parser.ParseSchemas(srcs...)
	if err != nil {
		return nil, err
	}
	if _, err := validator.ValidateSchemaDocument(doc); err != nil {
		return nil, err
	}

	s := &Schema{
		Name:   sources[0].Name,
		SDL:    strings.Join(sdl, "\n"),
		models: make(map[string]*Model),
		enums:  make(map[string]*Enum),
	}
	for _, def := range doc.Definitions {
		if def.Position == nil || def.Position.Src == nil || !user[def.Position.Src.Name] {
			continue
		}

		switch def.Kind {
		case ast.Object:
			s.addModel(buildModel(def))
		case ast.Enum:
			s.addEnum(buildEnum(def))
		}
	}

	return s, nil
}

func buildModel(def *ast.Definition) *Model {
	m := &Model{
		Name:       def.Name,
		Directives: buildDirectives(def.Directives),
		Fields:     make([]*Field, 0, len(def.Fields)),
	}

	for _, f := range def.Fields {
		m.Fields = append(m.Fields, &Field{
			Name:       f.Name,
			Type:       namedType(f.Type),
			IsList:     f.Type.Elem != nil,
			IsNullable: !f.Type.NonNull,
			Directives: buildDirectives(f.Directives),
		})
	}

	return m
}

func buildEnum(def *ast.Definition) *Enum {
	e := &Enum{
		Name:   def.Name,
		Values: make([]string, 0, len(def.EnumValues)),
	}
	for _, v := range def.EnumValues {
		e.Values = append(e.Values, v.Name)
	}
	return e
}

func buildDirectives(list ast.DirectiveList) []*Directive {
	if len(list) == 0 {
		return nil
	}

	out := make([]*Directive, 0, len(list))
	for _, d := range list {
		dir := &Directive{Name: d.Name}
		if len(d.Arguments) > 0 {
			dir.Arguments = make(map[string]interface{}, len(d.Arguments))
			for _, a := range d.Arguments {
				v, err := a.Value.Value(nil)
				if err != nil {
					continue
				}
				dir.Arguments[a.Name] = v
			}
		}
		out = append(out, dir)
	}
	return out
}

// namedType unwraps list wrappers down to the named type.
func namedType(t *ast.Type) string {
	for t.Elem != nil {
		t = t.Elem
	}
	return t.NamedType
}
