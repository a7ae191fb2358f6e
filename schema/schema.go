// Package schema builds the in-memory model, field, and enum registries that
// dsgen's generators consume. It owns SDL parsing, display naming,
// relationship resolution, and schema version fingerprinting.
package schema

// Schema holds the registries built from one or more SDL sources.
// Models and enums are kept in schema-traversal (source) order.
type Schema struct {
	// Name is the document name, e.g. "schema.graphql". Generators derive
	// output file names from it.
	Name string

	// SDL is the raw concatenated source text, passed through to plugin
	// generators untouched.
	SDL string

	models     map[string]*Model
	modelOrder []string
	enums      map[string]*Enum
	enumOrder  []string
}

// Model is a GraphQL object type. Object types carrying the @model
// directive map to persisted entities; the rest (Query, Mutation, plain
// output types) still live in the registry so version fingerprinting sees
// the full schema.
type Model struct {
	Name       string
	Directives []*Directive
	Fields     []*Field
}

// Field is a single field of a model.
type Field struct {
	Name       string
	Type       string
	IsList     bool
	IsNullable bool
	Directives []*Directive

	// Connection is resolved by ProcessConnections for fields whose type
	// is another selected model. Nil otherwise.
	Connection *ConnectionInfo
}

// Directive is an applied directive with its arguments decoded verbatim.
type Directive struct {
	Name      string
	Arguments map[string]interface{}
}

// Enum is a GraphQL enum type with its values in declaration order.
type Enum struct {
	Name   string
	Values []string
}

// Models returns every object type in source order.
func (s *Schema) Models() []*Model {
	models := make([]*Model, 0, len(s.modelOrder))
	for _, name := range s.modelOrder {
		models = append(models, s.models[name])
	}
	return models
}

// SelectedModels returns the object types carrying @model, in source order.
func (s *Schema) SelectedModels() []*Model {
	var models []*Model
	for _, name := range s.modelOrder {
		if m := s.models[name]; m.IsModel() {
			models = append(models, m)
		}
	}
	return models
}

// Model returns the object type with the given schema name, or nil.
func (s *Schema) Model(name string) *Model { return s.models[name] }

// Enums returns every enum in source order.
func (s *Schema) Enums() []*Enum {
	enums := make([]*Enum, 0, len(s.enumOrder))
	for _, name := range s.enumOrder {
		enums = append(enums, s.enums[name])
	}
	return enums
}

// Enum returns the enum with the given schema name, or nil.
func (s *Schema) Enum(name string) *Enum { return s.enums[name] }

func (s *Schema) addModel(m *Model) {
	if _, exists := s.models[m.Name]; !exists {
		s.modelOrder = append(s.modelOrder, m.Name)
	}
	s.models[m.Name] = m
}

func (s *Schema) addEnum(e *Enum) {
	if _, exists := s.enums[e.Name]; !exists {
		s.enumOrder = append(s.enumOrder, e.Name)
	}
	s.enums[e.Name] = e
}

// IsModel reports whether the type carries the @model directive.
func (m *Model) IsModel() bool { return m.Directive("model") != nil }

// Directive returns the first applied directive with the given name, or nil.
func (m *Model) Directive(name string) *Directive {
	for _, d := range m.Directives {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Field returns the field with the given schema name, or nil.
func (m *Model) Field(name string) *Field {
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Directive returns the first applied directive with the given name, or nil.
func (f *Field) Directive(name string) *Directive {
	for _, d := range f.Directives {
		if d.Name == name {
			return d
		}
	}
	return nil
}
