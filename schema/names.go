package schema

import "github.com/go-openapi/inflect"

// TypeName returns the generated display name for a model or enum schema name.
func TypeName(name string) string { return inflect.Camelize(name) }

// FieldName returns the generated display name for a field schema name.
func FieldName(name string) string { return inflect.CamelizeDownFirst(name) }

// PluralName pluralizes and capitalizes a display name, e.g. "Todo" -> "Todos".
func PluralName(name string) string { return inflect.Capitalize(inflect.Pluralize(name)) }

// ModelName returns the display name of a model.
func (s *Schema) ModelName(m *Model) string { return TypeName(m.Name) }

// EnumName returns the display name of an enum.
func (s *Schema) EnumName(e *Enum) string { return TypeName(e.Name) }

// FieldName returns the display name of a field.
func (s *Schema) FieldName(f *Field) string { return FieldName(f.Name) }
