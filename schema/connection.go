package schema

import "github.com/go-openapi/inflect"

// ConnectionKind tags the direction of a relationship between two models.
type ConnectionKind string

const (
	HasMany   ConnectionKind = "HAS_MANY"
	HasOne    ConnectionKind = "HAS_ONE"
	BelongsTo ConnectionKind = "BELONGS_TO"
)

// ConnectionInfo is the resolved relationship metadata for a field whose
// type is another selected model. Exactly one of AssociatedWith and
// TargetName is set: AssociatedWith for HAS_MANY/HAS_ONE (the schema name
// of the far-side field owning the foreign key), TargetName for BELONGS_TO
// (the foreign-key field on this side).
type ConnectionInfo struct {
	Kind           ConnectionKind
	ConnectedModel string
	AssociatedWith string
	TargetName     string
}

// ProcessConnections resolves relationship metadata for every field of
// every selected model. Each call recomputes from the registries, so it is
// safe to invoke more than once.
func (s *Schema) ProcessConnections() {
	for _, m := range s.SelectedModels() {
		for _, f := range m.Fields {
			related := s.Model(f.Type)
			if related == nil || !related.IsModel() {
				f.Connection = nil
				continue
			}
			f.Connection = s.resolveConnection(m, f, related)
		}
	}
}

func (s *Schema) resolveConnection(m *Model, f *Field, related *Model) *ConnectionInfo {
	conn := f.Directive("connection")
	paired := pairedField(m, f, related)

	info := &ConnectionInfo{ConnectedModel: related.Name}
	switch {
	case f.IsList:
		info.Kind = HasMany
		info.AssociatedWith = impliedForeignKey(m)
		if paired != nil {
			info.AssociatedWith = paired.Name
		}
	case paired != nil && paired.IsList, len(connectionFields(conn)) > 0:
		// This side owns the foreign key.
		info.Kind = BelongsTo
		info.TargetName = f.Name + "Id"
		if fields := connectionFields(conn); len(fields) > 0 {
			info.TargetName = fields[0]
		}
	default:
		info.Kind = HasOne
		info.AssociatedWith = impliedForeignKey(m)
		if paired != nil {
			info.AssociatedWith = paired.Name
		}
	}
	return info
}

// pairedField finds the field on the far side of a relation. An explicit
// @connection(name:) pairing wins; otherwise the first field typed with the
// near-side model is taken.
func pairedField(m *Model, f *Field, related *Model) *Field {
	name := connectionName(f.Directive("connection"))
	for _, rf := range related.Fields {
		if rf == f || rf.Type != m.Name {
			continue
		}
		if name != "" {
			if connectionName(rf.Directive("connection")) == name {
				return rf
			}
			continue
		}
		return rf
	}
	return nil
}

// impliedForeignKey names the foreign-key field assumed on the far side
// when no paired field is declared.
func impliedForeignKey(m *Model) string {
	return inflect.CamelizeDownFirst(m.Name) + "ID"
}

func connectionName(d *Directive) string {
	if d == nil {
		return ""
	}
	name, _ := d.Arguments["name"].(string)
	return name
}

func connectionFields(d *Directive) []string {
	if d == nil {
		return nil
	}
	raw, _ := d.Arguments["fields"].([]interface{})
	fields := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			fields = append(fields, s)
		}
	}
	return fields
}
