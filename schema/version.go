package schema

import (
	"crypto/md5"
	"encoding/hex"

	json "github.com/goccy/go-json"
)

type versionDirective struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
}

type versionField struct {
	Name       string             `json:"name"`
	Type       string             `json:"type"`
	IsList     bool               `json:"isList"`
	IsNullable bool               `json:"isNullable"`
	Directives []versionDirective `json:"directives,omitempty"`
}

type versionModel struct {
	Name       string             `json:"name"`
	Directives []versionDirective `json:"directives,omitempty"`
	Fields     []versionField     `json:"fields"`
}

// Version fingerprints the full, unfiltered model registry. Any structural
// change to a model, field, or directive yields a new version.
func (s *Schema) Version() string {
	models := make([]versionModel, 0, len(s.modelOrder))
	for _, m := range s.Models() {
		vm := versionModel{
			Name:       m.Name,
			Directives: versionDirectives(m.Directives),
			Fields:     make([]versionField, 0, len(m.Fields)),
		}
		for _, f := range m.Fields {
			vm.Fields = append(vm.Fields, versionField{
				Name:       f.Name,
				Type:       f.Type,
				IsList:     f.IsList,
				IsNullable: f.IsNullable,
				Directives: versionDirectives(f.Directives),
			})
		}
		models = append(models, vm)
	}

	// Map keys marshal sorted, so the serialization is canonical.
	b, err := json.Marshal(models)
	if err != nil {
		return ""
	}
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}

func versionDirectives(dirs []*Directive) []versionDirective {
	if len(dirs) == 0 {
		return nil
	}
	out := make([]versionDirective, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, versionDirective{Name: d.Name, Arguments: d.Arguments})
	}
	return out
}
