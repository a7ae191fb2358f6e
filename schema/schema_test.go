package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const todoSDL = `
type Todo @model {
  id: ID!
  name: String!
  done: Boolean
  tags: [String]
  status: PostStatus
}

enum PostStatus {
  ACTIVE
  INACTIVE
}

type Metadata {
  key: String
}
`

func TestLoad(t *testing.T) {
	s, err := Load(Source{Name: "todo.graphql", Input: todoSDL})
	require.NoError(t, err)

	require.Equal(t, "todo.graphql", s.Name)

	models := s.Models()
	require.Len(t, models, 2)
	require.Equal(t, "Todo", models[0].Name)
	require.Equal(t, "Metadata", models[1].Name)

	selected := s.SelectedModels()
	require.Len(t, selected, 1)
	require.Equal(t, "Todo", selected[0].Name)

	todo := s.Model("Todo")
	require.NotNil(t, todo)
	require.True(t, todo.IsModel())
	require.False(t, s.Model("Metadata").IsModel())

	id := todo.Field("id")
	require.NotNil(t, id)
	require.Equal(t, "ID", id.Type)
	require.False(t, id.IsNullable)
	require.False(t, id.IsList)

	tags := todo.Field("tags")
	require.NotNil(t, tags)
	require.Equal(t, "String", tags.Type)
	require.True(t, tags.IsList)
	require.True(t, tags.IsNullable)

	enums := s.Enums()
	require.Len(t, enums, 1)
	require.Equal(t, "PostStatus", enums[0].Name)
	require.Equal(t, []string{"ACTIVE", "INACTIVE"}, enums[0].Values)
	require.NotNil(t, s.Enum("PostStatus"))
	require.Nil(t, s.Enum("NoSuchEnum"))
}

func TestLoadDirectiveArgs(t *testing.T) {
	s, err := Load(Source{Name: "post.graphql", Input: `
type Post @model(queries: { get: "post" }) @auth(rules: [{ allow: owner }]) {
  id: ID!
  title: String! @auth(rules: [{ allow: groups, groups: ["admin"] }])
}
`})
	require.NoError(t, err)

	post := s.Model("Post")
	require.NotNil(t, post)

	model := post.Directive("model")
	require.NotNil(t, model)
	require.Equal(t, map[string]interface{}{"get": "post"}, model.Arguments["queries"])

	auth := post.Directive("auth")
	require.NotNil(t, auth)
	rules, ok := auth.Arguments["rules"].([]interface{})
	require.True(t, ok)
	require.Len(t, rules, 1)
	require.Equal(t, map[string]interface{}{"allow": "owner"}, rules[0])

	title := post.Field("title")
	require.NotNil(t, title.Directive("auth"))
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		Name  string
		Input string
	}{
		{Name: "Unparseable", Input: "type {{{"},
		{Name: "UnknownDirective", Input: "type A @nosuchdirective { id: ID }"},
		{Name: "UndefinedType", Input: "type A { b: NoSuchType }"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			_, err := Load(Source{Name: "bad.graphql", Input: testCase.Input})
			require.Error(subT, err)
		})
	}

	_, err := Load()
	require.Error(t, err)
}

func TestNames(t *testing.T) {
	require.Equal(t, "TodoItem", TypeName("todo_item"))
	require.Equal(t, "Todo", TypeName("Todo"))
	require.Equal(t, "createdAt", FieldName("created_at"))
	require.Equal(t, "id", FieldName("id"))
	require.Equal(t, "Todos", PluralName("Todo"))
	require.Equal(t, "Statuses", PluralName("Status"))
}

func TestVersion(t *testing.T) {
	s1, err := Load(Source{Name: "todo.graphql", Input: todoSDL})
	require.NoError(t, err)
	s2, err := Load(Source{Name: "other.graphql", Input: todoSDL})
	require.NoError(t, err)

	v := s1.Version()
	require.NotEmpty(t, v)

	// Identical model registries fingerprint identically, independent of
	// the document name.
	require.Equal(t, v, s2.Version())
	require.Equal(t, v, s1.Version())

	s3, err := Load(Source{Name: "todo.graphql", Input: todoSDL + `
type Extra @model {
  id: ID!
}
`})
	require.NoError(t, err)
	require.NotEqual(t, v, s3.Version())

	// Non-model types count too.
	s4, err := Load(Source{Name: "todo.graphql", Input: todoSDL + `
type Audit {
  at: String
}
`})
	require.NoError(t, err)
	require.NotEqual(t, v, s4.Version())
	require.NotEqual(t, s3.Version(), s4.Version())
}
