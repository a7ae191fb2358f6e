package metadata

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestMapOrder(t *testing.T) {
	m := NewMap[int]()
	m.Set("c", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	require.Equal(t, 3, m.Len())
	require.Equal(t, []string{"c", "a", "b"}, m.Keys())

	// Re-setting keeps the original position.
	m.Set("a", 4)
	require.Equal(t, []string{"c", "a", "b"}, m.Keys())
	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 4, v)

	b, err := json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `{"c":1,"a":4,"b":3}`, string(b))
}

func TestMapUnmarshalOrder(t *testing.T) {
	m := new(Map[int])
	require.NoError(t, json.Unmarshal([]byte(`{"b":1,"a":2,"z":3}`), m))
	require.Equal(t, []string{"b", "a", "z"}, m.Keys())

	require.Error(t, json.Unmarshal([]byte(`[1,2]`), m))
}

func TestFieldTypeJSON(t *testing.T) {
	testCases := []struct {
		Name string
		In   FieldType
		Out  string
	}{
		{Name: "Scalar", In: FieldType{Scalar: "String"}, Out: `"String"`},
		{Name: "Enum", In: FieldType{Enum: "BlogStatus"}, Out: `{"enum":"BlogStatus"}`},
		{Name: "Model", In: FieldType{Model: "Post"}, Out: `{"model":"Post"}`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			b, err := json.Marshal(testCase.In)
			require.NoError(subT, err)
			require.Equal(subT, testCase.Out, string(b))

			var got FieldType
			require.NoError(subT, json.Unmarshal(b, &got))
			require.Equal(subT, testCase.In, got)
		})
	}

	_, err := json.Marshal(FieldType{})
	require.Error(t, err)
}
