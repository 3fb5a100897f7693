package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBStringArray_Scan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  JSONBStringArray
	}{
		{name: "json", value: `["Vegan","Sans gluten"]`, want: JSONBStringArray{"Vegan", "Sans gluten"}},
		{name: "bytes", value: []byte(`["Halal"]`), want: JSONBStringArray{"Halal"}},
		{name: "comma separated", value: "Vegan, Sans gluten", want: JSONBStringArray{"Vegan", "Sans gluten"}},
		{name: "empty", value: "", want: JSONBStringArray{}},
		{name: "null", value: nil, want: JSONBStringArray{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got JSONBStringArray
			require.NoError(t, got.Scan(tt.value))
			assert.Equal(t, tt.want, got)
		})
	}

	var got JSONBStringArray
	assert.Error(t, got.Scan(42))
}

func TestJSONBStringArray_Value(t *testing.T) {
	v, err := JSONBStringArray{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = JSONBStringArray{"Végétarien"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Végétarien"]`, v)

	v, err = JSONBStringArray{"Fish & chips", "sel <fin>"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Fish & chips","sel <fin>"]`, v)
}

func TestJSONFloatMap_Scan(t *testing.T) {
	var m JSONFloatMap
	require.NoError(t, m.Scan(`{"Iron":2.5}`))
	assert.Equal(t, JSONFloatMap{"Iron": 2.5}, m)

	require.NoError(t, m.Scan(nil))
	assert.Equal(t, JSONFloatMap{}, m)

	assert.Error(t, m.Scan("not json"))
}

func TestNewRecordID(t *testing.T) {
	a, b := NewRecordID(), NewRecordID()
	assert.Regexp(t, `^rec[0-9a-f]{32}$`, a)
	assert.NotEqual(t, a, b)
}
