package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSQL(t *testing.T) {
	tests := []struct {
		name   string
		expr   Expr
		clause string
		args   []interface{}
	}{
		{
			name:   "nil",
			expr:   nil,
			clause: "",
		},
		{
			name:   "search lowercases and escapes",
			expr:   Search("name", "50%_Off"),
			clause: `LOWER(name) LIKE ? ESCAPE '\'`,
			args:   []interface{}{`%50\%\_off%`},
		},
		{
			name:   "search in json arrays uses the stored escaping",
			expr:   Search("ingredients", `Fish & "Chips"`),
			clause: `LOWER(ingredients) LIKE ? ESCAPE '\'`,
			args:   []interface{}{`%fish & \\"chips\\"%`},
		},
		{
			name:   "search in plain columns keeps the term",
			expr:   Search("name", `Fish & "Chips"`),
			clause: `LOWER(name) LIKE ? ESCAPE '\'`,
			args:   []interface{}{`%fish & "chips"%`},
		},
		{
			name:   "contains keeps html characters",
			expr:   Contains("ingredients", "sel <fin>"),
			clause: `ingredients LIKE ? ESCAPE '\'`,
			args:   []interface{}{`%"sel <fin>"%`},
		},
		{
			name:   "eq",
			expr:   Eq("recipe_type", "Dessert"),
			clause: "recipe_type = ?",
			args:   []interface{}{"Dessert"},
		},
		{
			name:   "contains matches a json element",
			expr:   Contains("dietary_restrictions", "Sans gluten"),
			clause: `dietary_restrictions LIKE ? ESCAPE '\'`,
			args:   []interface{}{`%"Sans gluten"%`},
		},
		{
			name: "nested junctions",
			expr: And(
				Search("ingredients", "tomate"),
				Or(Contains("dietary_restrictions", "Vegan"), Contains("dietary_restrictions", "Halal")),
			),
			clause: `(LOWER(ingredients) LIKE ? ESCAPE '\' AND (dietary_restrictions LIKE ? ESCAPE '\' OR dietary_restrictions LIKE ? ESCAPE '\'))`,
			args:   []interface{}{"%tomate%", `%"Vegan"%`, `%"Halal"%`},
		},
		{
			name:   "injection stays in arguments",
			expr:   Eq("name", "x' OR '1'='1"),
			clause: "name = ?",
			args:   []interface{}{"x' OR '1'='1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args, err := ToSQL(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.clause, clause)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestToSQL_UnknownField(t *testing.T) {
	_, _, err := ToSQL(And(Eq("name", "a"), Eq("password; DROP TABLE recipes", "b")))
	assert.Error(t, err)
}

func TestJunctions(t *testing.T) {
	assert.Nil(t, And())
	assert.Nil(t, Or(nil, nil))

	single := Eq("name", "a")
	assert.Equal(t, single, And(nil, single))
}

func TestFormula(t *testing.T) {
	expr := And(
		Search("name", `Tarte "fine"`),
		Eq("recipe_type", "Dessert"),
		Or(Contains("dietary_restrictions", "Vegan"), Contains("dietary_restrictions", `a\b`)),
	)

	assert.Equal(t,
		`AND(SEARCH(LOWER("Tarte \"fine\""), LOWER({Name})), {Recipe Type} = "Dessert", `+
			`OR(FIND("Vegan", ARRAYJOIN({Dietary Restrictions})), FIND("a\\b", ARRAYJOIN({Dietary Restrictions}))))`,
		Formula(expr))
	assert.Equal(t, "", Formula(nil))
}
