package database

import (
	"fmt"
	"strings"

	"github.com/pageza/alchemorsel-recettes/backend/internal/model"
)

// Expr is a boolean filter over a record table. Expressions render to
// parameterized SQL for querying and to a formula string for logs.
type Expr interface {
	writeSQL(b *sqlBuilder) error
	formula() string
}

// Columns a filter may reference
var filterColumns = map[string]string{
	"name":                 "Name",
	"ingredients":          "Ingredients",
	"instructions":         "Instructions",
	"recipe_type":          "Recipe Type",
	"dietary_restrictions": "Dietary Restrictions",
	"recipe_id":            "Recipe",
}

// Columns stored as JSON-encoded string arrays
var jsonArrayColumns = map[string]bool{
	"ingredients":          true,
	"dietary_restrictions": true,
}

type sqlBuilder struct {
	sb   strings.Builder
	args []interface{}
}

func (b *sqlBuilder) column(field string) (string, error) {
	if _, ok := filterColumns[field]; !ok {
		return "", fmt.Errorf("unknown filter field %q", field)
	}
	return field, nil
}

// ToSQL renders e as a WHERE clause and its bound arguments. A nil expression
// renders as an empty clause.
func ToSQL(e Expr) (string, []interface{}, error) {
	if e == nil {
		return "", nil, nil
	}
	b := &sqlBuilder{}
	if err := e.writeSQL(b); err != nil {
		return "", nil, err
	}
	return b.sb.String(), b.args, nil
}

// Formula renders e in spreadsheet formula syntax with quoted values escaped
func Formula(e Expr) string {
	if e == nil {
		return ""
	}
	return e.formula()
}

type junction struct {
	op    string
	exprs []Expr
}

// And matches records satisfying every expression. Nil expressions are skipped.
func And(exprs ...Expr) Expr { return join("AND", exprs) }

// Or matches records satisfying at least one expression. Nil expressions are skipped.
func Or(exprs ...Expr) Expr { return join("OR", exprs) }

func join(op string, exprs []Expr) Expr {
	kept := make([]Expr, 0, len(exprs))
	for _, e := range exprs {
		if e != nil {
			kept = append(kept, e)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return &junction{op: op, exprs: kept}
}

func (j *junction) writeSQL(b *sqlBuilder) error {
	b.sb.WriteString("(")
	for i, e := range j.exprs {
		if i > 0 {
			b.sb.WriteString(" " + j.op + " ")
		}
		if err := e.writeSQL(b); err != nil {
			return err
		}
	}
	b.sb.WriteString(")")
	return nil
}

func (j *junction) formula() string {
	parts := make([]string, len(j.exprs))
	for i, e := range j.exprs {
		parts[i] = e.formula()
	}
	return j.op + "(" + strings.Join(parts, ", ") + ")"
}

type search struct{ field, term string }

// Search matches a case-insensitive substring of field
func Search(field, term string) Expr { return &search{field: field, term: term} }

func (s *search) writeSQL(b *sqlBuilder) error {
	col, err := b.column(s.field)
	if err != nil {
		return err
	}
	term := strings.ToLower(s.term)
	if jsonArrayColumns[s.field] {
		// match the escaped form the array was stored in
		encoded, err := model.EncodeJSON(term)
		if err != nil {
			return err
		}
		term = strings.TrimSuffix(strings.TrimPrefix(encoded, `"`), `"`)
	}
	b.sb.WriteString("LOWER(" + col + ") LIKE ? ESCAPE '\\'")
	b.args = append(b.args, "%"+escapeLike(term)+"%")
	return nil
}

func (s *search) formula() string {
	return fmt.Sprintf("SEARCH(LOWER(%s), LOWER({%s}))", quote(s.term), filterColumns[s.field])
}

type eq struct{ field, value string }

// Eq matches an exact field value
func Eq(field, value string) Expr { return &eq{field: field, value: value} }

func (e *eq) writeSQL(b *sqlBuilder) error {
	col, err := b.column(e.field)
	if err != nil {
		return err
	}
	b.sb.WriteString(col + " = ?")
	b.args = append(b.args, e.value)
	return nil
}

func (e *eq) formula() string {
	return fmt.Sprintf("{%s} = %s", filterColumns[e.field], quote(e.value))
}

type contains struct{ field, value string }

// Contains matches records whose JSON array column holds value as an element
func Contains(field, value string) Expr { return &contains{field: field, value: value} }

func (c *contains) writeSQL(b *sqlBuilder) error {
	col, err := b.column(c.field)
	if err != nil {
		return err
	}
	encoded, err := model.EncodeJSON(c.value)
	if err != nil {
		return err
	}
	b.sb.WriteString(col + " LIKE ? ESCAPE '\\'")
	b.args = append(b.args, "%"+escapeLike(encoded)+"%")
	return nil
}

func (c *contains) formula() string {
	return fmt.Sprintf("FIND(%s, ARRAYJOIN({%s}))", quote(c.value), filterColumns[c.field])
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var formulaEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string {
	return `"` + formulaEscaper.Replace(s) + `"`
}
