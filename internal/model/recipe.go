package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays stored as JSON text
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return EncodeJSON([]string(a))
}

// EncodeJSON marshals v without HTML escaping, so stored text keeps
// characters like & < > as written
func EncodeJSON(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Scan implements the sql.Scanner interface. Values that are not a JSON array
// are read as comma-separated text, which is how older rows were written.
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("unsupported type for JSONBStringArray: %T", value)
	}

	*a = ParseStringList(raw)
	return nil
}

// ParseStringList decodes a JSON string array, falling back to comma-separated text
func ParseStringList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return list
	}
	parts := strings.Split(raw, ",")
	list = make([]string, 0, len(parts))
	for _, p := range parts {
		list = append(list, strings.TrimSpace(p))
	}
	return list
}

// JSONFloatMap stores a name -> amount mapping as JSON text
type JSONFloatMap map[string]float64

// Value implements the driver.Valuer interface
func (m JSONFloatMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return EncodeJSON(map[string]float64(m))
}

// Scan implements the sql.Scanner interface
func (m *JSONFloatMap) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*m = JSONFloatMap{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSONFloatMap: %T", value)
	}
	if len(raw) == 0 {
		*m = JSONFloatMap{}
		return nil
	}
	out := JSONFloatMap{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// RecipeRecord is the persisted row of the recipes table
type RecipeRecord struct {
	ID                  string           `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt           time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	Name                string           `gorm:"size:255;not null" json:"name"`
	Ingredients         JSONBStringArray `gorm:"type:text;not null" json:"ingredients"`
	Instructions        string           `gorm:"type:text" json:"instructions"`
	Servings            int              `json:"servings"`
	DietaryRestrictions JSONBStringArray `gorm:"type:text" json:"dietary_restrictions"`
	RecipeType          *string          `gorm:"size:50" json:"recipe_type"`
	PreparationTime     int              `json:"preparation_time"`
	CookingTime         int              `json:"cooking_time"`
}

// TableName pins the table name used by filter expressions
func (RecipeRecord) TableName() string { return "recipes" }

// BeforeCreate assigns a record ID when none is set
func (r *RecipeRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewRecordID()
	}
	return nil
}

// NutritionRecord is the persisted row of the nutrition_analyses table
type NutritionRecord struct {
	ID                 string       `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt          time.Time    `json:"created_at"`
	RecipeID           string       `gorm:"size:64;index;not null" json:"recipe_id"`
	CaloriesPerServing float64      `json:"calories_per_serving"`
	ProteinsG          float64      `json:"proteins_g"`
	CarbohydratesG     float64      `json:"carbohydrates_g"`
	FatsG              float64      `json:"fats_g"`
	FiberG             float64      `json:"fiber_g"`
	Vitamins           JSONFloatMap `gorm:"type:text" json:"vitamins"`
	Minerals           JSONFloatMap `gorm:"type:text" json:"minerals"`
	AnalysisDate       time.Time    `json:"analysis_date"`
}

// TableName pins the table name used by filter expressions
func (NutritionRecord) TableName() string { return "nutrition_analyses" }

func (n *NutritionRecord) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = NewRecordID()
	}
	if n.AnalysisDate.IsZero() {
		n.AnalysisDate = time.Now().UTC()
	}
	return nil
}

// NewRecordID returns an opaque "rec"-prefixed record identifier
func NewRecordID() string {
	return "rec" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
