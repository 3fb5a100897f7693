package model

// Vocabulary holds the allow-listed values the record store accepts for
// dietary restrictions and recipe categories.
type Vocabulary struct {
	Restrictions    []string
	Categories      []string
	CategoryMapping map[string]string
}

// DefaultVocabulary returns the French vocabulary configured on the recipes table
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Restrictions: []string{
			"Végétarien",
			"Vegan",
			"Sans gluten",
			"Sans lactose",
			"Halal",
			"Casher",
			"Sans sucre",
			"Cétogène",
			"Paleo",
			"Sans noix",
		},
		Categories: []string{
			"Entrée",
			"Plat principal",
			"Dessert",
			"Salade",
			"Soupe",
			"Pâtes",
			"Riz",
			"Poulet",
			"Poisson",
			"Viande",
			"Légumes",
		},
		CategoryMapping: map[string]string{
			"appetizer":   "Entrée",
			"main":        "Plat principal",
			"dessert":     "Dessert",
			"Appetizer":   "Entrée",
			"Main Course": "Plat principal",
			"Plat":        "Plat principal",
		},
	}
}

// FilterRestrictions keeps only the allow-listed restrictions, preserving order.
// Unknown labels are dropped silently.
func (v Vocabulary) FilterRestrictions(restrictions []string) []string {
	out := make([]string, 0, len(restrictions))
	for _, r := range restrictions {
		if contains(v.Restrictions, r) {
			out = append(out, r)
		}
	}
	return out
}

// MapCategory maps a category label onto the persisted vocabulary. The second
// return value is false when the label cannot be mapped and the field must be omitted.
func (v Vocabulary) MapCategory(category string) (string, bool) {
	if contains(v.Categories, category) {
		return category, true
	}
	if mapped, ok := v.CategoryMapping[category]; ok && contains(v.Categories, mapped) {
		return mapped, true
	}
	return "", false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
