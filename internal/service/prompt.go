package service

import (
	"fmt"
	"strings"

	"github.com/pageza/alchemorsel-recettes/backend/internal/types"
)

// System personas sent as the first message of every completion
const (
	ChefPersona = "Tu es un chef cuisinier professionnel expert en création de recettes.\n" +
		"Tu dois créer des recettes délicieuses, équilibrées et adaptées aux contraintes données.\n" +
		"Réponds UNIQUEMENT avec un JSON valide selon le format demandé."

	NutritionistPersona = "Tu es un nutritionniste expert en analyse de recettes.\n" +
		"Tu dois fournir une analyse nutritionnelle précise et détaillée selon les contraintes données.\n" +
		"Réponds UNIQUEMENT avec un JSON valide selon le format demandé."
)

const recipeRules = `RÈGLES IMPORTANTES :
- Utilise TOUS les ingrédients fournis comme base de la recette
- Ajoute les ingrédients complémentaires nécessaires (épices, assaisonnements, huile, etc.)
- Respecte scrupuleusement toutes les restrictions alimentaires mentionnées
- Crée une recette équilibrée et savoureuse
- Donne des instructions précises étape par étape
- Indique des quantités réalistes pour chaque ingrédient
- Estime des temps de préparation et cuisson réalistes selon la complexité de la recette
`

const recipeSkeleton = `{
  "name": "Nom appétissant de la recette",
  "ingredients": [
    "250g de [ingrédient 1]",
    "2 cuillères à soupe de [ingrédient 2]"
  ],
  "instructions": "Étape 1: [action détaillée]\nÉtape 2: [action détaillée]\n[...autres étapes...]",
  "preparationTime": [minutes, nombre entier],
  "cookingTime": [minutes, nombre entier]
}`

const nutritionRules = `INSTRUCTIONS :
- Calcule les valeurs nutritionnelles PAR PORTION
- Base-toi sur les données nutritionnelles USDA
- Inclus les vitamines et minéraux listés ci-dessous, en milligrammes
`

// BuildRecipePrompt renders the user prompt for recipe generation
func BuildRecipePrompt(req types.GenerationRequest) string {
	var b strings.Builder
	b.WriteString("Crée une recette de cuisine française délicieuse avec les contraintes suivantes :\n\n")
	fmt.Fprintf(&b, "INGRÉDIENTS OBLIGATOIRES À UTILISER : %s\n", strings.Join(req.Ingredients, ", "))
	fmt.Fprintf(&b, "NOMBRE DE PERSONNES : %d\n", req.Servings)
	fmt.Fprintf(&b, "TYPE DE PLAT : %s\n", req.Category.Label())
	if len(req.DietaryRestrictions) > 0 {
		fmt.Fprintf(&b, "Restrictions alimentaires à respecter ABSOLUMENT : %s\n", strings.Join(req.DietaryRestrictions, ", "))
	}
	b.WriteString("\n")
	b.WriteString(recipeRules)
	b.WriteString("\nFORMAT DE RÉPONSE OBLIGATOIRE (JSON uniquement, sans texte supplémentaire) :\n")
	b.WriteString(recipeSkeleton)
	return b.String()
}

// BuildNutritionPrompt renders the user prompt for nutrition analysis
func BuildNutritionPrompt(req types.NutritionRequest) string {
	var b strings.Builder
	b.WriteString("Analyse la valeur nutritionnelle de cette recette avec précision scientifique :\n\n")
	fmt.Fprintf(&b, "INGRÉDIENTS : %s\n", strings.Join(req.Ingredients, ", "))
	fmt.Fprintf(&b, "NOMBRE DE PORTIONS : %d\n\n", req.Servings)
	b.WriteString(nutritionRules)
	b.WriteString("\nFORMAT DE RÉPONSE OBLIGATOIRE (JSON uniquement, sans texte supplémentaire) :\n")
	b.WriteString("{\n")
	b.WriteString("  \"caloriesPerServing\": [nombre entier],\n")
	b.WriteString("  \"proteins\": [grammes avec 1 décimale],\n")
	b.WriteString("  \"carbohydrates\": [grammes avec 1 décimale],\n")
	b.WriteString("  \"fats\": [grammes avec 1 décimale],\n")
	b.WriteString("  \"fiber\": [grammes avec 1 décimale],\n")
	writeKeyBlock(&b, "vitamins", VitaminKeys, ",")
	writeKeyBlock(&b, "minerals", MineralKeys, "")
	b.WriteString("}")
	return b.String()
}

func writeKeyBlock(b *strings.Builder, name string, keys []string, trailer string) {
	fmt.Fprintf(b, "  %q: {\n", name)
	for i, key := range keys {
		sep := ","
		if i == len(keys)-1 {
			sep = ""
		}
		fmt.Fprintf(b, "    %q: [milligrammes]%s\n", key, sep)
	}
	fmt.Fprintf(b, "  }%s\n", trailer)
}
