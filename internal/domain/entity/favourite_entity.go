package entity

import "time"

// Ingredient is one line of a recipe's ingredient list as shown to the user.
type Ingredient struct {
	Original string `json:"original"`
}

// Instruction is a numbered recipe step. Number is 1-based.
type Instruction struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

// Nutrition values are kept as display strings ("316k", "8g").
type Nutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// FavouriteRecipe is a recipe saved by a user. At most one record exists per
// (OwnerEmail, RecipeID).
type FavouriteRecipe struct {
	ID           string
	OwnerEmail   string
	RecipeID     string
	Title        string
	Image        string
	Details      string
	HealthScore  int
	CookTime     int
	WWPoints     int
	Servings     int
	Nutrition    Nutrition
	Ingredients  []Ingredient
	Instructions []Instruction
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NumberedInstructions wraps plain steps as instructions numbered from 1.
func NumberedInstructions(steps []string) []Instruction {
	out := make([]Instruction, 0, len(steps))
	for i, s := range steps {
		out = append(out, Instruction{Number: i + 1, Step: s})
	}
	return out
}

// WrapIngredients wraps plain ingredient lines.
func WrapIngredients(lines []string) []Ingredient {
	out := make([]Ingredient, 0, len(lines))
	for _, l := range lines {
		out = append(out, Ingredient{Original: l})
	}
	return out
}

// FavouriteHit is one full-text search result over a user's favourites.
type FavouriteHit struct {
	RecipeID string `json:"recipe_id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
}
