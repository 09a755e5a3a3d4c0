package handlers

import (
	"time"

	"github.com/oksasatya/preppal/internal/application"
	"github.com/oksasatya/preppal/internal/domain/entity"
)

type signupRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Password        string `json:"password" binding:"required,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type settingsRequest struct {
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,date"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,max=72"`
}

type ingredientRequest struct {
	IngredientName string `json:"ingredient_name" binding:"required,max=100"`
}

type nutritionDTO struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

func (n nutritionDTO) toEntity() entity.Nutrition {
	return entity.Nutrition{Calories: n.Calories, Protein: n.Protein, Carbs: n.Carbs, Fat: n.Fat}
}

type ingredientDTO struct {
	Original string `json:"original" binding:"required"`
}

type instructionDTO struct {
	Number int    `json:"number" binding:"gte=0"`
	Step   string `json:"step" binding:"required"`
}

type toggleFavouriteRequest struct {
	RecipeID     string           `json:"recipe_id" binding:"required,recipeid"`
	Title        string           `json:"title" binding:"max=300"`
	Image        string           `json:"image" binding:"omitempty,url"`
	Details      string           `json:"details"`
	HealthScore  int              `json:"health_score" binding:"gte=0"`
	CookTime     int              `json:"cook_time" binding:"gte=0"`
	WWPoints     int              `json:"ww_points" binding:"gte=0"`
	Servings     int              `json:"servings" binding:"gte=0"`
	Nutrition    nutritionDTO     `json:"nutrition"`
	Ingredients  []ingredientDTO  `json:"ingredients" binding:"dive"`
	Instructions []instructionDTO `json:"instructions" binding:"dive"`
}

func (r toggleFavouriteRequest) toInput() application.FavouriteInput {
	in := application.FavouriteInput{
		Title:        r.Title,
		Image:        r.Image,
		Details:      r.Details,
		HealthScore:  r.HealthScore,
		CookTime:     r.CookTime,
		WWPoints:     r.WWPoints,
		Servings:     r.Servings,
		Nutrition:    r.Nutrition.toEntity(),
		Ingredients:  make([]entity.Ingredient, 0, len(r.Ingredients)),
		Instructions: make([]entity.Instruction, 0, len(r.Instructions)),
	}
	for _, i := range r.Ingredients {
		in.Ingredients = append(in.Ingredients, entity.Ingredient{Original: i.Original})
	}
	for n, s := range r.Instructions {
		num := s.Number
		if num == 0 {
			num = n + 1
		}
		in.Instructions = append(in.Instructions, entity.Instruction{Number: num, Step: s.Step})
	}
	return in
}

type updateFavouriteRequest struct {
	Title        string       `json:"title" binding:"required,max=300"`
	Details      string       `json:"details"`
	HealthScore  int          `json:"health_score" binding:"gte=0"`
	CookTime     int          `json:"cook_time" binding:"gte=0"`
	Servings     int          `json:"servings" binding:"gte=0"`
	Nutrition    nutritionDTO `json:"nutrition"`
	Ingredients  []string     `json:"ingredients" binding:"dive,required"`
	Instructions []string     `json:"instructions" binding:"dive,required"`
}

func (r updateFavouriteRequest) toUpdate() application.FavouriteUpdate {
	return application.FavouriteUpdate{
		Title:        r.Title,
		Details:      r.Details,
		HealthScore:  r.HealthScore,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Nutrition:    r.Nutrition.toEntity(),
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}

type favouriteResponse struct {
	ID           string               `json:"id"`
	RecipeID     string               `json:"recipe_id"`
	Title        string               `json:"title"`
	Image        string               `json:"image"`
	Details      string               `json:"details"`
	HealthScore  int                  `json:"health_score"`
	CookTime     int                  `json:"cook_time"`
	WWPoints     int                  `json:"ww_points"`
	Servings     int                  `json:"servings"`
	Nutrition    entity.Nutrition     `json:"nutrition"`
	Ingredients  []entity.Ingredient  `json:"ingredients"`
	Instructions []entity.Instruction `json:"instructions"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func toFavouriteResponse(f entity.FavouriteRecipe) favouriteResponse {
	return favouriteResponse{
		ID:           f.ID,
		RecipeID:     f.RecipeID,
		Title:        f.Title,
		Image:        f.Image,
		Details:      f.Details,
		HealthScore:  f.HealthScore,
		CookTime:     f.CookTime,
		WWPoints:     f.WWPoints,
		Servings:     f.Servings,
		Nutrition:    f.Nutrition,
		Ingredients:  nonNilSlice(f.Ingredients),
		Instructions: nonNilSlice(f.Instructions),
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func toFavouriteResponses(in []entity.FavouriteRecipe) []favouriteResponse {
	out := make([]favouriteResponse, 0, len(in))
	for _, f := range in {
		out = append(out, toFavouriteResponse(f))
	}
	return out
}

type shoppingIngredientDTO struct {
	Name     string `json:"name" binding:"required"`
	Original string `json:"original"`
}

type addShoppingRequest struct {
	RecipeID    string                  `json:"recipe_id" binding:"required,recipeid"`
	Title       string                  `json:"title" binding:"max=300"`
	Ingredients []shoppingIngredientDTO `json:"ingredients" binding:"dive"`
}

func (r addShoppingRequest) ingredients() []entity.ShoppingIngredient {
	out := make([]entity.ShoppingIngredient, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		out = append(out, entity.ShoppingIngredient{Name: i.Name, Original: i.Original})
	}
	return out
}

type shoppingItemResponse struct {
	ID          string                      `json:"id"`
	RecipeID    string                      `json:"recipe_id"`
	Title       string                      `json:"title"`
	Ingredients []entity.ShoppingIngredient `json:"ingredients"`
	Missing     []entity.ShoppingIngredient `json:"missing"`
	CreatedAt   time.Time                   `json:"created_at"`
}

type shoppingListResponse struct {
	Items   []shoppingItemResponse `json:"items"`
	IsEmpty bool                   `json:"is_empty"`
	Message string                 `json:"message,omitempty"`
	OnHand  []string               `json:"kitchen_ingredients"`
}

type kitchenEntryDTO struct {
	Name       string `json:"name" binding:"required,max=100"`
	BestBefore string `json:"best_before" binding:"required_without=Delete,omitempty,date"`
	Delete     bool   `json:"delete"`
}

type kitchenBatchRequest struct {
	Items []kitchenEntryDTO `json:"items" binding:"required,dive"`
}

type kitchenItemResponse struct {
	Name       string `json:"name"`
	BestBefore string `json:"best_before"`
}

func nonNilSlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
