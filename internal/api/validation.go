package api

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/alchemorsel-recettes/backend/internal/types"
)

// RegisterValidators adds the custom binding tags used by request bodies
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	return v.RegisterValidation("recipecategory", validateRecipeCategory)
}

func validateRecipeCategory(fl validator.FieldLevel) bool {
	_, ok := types.ParseRecipeCategory(fl.Field().String())
	return ok
}
