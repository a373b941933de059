package repository

import (
	"cookoff_web/internal/models"
	"cookoff_web/internal/storage"
)

type IngredientRepository interface {
	Create(ingredient *models.Ingredient) error
	FindAll() ([]models.Ingredient, error)
	Count() (int64, error)
}

type ingredientRepository struct {
	db *storage.PostgresDB
}

func NewIngredientRepository(db *storage.PostgresDB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Create(ingredient *models.Ingredient) error {
	return r.db.Create(ingredient).Error
}

func (r *ingredientRepository) FindAll() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.Order("id ASC").Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Ingredient{}).Count(&count).Error
	return count, err
}
