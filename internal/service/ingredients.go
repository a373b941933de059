package service

import (
	"math/rand"
	"strings"

	"cookoff_web/internal/models"
	"cookoff_web/internal/repository"
)

// IngredientsPerRound 每回合抽出的食材數量
const IngredientsPerRound = 3

// IngredientService 負責食材目錄與每回合的隨機抽選
type IngredientService struct {
	ingredientRepo repository.IngredientRepository
}

func NewIngredientService(ingredientRepo repository.IngredientRepository) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo}
}

// Pick 從目錄中不重複地抽出 k 樣食材
func (s *IngredientService) Pick(k int) ([]models.Ingredient, error) {
	catalog, err := s.ingredientRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return sampleIngredients(catalog, k)
}

// PickNames 抽出 k 樣食材並組成回合記錄用的字串
func (s *IngredientService) PickNames(k int) (string, error) {
	picked, err := s.Pick(k)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(picked))
	for _, ingredient := range picked {
		names = append(names, ingredient.Name)
	}
	return strings.Join(names, ", "), nil
}

// sampleIngredients 以部分 Fisher-Yates 洗牌做不放回抽樣
func sampleIngredients(catalog []models.Ingredient, k int) ([]models.Ingredient, error) {
	if len(catalog) < k {
		return nil, ErrInsufficientCatalog
	}
	picked := make([]models.Ingredient, len(catalog))
	copy(picked, catalog)
	for i := 0; i < k; i++ {
		j := i + rand.Intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:k], nil
}

// Seed 在目錄為空時寫入預設食材
func (s *IngredientService) Seed() error {
	count, err := s.ingredientRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, seed := range defaultIngredients {
		if err := s.ingredientRepo.Create(&models.Ingredient{Name: seed.name, Category: seed.category}); err != nil {
			return err
		}
	}
	return nil
}

var defaultIngredients = []struct {
	name     string
	category string
}{
	{"雞肉", "肉類"},
	{"牛肉", "肉類"},
	{"豬五花", "肉類"},
	{"培根", "肉類"},
	{"鮭魚", "海鮮"},
	{"蝦子", "海鮮"},
	{"花枝", "海鮮"},
	{"蛤蜊", "海鮮"},
	{"雞蛋", "蛋奶"},
	{"起司", "蛋奶"},
	{"鮮奶油", "蛋奶"},
	{"洋蔥", "蔬菜"},
	{"大蒜", "蔬菜"},
	{"番茄", "蔬菜"},
	{"馬鈴薯", "蔬菜"},
	{"紅蘿蔔", "蔬菜"},
	{"青椒", "蔬菜"},
	{"香菇", "蔬菜"},
	{"菠菜", "蔬菜"},
	{"玉米", "蔬菜"},
	{"白飯", "主食"},
	{"義大利麵", "主食"},
	{"吐司", "主食"},
	{"烏龍麵", "主食"},
	{"豆腐", "豆製品"},
	{"味噌", "調味"},
	{"醬油", "調味"},
	{"咖哩塊", "調味"},
	{"辣椒", "調味"},
	{"蜂蜜", "調味"},
	{"花生醬", "調味"},
	{"巧克力", "甜點"},
	{"香蕉", "水果"},
	{"蘋果", "水果"},
	{"鳳梨", "水果"},
	{"檸檬", "水果"},
}
