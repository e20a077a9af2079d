package store

import (
	"github.com/shopspring/decimal"

	models "github.com/pr-poehali-dev/mini-magazin-site/model"
)

const (
	clothingImage    = "/img/6f86ec67-e4a5-4cda-b251-0e8f26c517d1.jpg"
	accessoriesImage = "/img/c96766c3-546e-4a53-8392-15b741f2514a.jpg"
	footwearImage    = "/img/4c055df6-e772-4376-abe2-b45503df0dec.jpg"
)

// DefaultSeed is the catalog the shop opens with.
func DefaultSeed() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Name:        "Стильный худи",
			Price:       decimal.NewFromInt(2990),
			Category:    models.Clothing,
			Sizes:       models.NewSizes("XS", "S", "M", "L", "XL"),
			Image:       clothingImage,
			Description: "Современный худи из качественного хлопка",
			InStock:     true,
		},
		{
			ID:          2,
			Name:        "Модные очки",
			Price:       decimal.NewFromInt(1590),
			Category:    models.Accessories,
			Sizes:       models.NewSizes(models.OneSize),
			Image:       accessoriesImage,
			Description: "Стильные солнечные очки с UV защитой",
			InStock:     true,
		},
		{
			ID:          3,
			Name:        "Кроссовки",
			Price:       decimal.NewFromInt(4990),
			Category:    models.Footwear,
			Sizes:       models.NewSizes("36", "37", "38", "39", "40", "41", "42", "43"),
			Image:       footwearImage,
			Description: "Удобные спортивные кроссовки",
			InStock:     true,
		},
		{
			ID:          4,
			Name:        "Базовая футболка",
			Price:       decimal.NewFromInt(990),
			Category:    models.Clothing,
			Sizes:       models.NewSizes("XS", "S", "M", "L", "XL"),
			Image:       clothingImage,
			Description: "Классическая футболка из органического хлопка",
			InStock:     true,
		},
		{
			ID:          5,
			Name:        "Рюкзак",
			Price:       decimal.NewFromInt(3490),
			Category:    models.Accessories,
			Sizes:       models.NewSizes(models.OneSize),
			Image:       accessoriesImage,
			Description: "Вместительный городской рюкзак",
			InStock:     false,
		},
		{
			ID:          6,
			Name:        "Джинсы",
			Price:       decimal.NewFromInt(3990),
			Category:    models.Clothing,
			Sizes:       models.NewSizes("28", "30", "32", "34", "36"),
			Image:       clothingImage,
			Description: "Классические прямые джинсы",
			InStock:     true,
		},
	}
}
