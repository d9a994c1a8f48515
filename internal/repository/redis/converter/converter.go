package converter

import "github.com/DRSN-tech/go-catalog/internal/usecase"

// CategoryInfoConverter преобразует сводки категорий между usecase и моделью Redis.
type CategoryInfoConverter interface {
	ToRedisModel(entity *usecase.CategoryInfo) *CategoryInfoRedisModel
	ToUseCase(model *CategoryInfoRedisModel) *usecase.CategoryInfo
	ToArrRedisModel(entities []usecase.CategoryInfo) []CategoryInfoRedisModel
}

type categoryInfoConverter struct{}

func NewCategoryInfoConverter() CategoryInfoConverter {
	return categoryInfoConverter{}
}

func (categoryInfoConverter) ToRedisModel(entity *usecase.CategoryInfo) *CategoryInfoRedisModel {
	if entity == nil {
		return nil
	}

	return &CategoryInfoRedisModel{
		Name:          entity.Name,
		Description:   entity.Description,
		ProductCount:  entity.ProductCount,
		TotalQuantity: entity.TotalQuantity,
		MiddlePrice:   entity.MiddlePrice,
		Summary:       entity.Summary,
	}
}

func (categoryInfoConverter) ToUseCase(model *CategoryInfoRedisModel) *usecase.CategoryInfo {
	if model == nil {
		return nil
	}

	return &usecase.CategoryInfo{
		Name:          model.Name,
		Description:   model.Description,
		ProductCount:  model.ProductCount,
		TotalQuantity: model.TotalQuantity,
		MiddlePrice:   model.MiddlePrice,
		Summary:       model.Summary,
	}
}

func (c categoryInfoConverter) ToArrRedisModel(entities []usecase.CategoryInfo) []CategoryInfoRedisModel {
	result := make([]CategoryInfoRedisModel, 0, len(entities))
	for i := range entities {
		result = append(result, *c.ToRedisModel(&entities[i]))
	}

	return result
}
