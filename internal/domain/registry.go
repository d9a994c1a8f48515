package domain

import "github.com/DRSN-tech/go-catalog/pkg/logger"

// Registry хранит накопительные счётчики каталога: сколько категорий было создано
// и сколько продуктов было добавлено во все категории. Счётчики только растут.
type Registry struct {
	categoryCount     int
	totalProductCount int
	logger            logger.Logger
}

func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}

	return &Registry{logger: log}
}

// CategoryCount — число созданных категорий.
func (r *Registry) CategoryCount() int { return r.categoryCount }

// TotalProductCount — накопительный итог добавлений продуктов.
func (r *Registry) TotalProductCount() int { return r.totalProductCount }

// Reset обнуляет счётчики. Используется только в тестах.
func (r *Registry) Reset() {
	r.categoryCount = 0
	r.totalProductCount = 0
}

// Logger возвращает логгер реестра.
func (r *Registry) Logger() logger.Logger { return r.logger }

func (r *Registry) addProducts(n int) {
	r.totalProductCount += n
}
