package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/go-catalog/internal/domain"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/google/uuid"
)

const (
	cacheTimeout   = 500 * time.Millisecond
	publishTimeout = 2 * time.Second
)

// CatalogUseCase держит загруженный каталог в памяти и сериализует доступ к нему.
// Кэш и публикатор событий необязательны (nil отключает их).
type CatalogUseCase struct {
	mu         sync.RWMutex
	source     CatalogSource
	registry   *domain.Registry
	categories []*domain.Category
	loaded     bool

	// версия категории меняется при каждой её мутации
	versions map[string]uint64
	gen      uint64

	confirm        domain.PriceConfirmer
	cacheRepo      CacheRepository
	publisher      EventPublisher
	publishTimeout time.Duration
	logger         logger.Logger
}

func NewCatalogUC(
	source CatalogSource,
	cacheRepo CacheRepository,
	publisher EventPublisher,
	confirm domain.PriceConfirmer,
	logger logger.Logger,
) *CatalogUseCase {
	if confirm == nil {
		confirm = domain.DenyPriceDecrease
	}

	return &CatalogUseCase{
		source:         source,
		cacheRepo:      cacheRepo,
		publisher:      publisher,
		publishTimeout: publishTimeout,
		confirm:        confirm,
		logger:         logger,
	}
}

// Load заново загружает каталог из источника и прогревает кэш сводок.
// При ошибке ранее загруженный каталог остаётся без изменений.
func (u *CatalogUseCase) Load(ctx context.Context) error {
	const op = "CatalogUseCase.Load"

	registry := domain.NewRegistry(u.logger)
	categories, err := u.source.Load(ctx, registry, domain.WithPriceConfirmer(u.confirm), domain.WithLogger(u.logger))
	if err != nil {
		return e.Wrap(op, err)
	}

	u.mu.Lock()
	previous := u.categories
	u.registry = registry
	u.categories = categories
	u.loaded = true
	u.versions = make(map[string]uint64, len(categories))
	infos := make([]CategoryInfo, 0, len(categories))
	seen := make(map[string]uint64, len(categories))
	current := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		infos = append(infos, NewCategoryInfo(c))
		current[c.Name()] = struct{}{}
		seen[c.Name()] = u.bump(c.Name())
	}
	u.mu.Unlock()

	var stale []string
	for _, c := range previous {
		if _, ok := current[c.Name()]; !ok {
			stale = append(stale, c.Name())
		}
	}

	u.logger.Infof("Catalog loaded: categories=%d products=%d", registry.CategoryCount(), registry.TotalProductCount())

	u.invalidateCategories(ctx, stale...)
	u.cacheCategories(ctx, infos, seen)
	return nil
}

// ListCategories возвращает сводки всех категорий в порядке загрузки.
func (u *CatalogUseCase) ListCategories(ctx context.Context) ([]CategoryInfo, error) {
	const op = "CatalogUseCase.ListCategories"

	u.mu.RLock()
	defer u.mu.RUnlock()

	if !u.loaded {
		return nil, e.Wrap(op, e.ErrCatalogNotLoaded)
	}

	result := make([]CategoryInfo, 0, len(u.categories))
	for _, c := range u.categories {
		result = append(result, NewCategoryInfo(c))
	}

	return result, nil
}

// GetCategory возвращает сводку категории, сначала пытаясь взять её из кэша.
func (u *CatalogUseCase) GetCategory(ctx context.Context, name string) (*CategoryInfo, error) {
	const op = "CatalogUseCase.GetCategory"

	if u.cacheRepo != nil {
		cached, err := u.cacheRepo.GetCategory(ctx, name)
		if err != nil {
			u.logger.Warnf("Failed to get category from cache: %v", e.Wrap(op, err))
		} else if cached != nil {
			return cached, nil
		}
	}

	u.mu.RLock()
	category, err := u.findCategory(name)
	var (
		info    CategoryInfo
		version uint64
	)
	if err == nil {
		info = NewCategoryInfo(category)
		version = u.versions[name]
	}
	u.mu.RUnlock()

	if err != nil {
		return nil, e.Wrap(op, err)
	}

	u.cacheCategories(ctx, []CategoryInfo{info}, map[string]uint64{name: version})
	return &info, nil
}

// ListProducts возвращает продукты категории в порядке добавления.
func (u *CatalogUseCase) ListProducts(ctx context.Context, categoryName string) ([]ProductView, error) {
	const op = "CatalogUseCase.ListProducts"

	u.mu.RLock()
	defer u.mu.RUnlock()

	category, err := u.findCategory(categoryName)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := make([]ProductView, 0, category.ProductCount())
	for p := range category.All() {
		result = append(result, NewProductView(p))
	}

	return result, nil
}

// AddProduct добавляет продукт в категорию или сливает его с одноимённым.
func (u *CatalogUseCase) AddProduct(ctx context.Context, req *AddProductReq) (*AddProductRes, error) {
	const op = "CatalogUseCase.AddProduct"

	if strings.TrimSpace(req.Product.Name) == "" {
		return nil, e.Wrap(op, e.ErrProductNameRequired)
	}

	u.mu.Lock()
	category, err := u.findCategory(req.CategoryName)
	if err != nil {
		u.mu.Unlock()
		return nil, e.Wrap(op, err)
	}

	merged, err := category.CreateOrMerge(req.Product, domain.WithPriceConfirmer(u.confirm))
	if err != nil {
		u.mu.Unlock()
		return nil, e.Wrap(op, err)
	}
	u.bump(req.CategoryName)
	res := &AddProductRes{
		Product:      NewProductView(merged.Product),
		Created:      merged.Created,
		PriceChanged: merged.PriceChanged,
	}
	u.mu.Unlock()

	u.invalidateCategories(ctx, req.CategoryName)

	u.publish(ctx, EventProductMerged, res.Product.Name, map[string]any{
		"category": req.CategoryName,
		"product":  res.Product.Name,
		"created":  res.Created,
		"added":    req.Product.Quantity,
		"quantity": res.Product.Quantity,
		"price":    res.Product.Price,
	})
	if res.PriceChanged {
		u.publish(ctx, EventPriceChanged, res.Product.Name, map[string]any{
			"category": req.CategoryName,
			"product":  res.Product.Name,
			"price":    res.Product.Price,
		})
	}

	return res, nil
}

// SetPrice пытается сменить цену продукта. Отказ (неположительная цена, неподтверждённое понижение)
// не является ошибкой и возвращается как Changed == false.
func (u *CatalogUseCase) SetPrice(ctx context.Context, req *SetPriceReq) (*SetPriceRes, error) {
	const op = "CatalogUseCase.SetPrice"

	u.mu.Lock()
	product, err := u.findProduct(req.CategoryName, req.ProductName)
	if err != nil {
		u.mu.Unlock()
		return nil, e.Wrap(op, err)
	}

	oldPrice := product.Price()
	var changed bool
	if req.ConfirmDecrease {
		changed = product.SetPriceWith(req.Price, domain.AllowPriceDecrease)
	} else {
		changed = product.SetPrice(req.Price)
	}
	if changed {
		u.bump(req.CategoryName)
	}
	res := &SetPriceRes{
		Product:  NewProductView(product),
		OldPrice: oldPrice,
		Changed:  changed,
	}
	u.mu.Unlock()

	if changed && oldPrice != res.Product.Price {
		u.invalidateCategories(ctx, req.CategoryName)
		u.publish(ctx, EventPriceChanged, res.Product.Name, map[string]any{
			"category":  req.CategoryName,
			"product":   res.Product.Name,
			"old_price": oldPrice,
			"price":     res.Product.Price,
		})
	}

	return res, nil
}

// PlaceOrder оформляет заказ на продукт. Остаток продукта при этом не меняется.
func (u *CatalogUseCase) PlaceOrder(ctx context.Context, req *PlaceOrderReq) (*OrderInfo, error) {
	const op = "CatalogUseCase.PlaceOrder"

	u.mu.RLock()
	product, err := u.findProduct(req.CategoryName, req.ProductName)
	if err != nil {
		u.mu.RUnlock()
		return nil, e.Wrap(op, err)
	}

	order, err := domain.NewOrder(product, req.Quantity)
	u.mu.RUnlock()
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	info := NewOrderInfo(order)
	u.publish(ctx, EventOrderPlaced, info.Name, map[string]any{
		"order_id":    info.ID,
		"category":    req.CategoryName,
		"product":     info.Name,
		"quantity":    info.Quantity,
		"unit_price":  info.UnitPrice.String(),
		"total_price": info.TotalPrice.StringFixed(2),
	})

	return info, nil
}

// CombineValue складывает стоимость остатков двух продуктов одной категории.
func (u *CatalogUseCase) CombineValue(ctx context.Context, req *CombineValueReq) (float64, error) {
	const op = "CatalogUseCase.CombineValue"

	u.mu.RLock()
	defer u.mu.RUnlock()

	first, err := u.findProduct(req.CategoryName, req.First)
	if err != nil {
		return 0, e.Wrap(op, err)
	}
	second, err := u.findProduct(req.CategoryName, req.Second)
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	value, err := first.CombineValue(second)
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	return value, nil
}

// Stats возвращает счётчики реестра загруженного каталога.
func (u *CatalogUseCase) Stats(ctx context.Context) (*Stats, error) {
	const op = "CatalogUseCase.Stats"

	u.mu.RLock()
	defer u.mu.RUnlock()

	if !u.loaded {
		return nil, e.Wrap(op, e.ErrCatalogNotLoaded)
	}

	return &Stats{
		CategoryCount:     u.registry.CategoryCount(),
		TotalProductCount: u.registry.TotalProductCount(),
	}, nil
}

// Loaded сообщает, загружен ли каталог.
func (u *CatalogUseCase) Loaded() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return u.loaded
}

// findCategory ищет категорию по имени. Вызывается под блокировкой.
func (u *CatalogUseCase) findCategory(name string) (*domain.Category, error) {
	if !u.loaded {
		return nil, e.ErrCatalogNotLoaded
	}

	for _, c := range u.categories {
		if c.Name() == name {
			return c, nil
		}
	}

	return nil, e.Wrap(fmt.Sprintf("category %q", name), e.ErrCategoryNotFound)
}

// findProduct ищет продукт в категории. Вызывается под блокировкой.
func (u *CatalogUseCase) findProduct(categoryName, productName string) (*domain.Product, error) {
	category, err := u.findCategory(categoryName)
	if err != nil {
		return nil, err
	}

	product, ok := category.FindProduct(productName)
	if !ok {
		return nil, e.Wrap(fmt.Sprintf("product %q in %q", productName, categoryName), e.ErrProductNotFound)
	}

	return product, nil
}

// bump отмечает изменение категории. Вызывается под блокировкой на запись.
func (u *CatalogUseCase) bump(name string) uint64 {
	u.gen++
	u.versions[name] = u.gen
	return u.gen
}

// cacheCategories кладёт сводки в кэш. versions — версии категорий, с которых сняты сводки.
// Если категория изменилась, пока шла запись, её сводка удаляется из кэша.
// Ошибки кэша только логируются.
func (u *CatalogUseCase) cacheCategories(ctx context.Context, infos []CategoryInfo, versions map[string]uint64) {
	if u.cacheRepo == nil || len(infos) == 0 {
		return
	}

	cacheCtx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()

	if err := u.cacheRepo.SetCategories(cacheCtx, infos); err != nil {
		u.logger.Warnf("Failed to cache categories: %v", err)
		return
	}

	var stale []string
	u.mu.RLock()
	for _, info := range infos {
		if u.versions[info.Name] != versions[info.Name] {
			stale = append(stale, info.Name)
		}
	}
	u.mu.RUnlock()

	if len(stale) > 0 {
		u.logger.Debugf("Categories changed while caching, dropping: %v", stale)
		u.invalidateCategories(ctx, stale...)
	}
}

// invalidateCategories удаляет устаревшие сводки из кэша.
func (u *CatalogUseCase) invalidateCategories(ctx context.Context, names ...string) {
	if u.cacheRepo == nil || len(names) == 0 {
		return
	}

	if err := u.cacheRepo.DeleteCategories(ctx, names); err != nil {
		u.logger.Warnf("Failed to delete categories from cache: %v", err)
	}
}

// publish отправляет событие. Сбой публикации не отменяет уже применённое изменение.
func (u *CatalogUseCase) publish(ctx context.Context, eventType EventType, key string, payload map[string]any) {
	if u.publisher == nil {
		return
	}

	// изменение уже применено: отмена запроса не должна обрывать публикацию
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.publishTimeout)
	defer cancel()

	req := NewWriteMessageReq(uuid.NewString(), eventType, key, payload, time.Now().UTC())
	if err := u.publisher.WriteMessage(pubCtx, req); err != nil {
		u.logger.Errorf(err, "Failed to publish %s event: key=%s", eventType, key)
	}
}
