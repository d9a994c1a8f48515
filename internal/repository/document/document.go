// Package document разбирает документы каталога в форматах JSON и YAML
// и собирает из них категории домена.
package document

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/DRSN-tech/go-catalog/internal/domain"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"gopkg.in/yaml.v3"
)

// Format — формат документа каталога.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// CategoryDoc — категория в документе каталога.
type CategoryDoc struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Products    []ProductDoc `json:"products" yaml:"products"`
}

// ProductDoc — продукт в документе каталога. Поля вариантов заполняются только для своего вида.
type ProductDoc struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
	Kind        string  `json:"kind,omitempty" yaml:"kind,omitempty"`

	Efficiency float64 `json:"efficiency,omitempty" yaml:"efficiency,omitempty"`
	Model      string  `json:"model,omitempty" yaml:"model,omitempty"`
	Memory     int     `json:"memory,omitempty" yaml:"memory,omitempty"`
	Color      string  `json:"color,omitempty" yaml:"color,omitempty"`

	Country           string `json:"country,omitempty" yaml:"country,omitempty"`
	GerminationPeriod int    `json:"germination_period,omitempty" yaml:"germination_period,omitempty"`
}

// FormatFromPath определяет формат по расширению файла или ключа объекта.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", e.Wrap(path, e.ErrUnsupportedFormat)
	}
}

// FormatFromContentType определяет формат по MIME-типу объекта.
// Параметры после ";" игнорируются.
func FormatFromContentType(contentType string) (Format, error) {
	mime, _, _ := strings.Cut(contentType, ";")
	switch strings.TrimSpace(strings.ToLower(mime)) {
	case "application/json":
		return FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, nil
	default:
		return "", e.Wrap(contentType, e.ErrUnsupportedFormat)
	}
}

// ContentType возвращает MIME-тип формата.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}

	return "application/json"
}

// Decode читает список категорий из r.
func Decode(r io.Reader, format Format) ([]CategoryDoc, error) {
	var docs []CategoryDoc

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&docs); err != nil {
			return nil, e.Wrap("decode json catalog", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&docs); err != nil && err != io.EOF {
			return nil, e.Wrap("decode yaml catalog", err)
		}
	default:
		return nil, e.Wrap(string(format), e.ErrUnsupportedFormat)
	}

	return docs, nil
}

// Encode пишет список категорий в w.
func Encode(w io.Writer, format Format, docs []CategoryDoc) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(docs)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(docs); err != nil {
			return err
		}
		return enc.Close()
	default:
		return e.Wrap(string(format), e.ErrUnsupportedFormat)
	}
}

// Info переводит продукт документа в ProductInfo.
func (d ProductDoc) Info() (domain.ProductInfo, error) {
	kind, err := domain.ParseKind(d.Kind)
	if err != nil {
		return domain.ProductInfo{}, e.Wrap(fmt.Sprintf("product %q", d.Name), err)
	}

	info := domain.ProductInfo{
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Quantity:    d.Quantity,
		Kind:        kind,
	}
	switch kind {
	case domain.KindSmartphone:
		info.Smartphone = domain.Smartphone{Efficiency: d.Efficiency, Model: d.Model, Memory: d.Memory, Color: d.Color}
	case domain.KindLawnGrass:
		info.LawnGrass = domain.LawnGrass{Country: d.Country, GerminationPeriod: d.GerminationPeriod, Color: d.Color}
	}

	return info, nil
}

// Build собирает категории из документа через реестр в порядке документа.
func Build(registry *domain.Registry, docs []CategoryDoc, opts ...domain.ProductOption) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(docs))

	for _, cd := range docs {
		products := make([]*domain.Product, 0, len(cd.Products))
		for _, pd := range cd.Products {
			info, err := pd.Info()
			if err != nil {
				return nil, e.Wrap(fmt.Sprintf("category %q", cd.Name), err)
			}

			p, err := domain.NewProductFromInfo(info, opts...)
			if err != nil {
				return nil, e.Wrap(fmt.Sprintf("category %q", cd.Name), err)
			}
			products = append(products, p)
		}

		c, err := registry.NewCategory(cd.Name, cd.Description, products...)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, nil
}

// FromCategories строит документ из категорий домена.
func FromCategories(categories []*domain.Category) []CategoryDoc {
	docs := make([]CategoryDoc, 0, len(categories))

	for _, c := range categories {
		cd := CategoryDoc{Name: c.Name(), Description: c.Description(), Products: make([]ProductDoc, 0, c.ProductCount())}
		for p := range c.All() {
			pd := ProductDoc{
				Name:        p.Name(),
				Description: p.Description(),
				Price:       p.Price(),
				Quantity:    p.Quantity(),
			}
			switch p.Kind() {
			case domain.KindSmartphone:
				s := p.Smartphone()
				pd.Kind = p.Kind().String()
				pd.Efficiency, pd.Model, pd.Memory, pd.Color = s.Efficiency, s.Model, s.Memory, s.Color
			case domain.KindLawnGrass:
				g := p.LawnGrass()
				pd.Kind = p.Kind().String()
				pd.Country, pd.GerminationPeriod, pd.Color = g.Country, g.GerminationPeriod, g.Color
			}
			cd.Products = append(cd.Products, pd)
		}
		docs = append(docs, cd)
	}

	return docs
}
