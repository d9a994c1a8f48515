package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const maxBodySize = 1 << 20

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

var errorStatuses = []struct {
	err  error
	code int
}{
	{e.ErrStatusBadRequest, http.StatusBadRequest},
	{e.ErrMissingFields, http.StatusBadRequest},
	{e.ErrInvalidPrice, http.StatusBadRequest},
	{e.ErrPricePrecision, http.StatusBadRequest},
	{e.ErrProductNameRequired, http.StatusBadRequest},
	{e.ErrInvalidQuantity, http.StatusBadRequest},
	{e.ErrZeroQuantity, http.StatusBadRequest},
	{e.ErrUnknownProductKind, http.StatusBadRequest},
	{e.ErrTypeMismatch, http.StatusBadRequest},
	{e.ErrCategoryNotFound, http.StatusNotFound},
	{e.ErrProductNotFound, http.StatusNotFound},
	{e.ErrDuplicateProduct, http.StatusConflict},
	{e.ErrCatalogNotLoaded, http.StatusServiceUnavailable},
}

// ToHTTPResponse сопоставляет ошибку со статусом и текстом ответа.
// Неизвестные ошибки скрываются за 500.
func ToHTTPResponse(err error) (int, string) {
	for _, s := range errorStatuses {
		if errors.Is(err, s.err) {
			return s.code, s.err.Error()
		}
	}

	return http.StatusInternalServerError, e.ErrInternalServerError.Error()
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	WriteSuccess(w, code, NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON читает тело запроса. Неизвестные поля и лишние данные считаются ошибкой.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return e.Wrap("body must contain a single JSON object", e.ErrStatusBadRequest)
	}

	return nil
}

// urlParam возвращает декодированный параметр пути: имена категорий и продуктов
// содержат кириллицу и пробелы.
func urlParam(r *http.Request, key string) (string, error) {
	raw := chi.URLParam(r, key)
	value, err := url.PathUnescape(raw)
	if err != nil {
		return "", e.Wrap(key, e.ErrStatusBadRequest)
	}
	if strings.TrimSpace(value) == "" {
		return "", e.Wrap(key, e.ErrMissingFields)
	}

	return value, nil
}

var maxPrice = decimal.NewFromInt(1_000_000_000)

// parseAmount разбирает сумму вида "599.99", "600" или "-50".
// Отклоняет больше двух знаков после точки и суммы по модулю свыше миллиарда.
func parseAmount(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.Wrap("price", e.ErrMissingFields)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.Wrap(s, e.ErrInvalidPrice)
	}

	if d.Abs().GreaterThan(maxPrice) {
		return 0, e.Wrap(s, e.ErrInvalidPrice)
	}

	if d.Exponent() < -2 {
		return 0, e.Wrap(s, e.ErrPricePrecision)
	}

	return d.InexactFloat64(), nil
}

// parsePrice разбирает цену нового продукта. Отрицательная цена отклоняется.
func parsePrice(s string) (float64, error) {
	price, err := parseAmount(s)
	if err != nil {
		return 0, err
	}
	if price < 0 {
		return 0, e.Wrap(s, e.ErrInvalidPrice)
	}

	return price, nil
}
