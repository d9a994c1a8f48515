package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки модели каталога
	ErrInvalidQuantity  = fmt.Errorf("invalid quantity")
	ErrTypeMismatch     = fmt.Errorf("type mismatch")
	ErrZeroQuantity     = fmt.Errorf("product with zero quantity cannot be added")
	ErrDuplicateProduct = fmt.Errorf("product already exists in category")

	// Ошибки загрузки каталога
	ErrCatalogNotLoaded     = fmt.Errorf("catalog is not loaded")
	ErrUnsupportedFormat    = fmt.Errorf("unsupported catalog format")
	ErrUnknownProductKind   = fmt.Errorf("unknown product kind")
	ErrUnknownSource        = fmt.Errorf("unknown catalog source")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// Ошибки публикации событий
	ErrHubClosed       = fmt.Errorf("event hub is closed")
	ErrPublishAttempts = fmt.Errorf("event publishing attempts exhausted")

	// 400 Bad Request
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrMissingFields       = fmt.Errorf("missing required fields")
	ErrInvalidPrice        = fmt.Errorf("invalid price")
	ErrPricePrecision      = fmt.Errorf("price must have at most 2 decimal places")
	ErrProductNameRequired = fmt.Errorf("product name is required")

	// 404 Not Found
	ErrCategoryNotFound = fmt.Errorf("category not found")
	ErrProductNotFound  = fmt.Errorf("product not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
