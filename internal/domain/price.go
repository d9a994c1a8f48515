package domain

import (
	"strconv"
	"strings"
)

// PriceConfirmer решает, можно ли понизить цену с oldPrice до newPrice.
type PriceConfirmer func(oldPrice, newPrice float64) bool

// AllowPriceDecrease разрешает любое понижение цены.
func AllowPriceDecrease(_, _ float64) bool { return true }

// DenyPriceDecrease запрещает любое понижение цены.
func DenyPriceDecrease(_, _ float64) bool { return false }

// formatNumber печатает число в кратчайшей точной форме с фиксированной точкой, целые значения
// дополняются ".0" (100 -> "100.0"). Экспоненциальная запись не используется даже для 1e16 и 1e-5.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}

	return s
}
