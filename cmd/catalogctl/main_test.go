package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = "../../data/products.json"

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	full := append([]string{"catalogctl", "--catalog", sampleCatalog}, args...)
	err := run(context.Background(), full, &stdout, &stderr)
	return stdout.String(), err
}

func TestShow(t *testing.T) {
	out, err := runCLI(t, "show", "--category", "Смартфоны")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Смартфоны, количество продуктов: 27 шт.", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  - Samsung Galaxy S23 Ultra, 180000.0 руб. Остаток: 5 шт."), lines[1])

	_, err = runCLI(t, "show", "--category", "Ноутбуки")
	assert.ErrorIs(t, err, e.ErrCategoryNotFound)
}

func TestCalculations(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "middle price", args: []string{"middle-price", "-c", "Смартфоны"}, want: "111629.63"},
		{name: "order", args: []string{"order", "-c", "Смартфоны", "-p", "Iphone 15", "-q", "2"}, want: "Заказ: Iphone 15, количество: 2 шт., итого: 420000.00 руб."},
		{name: "combine", args: []string{"combine", "-c", "Газонная трава", "--first", "Газонная трава", "--second", "Газонная трава 2"}, want: "16750.00"},
		{name: "stats", args: []string{"stats"}, want: "категорий: 3, продуктов: 6"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runCLI(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, strings.TrimSpace(out))
		})
	}
}

func TestCombineUnknownProduct(t *testing.T) {
	_, err := runCLI(t, "combine", "-c", "Смартфоны", "--first", "Iphone 15", "--second", "Nokia")
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestConvertToYAML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "catalog.yaml")

	_, err := runCLI(t, "convert", "--out", out)
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	err = run(context.Background(), []string{"catalogctl", "--catalog", out, "show", "-c", "Газонная трава"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Газонная трава, количество продуктов: 35 шт.")
	assert.Contains(t, stdout.String(), "Срок прорастания")

	_, err = runCLI(t, "convert", "--out", filepath.Join(t.TempDir(), "catalog.xml"))
	assert.ErrorIs(t, err, e.ErrUnsupportedFormat)
}
