package postgres

import (
	"testing"

	"github.com/DRSN-tech/go-catalog/internal/cfg"
	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := DSN(&cfg.PGDBCfg{
		Host:     "db",
		Port:     "5432",
		User:     "catalog",
		Password: "p@ss:word",
		DBName:   "catalog",
		SSLMode:  "disable",
	})

	assert.Equal(t, "postgres://catalog:p%40ss%3Aword@db:5432/catalog?sslmode=disable", dsn)
}
