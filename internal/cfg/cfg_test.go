package cfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CATALOG_SOURCE", "CATALOG_PATH", "REDIS_ADDR", "KAFKA_BROKERS", "HTTP_PORT", "ALLOW_PRICE_DECREASE"} {
		t.Setenv(key, "")
	}

	c, err := Load(logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, SourceFile, c.Catalog.Source)
	assert.Equal(t, "data/products.json", c.Catalog.Path)
	assert.False(t, c.Catalog.AllowPriceDecrease)
	assert.Equal(t, "8080", c.Http.Port)
	assert.Equal(t, 5*time.Second, c.Http.ReadTimeout)
	assert.Nil(t, c.Db)
	assert.Nil(t, c.Redis, "redis is optional")
	assert.Nil(t, c.Kafka, "kafka is optional")
}

func TestLoadOptionalBackends(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "file")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CATEGORY_TTL", "30s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("KAFKA_TOPIC", "events")

	c, err := Load(logger.Nop())
	require.NoError(t, err)

	require.NotNil(t, c.Redis)
	assert.Equal(t, 30*time.Second, c.Redis.CategoryTTL)
	require.NotNil(t, c.Kafka)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, c.Kafka.Brokers)
	assert.Equal(t, "events", c.Kafka.Topic)
}

func TestLoadPostgresRequiresCredentials(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "postgres")
	t.Setenv("POSTGRES_USER", "")

	_, err := Load(logger.Nop())
	assert.Error(t, err)

	t.Setenv("POSTGRES_USER", "catalog")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "catalog")

	c, err := Load(logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, c.Db)
	assert.Equal(t, "localhost", c.Db.Host)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{name: "unknown source", key: "CATALOG_SOURCE", value: "ftp", wantErr: e.ErrUnknownSource},
		{name: "bad bool", key: "ALLOW_PRICE_DECREASE", value: "maybe", wantErr: e.ErrIncorrectEnvVariable},
		{name: "bad int", key: "KAFKA_MAX_ATTEMPTS", value: "three", wantErr: e.ErrIncorrectEnvVariable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("CATALOG_SOURCE", "file")
			t.Setenv("KAFKA_BROKERS", "localhost:9092")
			t.Setenv(tc.key, tc.value)

			_, err := Load(logger.Nop())
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CATALOG_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("CATALOG_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("CATALOG_TEST_VALUE"))

	require.NoError(t, LoadEnvFiles(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("CATALOG_TEST_VALUE"))
}
