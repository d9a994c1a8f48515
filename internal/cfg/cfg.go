package cfg

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
)

// Источники каталога.
const (
	SourceFile     = "file"
	SourceMinio    = "minio"
	SourcePostgres = "postgres"
)

type Config struct {
	Catalog *CatalogCfg
	Log     *LogCfg
	Minio   *MinIOCfg
	Http    *HTTPConfig
	Grpc    *GRPCConfig
	Db      *PGDBCfg  // nil, если каталог читается не из PostgreSQL
	Redis   *RedisCfg // nil, если REDIS_ADDR не задан
	Kafka   *KafkaCfg // nil, если KAFKA_BROKERS не задан
}

type CatalogCfg struct {
	Source             string // file | minio | postgres
	Path               string // путь к файлу каталога
	ObjectKey          string // ключ объекта каталога в MinIO
	AllowPriceDecrease bool   // разрешать понижение цены без явного подтверждения
	RunMigrations      bool
}

type LogCfg struct {
	Backend string // slog | zap
	Mode    string // dev | prod
}

type KafkaCfg struct {
	Topic        string
	Brokers      []string
	MaxAttempts  int
	BatchTimeout time.Duration
}

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Название конкретного бакета в Minio
	MinioRootUser     string // Имя пользователя для доступа к Minio
	MinioRootPassword string // Пароль для доступа к Minio
	MinioUseSSL       bool
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	CategoryTTL time.Duration
}

// LoadEnvFiles подгружает переменные из .env-файлов. Отсутствующие файлы пропускаются,
// уже заданные переменные окружения не перезаписываются.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return e.Wrap(path, err)
		}
	}

	return nil
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	catalog, err := loadCatalogCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var db *PGDBCfg
	if catalog.Source == SourcePostgres {
		db, err = loadPGDBCfg(log)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Catalog: catalog,
		Log:     LoadLogCfg(),
		Minio:   minio,
		Http:    http,
		Grpc:    loadGRPCConfig(),
		Db:      db,
		Redis:   redis,
		Kafka:   kafka,
	}, nil
}

// LoadLogCfg читает настройки логгера. Вызывается до создания логгера, поэтому ошибок не возвращает.
func LoadLogCfg() *LogCfg {
	return &LogCfg{
		Backend: getEnvOrDefault("LOG_BACKEND", "slog"),
		Mode:    getEnvOrDefault("LOG_MODE", "dev"),
	}
}

func loadCatalogCfg(log logger.Logger) (*CatalogCfg, error) {
	const (
		defaultSource    = SourceFile
		defaultPath      = "data/products.json"
		defaultObjectKey = "products.json"
	)

	source := strings.ToLower(getEnvOrDefault("CATALOG_SOURCE", defaultSource))
	switch source {
	case SourceFile, SourceMinio, SourcePostgres:
	default:
		err := e.Wrap(source, e.ErrUnknownSource)
		log.Errorf(err, "invalid CATALOG_SOURCE")
		return nil, err
	}

	allowDecrease, err := parseBoolEnv("ALLOW_PRICE_DECREASE", false)
	if err != nil {
		log.Errorf(err, "invalid ALLOW_PRICE_DECREASE")
		return nil, err
	}

	runMigrations, err := parseBoolEnv("RUN_MIGRATIONS", true)
	if err != nil {
		log.Errorf(err, "invalid RUN_MIGRATIONS")
		return nil, err
	}

	return &CatalogCfg{
		Source:             source,
		Path:               getEnvOrDefault("CATALOG_PATH", defaultPath),
		ObjectKey:          getEnvOrDefault("CATALOG_OBJECT_KEY", defaultObjectKey),
		AllowPriceDecrease: allowDecrease,
		RunMigrations:      runMigrations,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultTopic        = "catalog-events"
		defaultMaxAttempts  = 3
		defaultBatchTimeout = 50 * time.Millisecond
	)

	brokerStr := getEnv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, nil
	}

	brokers := make([]string, 0)
	for _, b := range strings.Split(brokerStr, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	maxAttempts, err := parseIntEnv("KAFKA_MAX_ATTEMPTS", defaultMaxAttempts)
	if err != nil {
		return nil, e.Wrap("KAFKA_MAX_ATTEMPTS", err)
	}

	batchTimeout, err := parseDurationEnv("KAFKA_BATCH_TIMEOUT", defaultBatchTimeout)
	if err != nil {
		return nil, e.Wrap("KAFKA_BATCH_TIMEOUT", err)
	}

	return &KafkaCfg{
		Brokers:      brokers,
		Topic:        getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		MaxAttempts:  maxAttempts,
		BatchTimeout: batchTimeout,
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL   = false
		defaultEndpoint = "minio:9000"
		defaultBucket   = "catalog"
	)

	useSSL, err := parseBoolEnv("MINIO_USE_SSL", defaultUseSSL)
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        getEnvOrDefault("BUCKET_NAME", defaultBucket),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultCategoryTTL  = 3 * time.Minute
	)

	addr := getEnv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	categoryTTL, err := parseDurationEnv("CATEGORY_TTL", defaultCategoryTTL)
	if err != nil {
		log.Errorf(err, "invalid CATEGORY_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		CategoryTTL: categoryTTL,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	boolValue, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue, e.Wrap(key, e.ErrIncorrectEnvVariable)
	}

	return boolValue, nil
}
