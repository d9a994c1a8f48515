package clients

import (
	"context"
	"time"

	config "github.com/DRSN-tech/go-catalog/internal/cfg"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/jitter"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOStartupPolicy задаёт ожидание MinIO при старте сервиса и CLI.
var MinIOStartupPolicy = jitter.Policy{
	Attempts: 5,
	Base:     250 * time.Millisecond,
	Max:      2 * time.Second,
	Jitter:   jitter.DefaultJitter,
}

// ConnectCatalogStorage создаёт клиента MinIO и готовит бакет каталога.
// Бакет создаётся, если его нет. Пока MinIO недоступен, попытки повторяются по policy.
func ConnectCatalogStorage(ctx context.Context, cfg *config.MinIOCfg, policy jitter.Policy, log logger.Logger) (*minio.Client, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioRootUser, cfg.MinioRootPassword, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	err = jitter.Retry(ctx, policy, func(ctx context.Context, attempt int) error {
		created, err := ensureBucket(ctx, client, cfg.BucketName)
		if err != nil {
			log.Warnf("MinIO is not ready (attempt %d/%d): %v", attempt+1, policy.Attempts, err)
			return err
		}
		if created {
			log.Infof("Bucket %s created", cfg.BucketName)
		}
		return nil
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return client, nil
}

func ensureBucket(ctx context.Context, client *minio.Client, bucketName string) (bool, error) {
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return false, e.Wrap(bucketName, err)
	}
	if exists {
		return false, nil
	}

	if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
		return false, e.Wrap(bucketName, err)
	}

	return true, nil
}
