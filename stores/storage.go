package stores

import (
	"context"
	"fmt"
	"stashspace/config"
	"stashspace/core"
	"stashspace/stores/aws"
	"stashspace/stores/filesystem"
	"stashspace/stores/memory"
	"stashspace/stores/mongo"
	"stashspace/stores/sqlite"

	"github.com/sirupsen/logrus"
)

// GetStore builds the signup store selected by STORE_DRIVER.
func GetStore(ctx context.Context, cfg config.App) (core.SignupStore, error) {
	storageField := logrus.Fields{
		"driver": cfg.StoreDriver,
	}

	var (
		store core.SignupStore
		err   error
	)
	switch cfg.StoreDriver {
	case config.DriverMongo:
		storageField["database"] = cfg.MongoDB
		store, err = mongo.NewSignupStore(ctx, cfg.MongoURI, cfg.MongoDB)
	case config.DriverSQLite:
		storageField["dataSourceName"] = cfg.SQLitePath
		store, err = sqlite.NewSignupStore(cfg.SQLitePath)
	case config.DriverFilesystem:
		storageField["basePath"] = cfg.StoragePath
		store, err = filesystem.NewSignupStore(cfg.StoragePath)
	case config.DriverS3:
		storageField["bucket"] = cfg.S3Bucket
		store, err = aws.NewSignupStore(ctx, cfg.S3Bucket)
	case config.DriverMemory:
		store = memory.NewSignupStore()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}
	logrus.WithFields(storageField).Info("Use storage")
	return store, nil
}
