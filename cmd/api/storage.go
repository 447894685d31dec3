package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/example/ec-storefront/internal/config"
	"github.com/example/ec-storefront/internal/infrastructure/store"
	"github.com/example/ec-storefront/internal/migrate"
	"github.com/redis/go-redis/v9"
)

// openStore connects the slot backend named by cfg.Storage.Driver.
// The returned func releases its connections.
func openStore(ctx context.Context, cfg config.Config) (store.KeyValueStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Println("[API] Storage: in-memory (state is lost on restart)")
		return store.NewMemoryStore(), func() {}, nil

	case config.DriverPostgres:
		db, err := store.ConnectPostgres(cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := migrate.Apply(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Println("[API] Storage: PostgreSQL (kv_slots)")
		return store.NewPostgresStore(db), func() { db.Close() }, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Printf("[API] Storage: Redis at %s", cfg.Redis.Addr)
		return store.NewRedisStore(client, cfg.Redis.Prefix), func() { client.Close() }, nil

	case config.DriverDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.DynamoDB.Region))
		if err != nil {
			return nil, nil, fmt.Errorf("load aws config: %w", err)
		}
		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.DynamoDB.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.DynamoDB.Endpoint)
			}
		})
		log.Printf("[API] Storage: DynamoDB table %s", cfg.DynamoDB.Table)
		return store.NewDynamoStore(client, cfg.DynamoDB.Table), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
