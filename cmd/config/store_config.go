package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/Wickypolineni/track-pantry/internal/utils"
	"github.com/Wickypolineni/track-pantry/pkg/recipe"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
	StoreDriverS3       = "s3"
	StoreDriverMemory   = "memory"
)

// NewRecipeStore opens the recipe collection selected by STORE_DRIVER.
// The returned func releases the underlying connection.
func NewRecipeStore(ctx context.Context) (recipe.RecipeRepository, func() error, error) {
	collection := utils.GetConfig("RECIPE_COLLECTION")
	driver := strings.ToLower(utils.GetConfig("STORE_DRIVER"))
	noop := func() error { return nil }

	switch driver {
	case StoreDriverPostgres:
		db, err := ConnectDB()
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return recipe.NewRecipeRepository(db, collection), sqlDB.Close, nil

	case StoreDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     utils.GetConfig("REDIS_ADDR"),
			Password: utils.GetConfig("REDIS_PASSWORD"),
			DB:       utils.GetConfigInt("REDIS_DB", 0),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return recipe.NewRedisRecipeRepository(client, collection), client.Close, nil

	case StoreDriverS3:
		client, err := NewS3Client(ctx)
		if err != nil {
			return nil, nil, err
		}
		return recipe.NewS3RecipeRepository(client, utils.GetConfig("AWS_S3_BUCKET"), collection), noop, nil

	case StoreDriverMemory:
		log.Warn("recipe store is in memory, records are lost on exit")
		return recipe.NewMemoryRecipeRepository(), noop, nil
	}

	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
}

func NewS3Client(ctx context.Context) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(utils.GetConfig("AWS_S3_REGION")),
	}
	if key := utils.GetConfig("AWS_ACCESS_KEY"); key != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, utils.GetConfig("AWS_SECRET_KEY"), ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config for S3: %w", err)
	}

	endpoint := utils.GetConfig("AWS_S3_ENDPOINT")
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
