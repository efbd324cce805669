package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Wickypolineni/track-pantry/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const s3RecipeSuffix = ".json"

type (
	// S3API is the part of *s3.Client the recipe store uses.
	S3API interface {
		s3.ListObjectsV2APIClient
		GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	}

	// s3RecipeRepository keeps one object per recipe under
	// <collection>/<id>.json. Writes are conditional on the key being absent.
	s3RecipeRepository struct {
		client S3API
		bucket string
		prefix string
	}
)

func NewS3RecipeRepository(client S3API, bucket, collection string) RecipeRepository {
	return &s3RecipeRepository{
		client: client,
		bucket: bucket,
		prefix: strings.TrimSuffix(collection, "/") + "/",
	}
}

func (r *s3RecipeRepository) objectKey(id string) string {
	return r.prefix + id + s3RecipeSuffix
}

func (r *s3RecipeRepository) listKeys(ctx context.Context) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(r.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.bucket),
		Prefix: aws.String(r.prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreRead, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, s3RecipeSuffix) {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

func (r *s3RecipeRepository) ListIDs(ctx context.Context) (map[string]struct{}, error) {
	keys, err := r.listKeys(ctx)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		id := strings.TrimSuffix(strings.TrimPrefix(key, r.prefix), s3RecipeSuffix)
		set[id] = struct{}{}
	}
	return set, nil
}

func (r *s3RecipeRepository) ListAll(ctx context.Context) ([]domain.Recipe, error) {
	keys, err := r.listKeys(ctx)
	if err != nil {
		return nil, err
	}

	recipes := make([]domain.Recipe, 0, len(keys))
	for _, key := range keys {
		recipe, err := r.get(ctx, key)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func (r *s3RecipeRepository) get(ctx context.Context, key string) (domain.Recipe, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("%w: get %s: %w", domain.ErrStoreRead, key, err)
	}
	defer out.Body.Close()

	var recipe domain.Recipe
	if err := json.NewDecoder(out.Body).Decode(&recipe); err != nil {
		return domain.Recipe{}, fmt.Errorf("%w: decode %s: %w", domain.ErrStoreRead, key, err)
	}
	return recipe, nil
}

func (r *s3RecipeRepository) Insert(ctx context.Context, recipe domain.Recipe) error {
	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("%w: encode recipe %d: %w", domain.ErrStoreWrite, recipe.ID, err)
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.objectKey(recipe.Key())),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		if isConditionalConflict(err) {
			return domain.ErrRecipeExists
		}
		return fmt.Errorf("%w: recipe %d: %w", domain.ErrStoreWrite, recipe.ID, err)
	}
	return nil
}

func isConditionalConflict(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "PreconditionFailed", "ConditionalRequestConflict":
		return true
	}
	return false
}
