package recipe_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Wickypolineni/track-pantry/domain"
	"github.com/Wickypolineni/track-pantry/pkg/recipe"
	"github.com/gofiber/fiber/v2/log"
	"github.com/stretchr/testify/require"
)

// scriptedRepository wraps an in-memory store and lets a test inject
// failures and count writes per id.
type scriptedRepository struct {
	recipe.RecipeRepository

	mu         sync.Mutex
	listIDsErr error
	listAllErr error
	insertErr  map[int64]error
	inserts    map[int64]int
}

func newScriptedRepository(seed ...domain.Recipe) *scriptedRepository {
	return &scriptedRepository{
		RecipeRepository: recipe.NewMemoryRecipeRepository(seed...),
		insertErr:        map[int64]error{},
		inserts:          map[int64]int{},
	}
}

func (r *scriptedRepository) ListIDs(ctx context.Context) (map[string]struct{}, error) {
	if r.listIDsErr != nil {
		return nil, r.listIDsErr
	}
	return r.RecipeRepository.ListIDs(ctx)
}

func (r *scriptedRepository) ListAll(ctx context.Context) ([]domain.Recipe, error) {
	if r.listAllErr != nil {
		return nil, r.listAllErr
	}
	return r.RecipeRepository.ListAll(ctx)
}

func (r *scriptedRepository) Insert(ctx context.Context, rec domain.Recipe) error {
	r.mu.Lock()
	r.inserts[rec.ID]++
	err := r.insertErr[rec.ID]
	r.mu.Unlock()

	if err != nil {
		return err
	}
	return r.RecipeRepository.Insert(ctx, rec)
}

func (r *scriptedRepository) insertCount(id int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inserts[id]
}

func recipesWithIDs(ids ...int64) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Recipe{
			ID:    id,
			Title: "recipe",
			Image: "https://img.spoonacular.com/recipes/" + domain.Recipe{ID: id}.Key() + ".jpg",
			UsedIngredients: []domain.RecipeIngredient{
				{Name: "egg", Original: "2 eggs", Image: "https://img.spoonacular.com/ingredients/egg.png"},
			},
			MissedIngredients: []domain.RecipeIngredient{
				{Name: "flour", Original: "1 cup flour", Image: "https://img.spoonacular.com/ingredients/flour.png"},
			},
			Likes: int(id) * 10,
		})
	}
	return out
}

func storedIDs(t *testing.T, repo recipe.RecipeRepository) []int64 {
	t.Helper()
	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)

	ids := make([]int64, 0, len(all))
	for _, r := range all {
		ids = append(ids, r.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func recipeIDs(recipes []domain.Recipe) []int64 {
	ids := make([]int64, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}
	return ids
}

// newRecipeAPI serves a fixed findByIngredients response.
func newRecipeAPI(t *testing.T, recipes []domain.Recipe) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(recipes)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// heldRecipeAPI counts findByIngredients requests and holds each one until
// open is called.
type heldRecipeAPI struct {
	*httptest.Server

	calls   atomic.Int32
	arrived chan struct{}
	release chan struct{}
	once    sync.Once
}

func newHeldRecipeAPI(t *testing.T, recipes []domain.Recipe) *heldRecipeAPI {
	t.Helper()
	api := &heldRecipeAPI{
		arrived: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.calls.Add(1)
		api.arrived <- struct{}{}
		<-api.release
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(recipes)
	}))
	t.Cleanup(api.Server.Close)
	t.Cleanup(api.open)
	return api
}

func (a *heldRecipeAPI) open() {
	a.once.Do(func() { close(a.release) })
}

func (a *heldRecipeAPI) waitArrivals(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-a.arrived:
		case <-time.After(5 * time.Second):
			t.Fatalf("only %d of %d requests reached the recipe API", i, n)
		}
	}
}

// captureLog sends the fiber logger to a buffer for the rest of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}
