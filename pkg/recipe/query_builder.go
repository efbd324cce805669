package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Wickypolineni/track-pantry/domain"
)

const (
	DefaultBaseURL    = "https://api.spoonacular.com"
	DefaultMaxResults = 5

	findByIngredientsPath = "/recipes/findByIngredients"
	maxErrorBodyBytes     = 512
)

type (
	// RecipeClient asks the recipe-matching API for recipes that use the
	// given pantry items. One call, one outbound request.
	RecipeClient interface {
		FindByIngredients(ctx context.Context, pantry []domain.PantryItem) ([]domain.Recipe, error)
	}

	ClientConfig struct {
		BaseURL    string
		APIKey     string
		MaxResults int
		// Ranking is sent only when positive: 1 maximises used
		// ingredients, 2 minimises missing ones.
		Ranking    int
		Timeout    time.Duration
		HTTPClient *http.Client
	}

	spoonacularClient struct {
		baseURL    string
		apiKey     string
		maxResults int
		ranking    int
		httpClient *http.Client
	}
)

func NewRecipeClient(cfg ClientConfig) RecipeClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &spoonacularClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		maxResults: cfg.MaxResults,
		ranking:    cfg.Ranking,
		httpClient: httpClient,
	}
}

// BuildIngredientsQuery turns a pantry list into the single comma-separated
// ingredients term: names are trimmed and lower-cased, blanks and repeats
// are dropped, first-seen order is kept.
func BuildIngredientsQuery(pantry []domain.PantryItem) string {
	seen := make(map[string]struct{}, len(pantry))
	names := make([]string, 0, len(pantry))
	for _, item := range pantry {
		name := strings.ToLower(strings.Join(strings.Fields(item.Name), " "))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return strings.Join(names, ",")
}

func (c *spoonacularClient) requestURL(pantry []domain.PantryItem) (string, error) {
	u, err := url.Parse(c.baseURL + findByIngredientsPath)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("ingredients", BuildIngredientsQuery(pantry))
	q.Set("number", strconv.Itoa(c.maxResults))
	if c.ranking > 0 {
		q.Set("ranking", strconv.Itoa(c.ranking))
	}
	q.Set("apiKey", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *spoonacularClient) FindByIngredients(ctx context.Context, pantry []domain.PantryItem) ([]domain.Recipe, error) {
	reqURL, err := c.requestURL(pantry)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrExternalService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrExternalService, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("%w: %s - %s", domain.ErrExternalService, resp.Status, strings.TrimSpace(string(bodyBytes)))
	}

	var recipes []domain.Recipe
	if err := json.NewDecoder(resp.Body).Decode(&recipes); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %w", domain.ErrExternalService, err)
	}
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	return recipes, nil
}
