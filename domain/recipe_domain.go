package domain

import (
	"errors"
	"strconv"
)

var (
	MessageSuccessFetchRecipes  = "success fetch recipe recommendations"
	MessageSuccessGetRecipes    = "success get recipes"
	MessageFailedFetchRecipes   = "failed to fetch recipe recommendations"
	MessageFailedGetRecipes     = "failed to get recipes"
	MessageFailedValidatePantry = "failed to validate pantry"

	ErrExternalService = errors.New("recipe API request failed")
	ErrStoreRead       = errors.New("failed to read recipe store")
	ErrStoreWrite      = errors.New("failed to write recipe store")
	ErrRecipeExists    = errors.New("recipe already stored")
)

const (
	OutcomePersisted = "persisted"
	OutcomePresent   = "present"
	OutcomeFailed    = "failed"
)

type (
	PantryItem struct {
		Name string `json:"name" validate:"required,max=100"`
	}

	RecipeRecommendationRequest struct {
		Pantry []PantryItem `json:"pantry" validate:"max=100,dive"`
	}

	RecipeIngredient struct {
		Name     string `json:"name"`
		Original string `json:"original"`
		Image    string `json:"image"`
	}

	Recipe struct {
		ID                int64              `json:"id"`
		Title             string             `json:"title"`
		Image             string             `json:"image"`
		UsedIngredients   []RecipeIngredient `json:"usedIngredients"`
		MissedIngredients []RecipeIngredient `json:"missedIngredients"`
		Likes             int                `json:"likes"`
	}

	WriteOutcome struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}

	SyncReport struct {
		RunID              string         `json:"run_id"`
		Fetched            int            `json:"fetched"`
		Persisted          int            `json:"persisted"`
		AlreadyPresent     int            `json:"already_present"`
		Failed             int            `json:"failed"`
		ExistingIDsUnknown bool           `json:"existing_ids_unknown"`
		Outcomes           []WriteOutcome `json:"outcomes"`
	}

	RecipeRecommendationResponse struct {
		Recipes      []Recipe   `json:"recipes"`
		TotalRecipes int        `json:"total_recipes"`
		Sync         SyncReport `json:"sync"`
	}

	RecipeListResponse struct {
		Recipes []Recipe `json:"recipes"`
		Total   int      `json:"total"`
	}
)

// Key is the store-side identifier of a recipe.
func (r Recipe) Key() string {
	return strconv.FormatInt(r.ID, 10)
}

// Record appends one per-record outcome and bumps its counter.
func (r *SyncReport) Record(id int64, status string, err error) {
	outcome := WriteOutcome{ID: id, Status: status}
	switch status {
	case OutcomePersisted:
		r.Persisted++
	case OutcomePresent:
		r.AlreadyPresent++
	case OutcomeFailed:
		r.Failed++
		if err != nil {
			outcome.Error = err.Error()
		}
	}
	r.Outcomes = append(r.Outcomes, outcome)
}
