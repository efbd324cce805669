package recipe

import (
	"context"
	"errors"

	"github.com/Wickypolineni/track-pantry/domain"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	// RecipeSynchronizer reconciles fetched recipes against the persisted
	// collection. It only ever adds records.
	RecipeSynchronizer interface {
		// SyncAndReturn persists the fetched records whose id is not stored
		// yet and returns fetched unchanged, with a per-record report.
		SyncAndReturn(ctx context.Context, fetched []domain.Recipe) ([]domain.Recipe, domain.SyncReport)
		LoadPersisted(ctx context.Context) ([]domain.Recipe, error)
	}

	recipeSynchronizer struct {
		recipeRepository RecipeRepository
	}
)

func NewRecipeSynchronizer(recipeRepository RecipeRepository) RecipeSynchronizer {
	return &recipeSynchronizer{recipeRepository: recipeRepository}
}

func (s *recipeSynchronizer) SyncAndReturn(ctx context.Context, fetched []domain.Recipe) ([]domain.Recipe, domain.SyncReport) {
	report := domain.SyncReport{
		RunID:    uuid.NewString(),
		Fetched:  len(fetched),
		Outcomes: make([]domain.WriteOutcome, 0, len(fetched)),
	}

	// The id read always finishes before the first write.
	existing, err := s.recipeRepository.ListIDs(ctx)
	if err != nil {
		log.Errorw("recipe sync: listing stored ids failed, treating collection as empty",
			"run_id", report.RunID, "error", err)
		report.ExistingIDsUnknown = true
		existing = map[string]struct{}{}
	}

	// Repeats of an id within one batch reuse the outcome of its first write.
	attempted := make(map[string]error, len(fetched))
	for _, rec := range fetched {
		key := rec.Key()
		if _, ok := existing[key]; ok {
			report.Record(rec.ID, domain.OutcomePresent, nil)
			continue
		}
		if prev, ok := attempted[key]; ok {
			if prev != nil {
				report.Record(rec.ID, domain.OutcomeFailed, prev)
			} else {
				report.Record(rec.ID, domain.OutcomePresent, nil)
			}
			continue
		}

		err := s.recipeRepository.Insert(ctx, rec)
		switch {
		case err == nil:
			report.Record(rec.ID, domain.OutcomePersisted, nil)
		case errors.Is(err, domain.ErrRecipeExists):
			err = nil
			report.Record(rec.ID, domain.OutcomePresent, nil)
		default:
			log.Errorw("recipe sync: write failed", "run_id", report.RunID, "recipe_id", rec.ID, "error", err)
			report.Record(rec.ID, domain.OutcomeFailed, err)
		}
		attempted[key] = err
	}

	log.Infow("recipe sync done",
		"run_id", report.RunID,
		"fetched", report.Fetched,
		"persisted", report.Persisted,
		"already_present", report.AlreadyPresent,
		"failed", report.Failed)

	return fetched, report
}

func (s *recipeSynchronizer) LoadPersisted(ctx context.Context) ([]domain.Recipe, error) {
	return s.recipeRepository.ListAll(ctx)
}
