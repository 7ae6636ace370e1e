package services

import (
	"context"
	"testing"
	"time"

	"github.com/Alianama/food-gamification-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProgressRepo is an in-memory ProgressRepository. Transaction
// snapshots state up front and restores it on error, mirroring a
// rollback.
type fakeProgressRepo struct {
	entries    map[string]*models.FoodHistory
	characters map[uint]*models.Character
}

func newFakeRepo() *fakeProgressRepo {
	return &fakeProgressRepo{
		entries:    map[string]*models.FoodHistory{},
		characters: map[uint]*models.Character{},
	}
}

func (f *fakeProgressRepo) GetFoodEntry(_ context.Context, userID uint, id string) (*models.FoodHistory, error) {
	e, ok := f.entries[id]
	if !ok || e.UserID != userID {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (f *fakeProgressRepo) MarkConsumed(_ context.Context, id string, xpGained int, consumedAt time.Time) (bool, error) {
	e, ok := f.entries[id]
	if !ok || e.IsConsumed {
		return false, nil
	}
	e.IsConsumed = true
	at := consumedAt
	e.ConsumedAt = &at
	e.XPGained = &xpGained
	return true, nil
}

func (f *fakeProgressRepo) GetCharacter(_ context.Context, userID uint) (*models.Character, error) {
	c, ok := f.characters[userID]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeProgressRepo) UpdateProgress(_ context.Context, userID uint, xpPoint, level, xpToNext int) error {
	c := f.characters[userID]
	c.XPPoint, c.Level, c.XPToNextLevel = xpPoint, level, xpToNext
	return nil
}

func (f *fakeProgressRepo) UpdateHealth(_ context.Context, userID uint, healthPoint int, status string) error {
	c := f.characters[userID]
	c.HealthPoint, c.StatusName = healthPoint, status
	return nil
}

func (f *fakeProgressRepo) ListConsumedSince(_ context.Context, userID uint, from time.Time) ([]models.FoodHistory, error) {
	var out []models.FoodHistory
	for _, e := range f.entries {
		if e.UserID == userID && e.IsConsumed && e.ConsumedAt != nil && !e.ConsumedAt.Before(from) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) Transaction(ctx context.Context, fn func(ProgressRepository) error) error {
	snapEntries := map[string]models.FoodHistory{}
	for id, e := range f.entries {
		snapEntries[id] = *e
	}
	snapCharacters := map[uint]models.Character{}
	for id, c := range f.characters {
		snapCharacters[id] = *c
	}

	if err := fn(f); err != nil {
		f.entries = map[string]*models.FoodHistory{}
		for id := range snapEntries {
			e := snapEntries[id]
			f.entries[id] = &e
		}
		f.characters = map[uint]*models.Character{}
		for id := range snapCharacters {
			c := snapCharacters[id]
			f.characters[id] = &c
		}
		return err
	}
	return nil
}

func fixedClock() func() time.Time {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func seedPendingEntry(repo *fakeProgressRepo, userID uint, id string) {
	repo.entries[id] = &models.FoodHistory{
		ID:       id,
		UserID:   userID,
		FoodName: "Grilled Chicken Salad",
		Calories: 500, Protein: 35, Fiber: 6, Sugar: 5, Sodium: 400, Fat: 20,
	}
}

func TestConfirmFoodAwardsXPAndHealth(t *testing.T) {
	repo := newFakeRepo()
	repo.characters[1] = &models.Character{UserID: 1, XPPoint: 95, Level: 0, XPToNextLevel: 100}
	seedPendingEntry(repo, 1, "entry-1")

	svc := NewCharacterService(repo).WithClock(fixedClock())
	res, err := svc.ConfirmFood(context.Background(), 1, "entry-1", true)
	require.NoError(t, err)

	// 10 base + 2 protein + 1 fiber = 13 XP; 95+13 crosses the level
	// threshold.
	assert.True(t, res.Confirmed)
	assert.Equal(t, 13, res.XPGained)
	assert.True(t, res.LevelUp)
	assert.Equal(t, 1, res.NewLevel)
	assert.Equal(t, 1, res.LevelsGained)
	require.NotNil(t, res.Character)
	assert.Equal(t, 8, res.Character.XPPoint)
	assert.Equal(t, 120, res.Character.XPToNextLevel)

	// One consumed day in the window feeds the weekly score.
	assert.Greater(t, res.HealthScore, 0)
	assert.NotEqual(t, "No Data", res.HealthStatus)

	ch := repo.characters[1]
	assert.Equal(t, 8, ch.XPPoint)
	assert.Equal(t, 1, ch.Level)
	assert.Equal(t, res.HealthScore, ch.HealthPoint)
	assert.Equal(t, res.HealthStatus, ch.StatusName)

	entry := repo.entries["entry-1"]
	assert.True(t, entry.IsConsumed)
	require.NotNil(t, entry.XPGained)
	assert.Equal(t, 13, *entry.XPGained)
}

func TestConfirmFoodTwiceFails(t *testing.T) {
	repo := newFakeRepo()
	repo.characters[1] = &models.Character{UserID: 1, XPToNextLevel: 100}
	seedPendingEntry(repo, 1, "entry-1")

	svc := NewCharacterService(repo).WithClock(fixedClock())
	_, err := svc.ConfirmFood(context.Background(), 1, "entry-1", true)
	require.NoError(t, err)

	after := *repo.characters[1]
	_, err = svc.ConfirmFood(context.Background(), 1, "entry-1", true)
	assert.Equal(t, ErrAlreadyConsumed, err)
	assert.Equal(t, after, *repo.characters[1], "second confirmation must not change state")
}

func TestConfirmFoodCancel(t *testing.T) {
	repo := newFakeRepo()
	repo.characters[1] = &models.Character{UserID: 1, XPToNextLevel: 100}
	seedPendingEntry(repo, 1, "entry-1")

	svc := NewCharacterService(repo).WithClock(fixedClock())
	res, err := svc.ConfirmFood(context.Background(), 1, "entry-1", false)
	require.NoError(t, err)

	assert.False(t, res.Confirmed)
	assert.Zero(t, res.XPGained)
	assert.Equal(t, "No Data", res.HealthStatus)

	// Entry stays pending and can still be confirmed later.
	assert.False(t, repo.entries["entry-1"].IsConsumed)
	res, err = svc.ConfirmFood(context.Background(), 1, "entry-1", true)
	require.NoError(t, err)
	assert.True(t, res.Confirmed)
}

func TestConfirmFoodValidation(t *testing.T) {
	repo := newFakeRepo()
	repo.characters[1] = &models.Character{UserID: 1, XPToNextLevel: 100}
	seedPendingEntry(repo, 1, "entry-1")
	svc := NewCharacterService(repo).WithClock(fixedClock())

	_, err := svc.ConfirmFood(context.Background(), 1, "", true)
	assert.Equal(t, ErrInvalidInput, err)

	_, err = svc.ConfirmFood(context.Background(), 1, "missing", true)
	assert.Equal(t, ErrFoodHistoryNotFound, err)

	// Another user's entry reads as absent, not as forbidden.
	_, err = svc.ConfirmFood(context.Background(), 2, "entry-1", true)
	assert.Equal(t, ErrFoodHistoryNotFound, err)
}

func TestConfirmFoodWithoutCharacterRollsBack(t *testing.T) {
	repo := newFakeRepo()
	seedPendingEntry(repo, 1, "entry-1")

	svc := NewCharacterService(repo).WithClock(fixedClock())
	_, err := svc.ConfirmFood(context.Background(), 1, "entry-1", true)
	assert.Equal(t, ErrCharacterNotFound, err)
	assert.False(t, repo.entries["entry-1"].IsConsumed)
}

func TestGroupDailyTotals(t *testing.T) {
	day1 := time.Date(2026, 8, 28, 23, 30, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	day2b := time.Date(2026, 8, 29, 19, 0, 0, 0, time.UTC)

	entries := []models.FoodHistory{
		{ConsumedAt: &day2, Calories: 600, Protein: 20},
		{ConsumedAt: &day1, Calories: 400, Protein: 10},
		{ConsumedAt: &day2b, Calories: 500, Protein: 15},
		{Calories: 999}, // never consumed, ignored
	}

	totals := GroupDailyTotals(entries)
	require.Len(t, totals, 2)
	assert.Equal(t, "2026-08-28", totals[0].Date)
	assert.Equal(t, 400.0, totals[0].Calories)
	assert.Equal(t, "2026-08-29", totals[1].Date)
	assert.Equal(t, 1100.0, totals[1].Calories)
	assert.Equal(t, 35.0, totals[1].Protein)
}
