package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/wellspring-backend/internal/repos/testutil"
	"github.com/yungbote/wellspring-backend/internal/types"
)

func TestAdaptationRepoAppendAndList(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAdaptationRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, tx)
	plan := testutil.SeedPlan(t, tx, user.ID, time.Now().UTC())

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, tx, []*types.Adaptation{
			{
				ID:          uuid.New(),
				UserID:      user.ID,
				PlanID:      plan.ID,
				Trigger:     types.AdaptationTriggerItemSkipped,
				Description: "skip",
				ChangesMade: datatypes.JSON([]byte(`{"pillar":"movement","day_of_week":1}`)),
				CreatedAt:   base.Add(time.Duration(i) * time.Minute),
			},
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	rows, err := repo.ListByUserID(ctx, tx, user.ID, 10)
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("ListByUserID: expected 3 rows, got %d", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].CreatedAt.Before(rows[i].CreatedAt) {
			t.Fatalf("ListByUserID: rows not newest-first")
		}
	}

	limited, err := repo.ListByUserID(ctx, tx, user.ID, 2)
	if err != nil {
		t.Fatalf("ListByUserID (limit): %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("ListByUserID (limit): expected 2 rows, got %d", len(limited))
	}

	byPlan, err := repo.ListByPlanID(ctx, tx, plan.ID)
	if err != nil {
		t.Fatalf("ListByPlanID: %v", err)
	}
	if len(byPlan) != 3 {
		t.Fatalf("ListByPlanID: expected 3 rows, got %d", len(byPlan))
	}
}
