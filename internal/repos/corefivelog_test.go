package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/wellspring-backend/internal/repos/testutil"
	"github.com/yungbote/wellspring-backend/internal/types"
)

func TestCoreFiveLogRepoListByUserSince(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewCoreFiveLogRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, tx)
	thisWeek := types.PlanWeekStart(time.Now().UTC())
	lastWeek := thisWeek.AddDate(0, 0, -7)
	oldWeek := thisWeek.AddDate(0, 0, -21)

	mk := func(week time.Time, loggedAt time.Time) *types.CoreFiveLog {
		return &types.CoreFiveLog{
			ID:        uuid.New(),
			UserID:    user.ID,
			Pillar:    types.PillarSleep,
			Value:     7.5,
			LoggedAt:  loggedAt,
			WeekStart: week,
			CreatedAt: time.Now().UTC(),
		}
	}
	rows := []*types.CoreFiveLog{
		mk(lastWeek, lastWeek.Add(10*time.Hour)),
		mk(thisWeek, thisWeek.Add(30*time.Hour)),
		mk(thisWeek, thisWeek.Add(8*time.Hour)),
		mk(oldWeek, oldWeek.Add(5*time.Hour)),
	}
	if _, err := repo.Create(ctx, tx, rows); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.ListByUserSince(ctx, tx, user.ID, lastWeek)
	if err != nil {
		t.Fatalf("ListByUserSince: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListByUserSince: expected 3 rows inside window, got %d", len(got))
	}
	// Newest week first, then newest log.
	if !got[0].WeekStart.Equal(thisWeek) || !got[1].WeekStart.Equal(thisWeek) || !got[2].WeekStart.Equal(lastWeek) {
		t.Fatalf("ListByUserSince: wrong week ordering: %+v", got)
	}
	if got[0].LoggedAt.Before(got[1].LoggedAt) {
		t.Fatalf("ListByUserSince: logs within week not newest-first")
	}

	week, err := repo.ListByUserWeek(ctx, tx, user.ID, thisWeek)
	if err != nil {
		t.Fatalf("ListByUserWeek: %v", err)
	}
	if len(week) != 2 {
		t.Fatalf("ListByUserWeek: expected 2 rows, got %d", len(week))
	}
}
