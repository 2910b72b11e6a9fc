package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/leaderboard"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/prediction"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/user"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/cache"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/logging"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/notify"
)

func plainUser(id, name string) user.User {
	return user.User{ID: id, Name: name}
}

func TestLeaderboardRecompute(t *testing.T) {
	t.Parallel()

	userRepo := &stubUserRepo{users: []user.User{
		plainUser("u1", "Awa"),
		plainUser("u2", "Moussa"),
		{ID: "admin", Name: "Admin", IsAdmin: true},
		plainUser("u3", "Fatou"),
	}}
	matchRepo := newStubMatchRepo(finishedMatch("m1", 1, 2, 1)) // home win
	predRepo := newStubPredictionRepo(
		prediction.Prediction{UserID: "u1", MatchID: "m1", Value: prediction.ValueHome},        // live: 3
		prediction.Prediction{UserID: "u2", MatchID: "m1", Value: prediction.ValueHomeOrDraw}, // live: 1
		prediction.Prediction{UserID: "u2", MatchID: "gone", Value: prediction.ValueHome, Points: intPtr(3)}, // frozen survivor
		prediction.Prediction{UserID: "admin", MatchID: "m1", Value: prediction.ValueHome},
	)

	svc := NewLeaderboardService(userRepo, matchRepo, predRepo, nil, logging.NewNop())

	entries, err := svc.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3 with the admin excluded", len(entries))
	}
	// u2: 1 live + 3 frozen = 4; u1: 3 live; u3: no picks, 0.
	if entries[0].User.ID != "u2" || entries[0].Points != 4 {
		t.Fatalf("first = %s with %d points, want u2 with 4", entries[0].User.ID, entries[0].Points)
	}
	if entries[1].User.ID != "u1" || entries[1].Points != 3 {
		t.Fatalf("second = %s with %d points, want u1 with 3", entries[1].User.ID, entries[1].Points)
	}
	if entries[2].User.ID != "u3" || entries[2].Points != 0 {
		t.Fatalf("third = %s with %d points, want u3 with 0", entries[2].User.ID, entries[2].Points)
	}
	for idx, e := range entries {
		if e.Rank != idx+1 {
			t.Fatalf("rank at index %d = %d, want %d", idx, e.Rank, idx+1)
		}
	}
}

func TestLeaderboardFrozenPointsAuthoritative(t *testing.T) {
	t.Parallel()

	userRepo := &stubUserRepo{users: []user.User{plainUser("u1", "Awa")}}
	matchRepo := newStubMatchRepo(finishedMatch("m1", 1, 0, 3)) // away win
	predRepo := newStubPredictionRepo(
		// Frozen value disagrees with what a live rescore would give;
		// the frozen value wins.
		prediction.Prediction{UserID: "u1", MatchID: "m1", Value: prediction.ValueAway, Points: intPtr(2)},
	)

	svc := NewLeaderboardService(userRepo, matchRepo, predRepo, nil, logging.NewNop())

	entries, err := svc.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if entries[0].Points != 2 {
		t.Fatalf("points = %d, want the frozen 2 over a live 3", entries[0].Points)
	}
}

func TestLeaderboardStableTies(t *testing.T) {
	t.Parallel()

	users := make([]user.User, 0, 6)
	for i := 1; i <= 6; i++ {
		users = append(users, plainUser(fmt.Sprintf("u%d", i), fmt.Sprintf("User %d", i)))
	}
	userRepo := &stubUserRepo{users: users}

	svc := NewLeaderboardService(userRepo, newStubMatchRepo(), newStubPredictionRepo(), nil, logging.NewNop())

	entries, err := svc.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	for idx, e := range entries {
		wantID := fmt.Sprintf("u%d", idx+1)
		if e.User.ID != wantID {
			t.Fatalf("index %d = %s, want %s: ties must keep listing order", idx, e.User.ID, wantID)
		}
	}
}

func TestLeaderboardRankChange(t *testing.T) {
	t.Parallel()

	userRepo := &stubUserRepo{users: []user.User{
		plainUser("u1", "Awa"),
		plainUser("u2", "Moussa"),
	}}
	matchRepo := newStubMatchRepo()
	predRepo := newStubPredictionRepo()

	svc := NewLeaderboardService(userRepo, matchRepo, predRepo, nil, logging.NewNop())

	first, err := svc.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	for _, e := range first {
		if e.RankChange != leaderboard.RankSame {
			t.Fatalf("first computation rank change = %q, want %q", e.RankChange, leaderboard.RankSame)
		}
	}

	// u2 overtakes u1 with a frozen pick.
	if err := predRepo.UpsertBatch(context.Background(), []prediction.Prediction{
		{UserID: "u2", MatchID: "gone", Value: prediction.ValueHome, Points: intPtr(3)},
	}); err != nil {
		t.Fatalf("UpsertBatch: %v", err)
	}

	second, err := svc.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if second[0].User.ID != "u2" || second[0].RankChange != leaderboard.RankUp {
		t.Fatalf("u2 change = %q at rank %d, want %q at 1", second[0].RankChange, second[0].Rank, leaderboard.RankUp)
	}
	if second[1].User.ID != "u1" || second[1].RankChange != leaderboard.RankDown {
		t.Fatalf("u1 change = %q at rank %d, want %q at 2", second[1].RankChange, second[1].Rank, leaderboard.RankDown)
	}
}

func TestLeaderboardStandingsUsesCache(t *testing.T) {
	t.Parallel()

	userRepo := &stubUserRepo{users: []user.User{plainUser("u1", "Awa")}}
	matchRepo := newStubMatchRepo(finishedMatch("m1", 1, 1, 0))
	predRepo := newStubPredictionRepo(
		prediction.Prediction{UserID: "u1", MatchID: "m1", Value: prediction.ValueHome},
	)

	store := cache.NewStore(time.Minute)
	svc := NewLeaderboardService(userRepo, matchRepo, predRepo, store, logging.NewNop())

	if _, err := svc.Standings(context.Background()); err != nil {
		t.Fatalf("Standings: %v", err)
	}

	// A direct repo write without an event does not invalidate the cache.
	if err := predRepo.DeleteAll(context.Background()); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}

	entries, err := svc.Standings(context.Background())
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	if entries[0].Points != 3 {
		t.Fatalf("cached points = %d, want the stale 3", entries[0].Points)
	}
}

func TestLeaderboardWatchRecomputes(t *testing.T) {
	t.Parallel()

	userRepo := &stubUserRepo{users: []user.User{plainUser("u1", "Awa")}}
	matchRepo := newStubMatchRepo(finishedMatch("m1", 1, 1, 0))
	predRepo := newStubPredictionRepo()

	store := cache.NewStore(time.Minute)
	svc := NewLeaderboardService(userRepo, matchRepo, predRepo, store, logging.NewNop())

	if _, err := svc.Standings(context.Background()); err != nil {
		t.Fatalf("Standings: %v", err)
	}

	events := make(chan notify.Event)
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Watch(context.Background(), events)
	}()

	if err := predRepo.UpsertBatch(context.Background(), []prediction.Prediction{
		{UserID: "u1", MatchID: "m1", Value: prediction.ValueHome},
	}); err != nil {
		t.Fatalf("UpsertBatch: %v", err)
	}
	events <- notify.Event{Collection: notify.CollectionPredictions, At: time.Now()}
	close(events)
	<-done

	entries, err := svc.Standings(context.Background())
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	if entries[0].Points != 3 {
		t.Fatalf("points after event = %d, want 3", entries[0].Points)
	}
}

func TestLeaderboardParallelFill(t *testing.T) {
	t.Parallel()

	n := parallelRecomputeThreshold + 10
	users := make([]user.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, plainUser(fmt.Sprintf("u%03d", i), fmt.Sprintf("User %d", i)))
	}
	userRepo := &stubUserRepo{users: users}
	predRepo := newStubPredictionRepo(
		prediction.Prediction{UserID: "u042", MatchID: "gone", Value: prediction.ValueHome, Points: intPtr(3)},
	)

	svc := NewLeaderboardService(userRepo, newStubMatchRepo(), predRepo, nil, logging.NewNop())

	entries, err := svc.Recompute(context.Background())
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if len(entries) != n {
		t.Fatalf("entries = %d, want %d", len(entries), n)
	}
	if entries[0].User.ID != "u042" || entries[0].Points != 3 {
		t.Fatalf("leader = %s with %d points, want u042 with 3", entries[0].User.ID, entries[0].Points)
	}
}
