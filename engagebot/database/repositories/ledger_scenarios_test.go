package repositories_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ellavondegurechaff/engagebot/engagebot/database/repositories"
	"github.com/ellavondegurechaff/engagebot/internal/domain/ledger"
	"github.com/ellavondegurechaff/engagebot/internal/domain/ledger/mock"
)

const postURL = "https://www.instagram.com/p/Cabc123/"

func newScenario(t *testing.T) (ledger.Service, *repositories.LedgerRepository, *mock.MockVerifier) {
	t.Helper()
	repo := newTestRepo(t)
	verifier := mock.NewMockVerifier(gomock.NewController(t))
	svc := ledger.NewService(repo, verifier, ledger.Options{
		RuleVersion:   "v1",
		VerifyTimeout: 5 * time.Second,
		Now:           func() time.Time { return linkTime },
	})
	return svc, repo, verifier
}

func TestScenario_RegisterSubmitQueue(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newScenario(t)

	require.NoError(t, svc.RegisterHandle(ctx, "alice", "alice"))
	stats, err := svc.Stats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, ledger.Stats{SpendableScore: 5, LifetimeScore: 5, Handle: "alice"}, stats)

	linkID, err := svc.SubmitLink(ctx, "alice", postURL)
	require.NoError(t, err)

	stats, err = svc.Stats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, ledger.Stats{SpendableScore: 4, LifetimeScore: 5, Handle: "alice"}, stats)

	queue, err := svc.Queue(ctx, "bob", 0)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, linkID, queue[0].ID)
	assert.Equal(t, postURL, queue[0].URL)

	own, err := svc.Queue(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Empty(t, own)
}

func TestScenario_SubmitWithZeroScore(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newScenario(t)

	require.NoError(t, svc.RegisterHandle(ctx, "alice", "alice"))
	require.NoError(t, repo.AdjustSpendable(ctx, "alice", -5))

	_, err := svc.SubmitLink(ctx, "alice", postURL)
	assert.ErrorIs(t, err, ledger.ErrInsufficientScore)

	assert.Equal(t, 0, mustUser(t, repo, "alice").SpendableScore)
	queue, err := svc.Queue(ctx, "bob", 0)
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestScenario_SubmitWithoutHandle(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newScenario(t)

	_, err := svc.SubmitLink(ctx, "alice", postURL)
	assert.ErrorIs(t, err, ledger.ErrHandleRequired)

	_, found, err := repo.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, found)
	stats, err := svc.Stats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, ledger.Stats{}, stats)
}

func TestScenario_VerificationNotLiked(t *testing.T) {
	ctx := context.Background()
	svc, repo, verifier := newScenario(t)

	require.NoError(t, svc.RegisterHandle(ctx, "alice", "alice"))
	require.NoError(t, svc.RegisterHandle(ctx, "bob", "bob"))
	linkID, err := svc.SubmitLink(ctx, "alice", postURL)
	require.NoError(t, err)

	verifier.EXPECT().Verify(gomock.Any(), "bob", postURL).Return(false, nil)

	err = svc.RequestVerification(ctx, "bob", linkID)
	assert.ErrorIs(t, err, ledger.ErrNotLiked)

	liked, err := repo.HasLike(ctx, "bob", linkID)
	require.NoError(t, err)
	assert.False(t, liked)
	bob := mustUser(t, repo, "bob")
	assert.Equal(t, 5, bob.SpendableScore)
	assert.Equal(t, 5, bob.LifetimeScore)
}

func TestScenario_VerificationIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, repo, verifier := newScenario(t)

	require.NoError(t, svc.RegisterHandle(ctx, "alice", "alice"))
	require.NoError(t, svc.RegisterHandle(ctx, "bob", "bob"))
	linkID, err := svc.SubmitLink(ctx, "alice", postURL)
	require.NoError(t, err)

	verifier.EXPECT().Verify(gomock.Any(), "bob", postURL).Return(true, nil).Times(1)

	require.NoError(t, svc.RequestVerification(ctx, "bob", linkID))
	err = svc.RequestVerification(ctx, "bob", linkID)
	assert.ErrorIs(t, err, ledger.ErrAlreadyLiked)

	bob := mustUser(t, repo, "bob")
	assert.Equal(t, 6, bob.SpendableScore)
	assert.Equal(t, 6, bob.LifetimeScore)

	queue, err := svc.Queue(ctx, "bob", 0)
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestScenario_Leaderboard(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newScenario(t)

	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		require.NoError(t, svc.RegisterHandle(ctx, id, "h_"+id))
	}
	require.NoError(t, repo.CreditLifetimeAndSpendable(ctx, "e", ""))
	require.NoError(t, repo.CreditLifetimeAndSpendable(ctx, "c", ""))
	require.NoError(t, repo.CreditLifetimeAndSpendable(ctx, "c", ""))

	board, err := svc.Leaderboard(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, []ledger.LeaderboardEntry{
		{Handle: "h_c", LifetimeScore: 7},
		{Handle: "h_e", LifetimeScore: 6},
		{Handle: "h_a", LifetimeScore: 5},
		{Handle: "h_b", LifetimeScore: 5},
		{Handle: "h_d", LifetimeScore: 5},
	}, board)
}

// Random walks over submit and verify must never push a spendable score
// below zero or a lifetime score down.
func TestScenario_ScoreInvariants(t *testing.T) {
	ctx := context.Background()
	svc, repo, verifier := newScenario(t)
	rng := rand.New(rand.NewSource(42))

	users := []string{"u1", "u2", "u3"}
	for _, u := range users {
		require.NoError(t, svc.RegisterHandle(ctx, u, u))
	}
	verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string) (bool, error) {
			return rng.Intn(2) == 0, nil
		}).AnyTimes()

	lifetime := map[string]int{"u1": 5, "u2": 5, "u3": 5}
	var links []int64

	for i := 0; i < 200; i++ {
		user := users[rng.Intn(len(users))]
		if rng.Intn(2) == 0 || len(links) == 0 {
			if id, err := svc.SubmitLink(ctx, user, postURL); err == nil {
				links = append(links, id)
			}
		} else {
			_ = svc.RequestVerification(ctx, user, links[rng.Intn(len(links))])
		}

		for _, u := range users {
			got := mustUser(t, repo, u)
			require.GreaterOrEqual(t, got.SpendableScore, 0)
			require.GreaterOrEqual(t, got.LifetimeScore, lifetime[u])
			lifetime[u] = got.LifetimeScore
		}
	}
}
