package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/torneoveteranos/tournament-system/models"
)

func intPtr(v int) *int { return &v }

func newResultService(store *fakeStore) ResultService {
	return NewResultService(
		store,
		store,
		fakeTeamRepo{store},
		fakePlayerRepo{store},
		fakeGroupRepo{store},
		store,
		nil,
		nil,
	)
}

func seedTwoTeamLeague(store *fakeStore) int {
	store.addTeam(1, "Atletico Norte")
	store.addTeam(2, "Deportivo Sur")
	return store.addMatch(models.Match{Phase: models.PhaseRegular, HomeTeamID: 1, AwayTeamID: 2})
}

func TestSubmitResultRequiresAdmin(t *testing.T) {
	store := newFakeStore()
	matchID := seedTwoTeamLeague(store)
	svc := newResultService(store)

	_, err := svc.SubmitResult(context.Background(), SubmitResultInput{
		MatchID:   matchID,
		HomeScore: intPtr(1),
		AwayScore: intPtr(0),
		Role:      models.RoleUser,
	})
	if !errors.Is(err, ErrResultSubmitForbidden) {
		t.Fatalf("expected ErrResultSubmitForbidden, got %v", err)
	}
	if store.matches[matchID].HomeScore != nil {
		t.Fatal("score was recorded despite forbidden role")
	}
}

func TestSubmitResultRejectsInvalidScores(t *testing.T) {
	store := newFakeStore()
	matchID := seedTwoTeamLeague(store)
	svc := newResultService(store)

	cases := []struct {
		name string
		home *int
		away *int
	}{
		{"missing home", nil, intPtr(1)},
		{"missing away", intPtr(1), nil},
		{"negative home", intPtr(-1), intPtr(0)},
		{"negative away", intPtr(0), intPtr(-3)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SubmitResult(context.Background(), SubmitResultInput{
				MatchID:   matchID,
				HomeScore: tc.home,
				AwayScore: tc.away,
				Role:      models.RoleAdmin,
			})
			if !errors.Is(err, ErrInvalidScore) {
				t.Fatalf("expected ErrInvalidScore, got %v", err)
			}
		})
	}
}

func TestSubmitResultRejectsNegativeDeltas(t *testing.T) {
	store := newFakeStore()
	matchID := seedTwoTeamLeague(store)
	store.addPlayer(10, 1, "Carlos")
	svc := newResultService(store)

	_, err := svc.SubmitResult(context.Background(), SubmitResultInput{
		MatchID:     matchID,
		HomeScore:   intPtr(1),
		AwayScore:   intPtr(0),
		PlayerStats: []PlayerStatDelta{{PlayerID: 10, Goals: -1}},
		Role:        models.RoleAdmin,
	})
	if !errors.Is(err, ErrInvalidPlayerStats) {
		t.Fatalf("expected ErrInvalidPlayerStats, got %v", err)
	}
}

func TestSubmitResultMatchNotFound(t *testing.T) {
	store := newFakeStore()
	seedTwoTeamLeague(store)
	svc := newResultService(store)

	_, err := svc.SubmitResult(context.Background(), SubmitResultInput{
		MatchID:   999,
		HomeScore: intPtr(1),
		AwayScore: intPtr(0),
		Role:      models.RoleAdmin,
	})
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestSubmitResultRecordsWinAndRefreshesTable(t *testing.T) {
	store := newFakeStore()
	matchID := seedTwoTeamLeague(store)
	store.addPlayer(10, 1, "Carlos")
	store.addPlayer(11, 1, "Miguel")
	svc := newResultService(store)

	out, err := svc.SubmitResult(context.Background(), SubmitResultInput{
		MatchID:   matchID,
		HomeScore: intPtr(3),
		AwayScore: intPtr(1),
		PlayerStats: []PlayerStatDelta{
			{PlayerID: 10, Goals: 2, YellowCards: 1},
			{PlayerID: 11, Goals: 1},
		},
		Role: models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("SubmitResult: %v", err)
	}

	if out.Match.HomeScore == nil || *out.Match.HomeScore != 3 {
		t.Fatalf("home score not recorded: %+v", out.Match)
	}
	want := []models.Team{
		{ID: 1, Name: "Atletico Norte", PJ: 1, PG: 1, GF: 3, GC: 1, GD: 2, Pts: 3},
		{ID: 2, Name: "Deportivo Sur", PJ: 1, PP: 1, GF: 1, GC: 3, GD: -2, Pts: 0},
	}
	if diff := cmp.Diff(want, out.Standings); diff != "" {
		t.Errorf("standings mismatch (-want +got):\n%s", diff)
	}

	// The snapshot on the teams table must match the returned table.
	if got := store.teams[1].Pts; got != 3 {
		t.Errorf("persisted pts of winner = %d, want 3", got)
	}
	if got := store.teams[2].GD; got != -2 {
		t.Errorf("persisted gd of loser = %d, want -2", got)
	}
	if got := store.players[10]; got.Goals != 2 || got.YellowCards != 1 {
		t.Errorf("player 10 stats = %+v", got)
	}
}

func TestSubmitResultOverwriteReplacesScore(t *testing.T) {
	store := newFakeStore()
	matchID := seedTwoTeamLeague(store)
	svc := newResultService(store)

	submit := func(home, away int) *SubmitResultOutput {
		t.Helper()
		out, err := svc.SubmitResult(context.Background(), SubmitResultInput{
			MatchID:   matchID,
			HomeScore: intPtr(home),
			AwayScore: intPtr(away),
			Role:      models.RoleAdmin,
		})
		if err != nil {
			t.Fatalf("SubmitResult(%d-%d): %v", home, away, err)
		}
		return out
	}

	submit(3, 1)
	out := submit(2, 2)

	// The table reflects only the corrected score, not both submissions.
	for _, team := range out.Standings {
		if team.PJ != 1 || team.PE != 1 || team.Pts != 1 {
			t.Errorf("team %d after correction = %+v, want one draw", team.ID, team)
		}
	}
}

func TestSubmitResultPlayerDeltasAreAdditive(t *testing.T) {
	store := newFakeStore()
	matchID := seedTwoTeamLeague(store)
	store.addPlayer(10, 1, "Carlos")
	svc := newResultService(store)

	for i := 0; i < 2; i++ {
		_, err := svc.SubmitResult(context.Background(), SubmitResultInput{
			MatchID:     matchID,
			HomeScore:   intPtr(1),
			AwayScore:   intPtr(0),
			PlayerStats: []PlayerStatDelta{{PlayerID: 10, Goals: 1}},
			Role:        models.RoleAdmin,
		})
		if err != nil {
			t.Fatalf("SubmitResult: %v", err)
		}
	}

	if got := store.players[10].Goals; got != 2 {
		t.Fatalf("goals after two identical submissions = %d, want 2", got)
	}
}

func TestSubmitResultRollsBackOnPlayerFault(t *testing.T) {
	store := newFakeStore()
	matchID := seedTwoTeamLeague(store)
	store.addPlayer(10, 1, "Carlos")
	store.failPlayerUpdate = errStorageDown
	svc := newResultService(store)

	_, err := svc.SubmitResult(context.Background(), SubmitResultInput{
		MatchID:     matchID,
		HomeScore:   intPtr(3),
		AwayScore:   intPtr(1),
		PlayerStats: []PlayerStatDelta{{PlayerID: 10, Goals: 2}},
		Role:        models.RoleAdmin,
	})
	if !errors.Is(err, errStorageDown) {
		t.Fatalf("expected injected fault, got %v", err)
	}

	match := store.matches[matchID]
	if match.HomeScore != nil || match.AwayScore != nil {
		t.Error("match score survived the rollback")
	}
	if store.players[10].Goals != 0 {
		t.Error("player stats survived the rollback")
	}
	if store.teams[1].Pts != 0 {
		t.Error("team snapshot survived the rollback")
	}
}

func TestSubmitResultUnknownPlayerRollsBack(t *testing.T) {
	store := newFakeStore()
	matchID := seedTwoTeamLeague(store)
	svc := newResultService(store)

	_, err := svc.SubmitResult(context.Background(), SubmitResultInput{
		MatchID:     matchID,
		HomeScore:   intPtr(2),
		AwayScore:   intPtr(0),
		PlayerStats: []PlayerStatDelta{{PlayerID: 404, Goals: 1}},
		Role:        models.RoleAdmin,
	})
	if !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
	if store.matches[matchID].HomeScore != nil {
		t.Error("match score survived the rollback")
	}
}

func TestSubmitResultPhase2RecomputesOnlyTheGroup(t *testing.T) {
	store := newFakeStore()
	for id, name := range map[int]string{1: "Norte", 2: "Sur", 3: "Este", 4: "Oeste"} {
		store.addTeam(id, name)
	}
	groupA := "A"
	store.groups = []models.Phase2Group{
		{ID: 1, GroupName: groupA, Position: 1, TeamID: 1},
		{ID: 2, GroupName: groupA, Position: 2, TeamID: 3},
		{ID: 3, GroupName: "B", Position: 1, TeamID: 2},
		{ID: 4, GroupName: "B", Position: 2, TeamID: 4},
	}
	matchID := store.addMatch(models.Match{
		Phase: models.PhaseTwo, GroupName: &groupA, HomeTeamID: 1, AwayTeamID: 3,
	})
	svc := newResultService(store)

	out, err := svc.SubmitResult(context.Background(), SubmitResultInput{
		MatchID:   matchID,
		HomeScore: intPtr(2),
		AwayScore: intPtr(0),
		Role:      models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("SubmitResult: %v", err)
	}

	if out.Group == nil || *out.Group != groupA {
		t.Fatalf("output group = %v, want A", out.Group)
	}
	if len(out.Standings) != 2 {
		t.Fatalf("phase 2 table has %d rows, want only the group's 2", len(out.Standings))
	}
	if out.Standings[0].ID != 1 || out.Standings[0].Pts != 3 {
		t.Errorf("group leader = %+v, want team 1 on 3 pts", out.Standings[0])
	}

	// Snapshot lands in the group standings, not the league table.
	rowA := store.standings[groupA][1]
	if rowA.Position != 1 || rowA.Pts != 3 || rowA.GD != 2 {
		t.Errorf("persisted group row = %+v", rowA)
	}
	if store.teams[1].Pts != 0 {
		t.Error("phase 2 result leaked into the regular-season snapshot")
	}
	if len(store.standings["B"]) != 0 {
		t.Error("untouched group was rewritten")
	}
}
