package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/torneoveteranos/tournament-system/models"
	"github.com/torneoveteranos/tournament-system/repositories"
)

// fakeStore is an in-memory stand-in for the postgres repositories. It also
// implements db.Transactor with snapshot/restore semantics so rollback
// behavior can be asserted without a database.
type fakeStore struct {
	teams       map[int]models.Team
	teamOrder   []int
	players     map[int]models.Player
	matches     map[int]models.Match
	matchOrder  []int
	groups      []models.Phase2Group
	standings   map[string]map[int]models.GroupStanding
	nextMatchID int

	failPlayerUpdate error // injected fault for the stat-update step
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		teams:       make(map[int]models.Team),
		players:     make(map[int]models.Player),
		matches:     make(map[int]models.Match),
		standings:   make(map[string]map[int]models.GroupStanding),
		nextMatchID: 1,
	}
}

func (f *fakeStore) addTeam(id int, name string) {
	f.teams[id] = models.Team{ID: id, Name: name}
	f.teamOrder = append(f.teamOrder, id)
}

func (f *fakeStore) addPlayer(id, teamID int, name string) {
	f.players[id] = models.Player{ID: id, Name: name, TeamID: teamID}
}

func (f *fakeStore) addMatch(match models.Match) int {
	match.ID = f.nextMatchID
	f.nextMatchID++
	f.matches[match.ID] = match
	f.matchOrder = append(f.matchOrder, match.ID)
	return match.ID
}

// --- db.Transactor ---

type storeSnapshot struct {
	teams      map[int]models.Team
	teamOrder  []int
	players    map[int]models.Player
	matches    map[int]models.Match
	matchOrder []int
	groups     []models.Phase2Group
	standings  map[string]map[int]models.GroupStanding
}

func (f *fakeStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		teams:      make(map[int]models.Team, len(f.teams)),
		teamOrder:  append([]int(nil), f.teamOrder...),
		players:    make(map[int]models.Player, len(f.players)),
		matches:    make(map[int]models.Match, len(f.matches)),
		matchOrder: append([]int(nil), f.matchOrder...),
		groups:     append([]models.Phase2Group(nil), f.groups...),
		standings:  make(map[string]map[int]models.GroupStanding, len(f.standings)),
	}
	for id, t := range f.teams {
		snap.teams[id] = t
	}
	for id, p := range f.players {
		snap.players[id] = p
	}
	for id, m := range f.matches {
		snap.matches[id] = m
	}
	for group, rows := range f.standings {
		copied := make(map[int]models.GroupStanding, len(rows))
		for teamID, row := range rows {
			copied[teamID] = row
		}
		snap.standings[group] = copied
	}
	return snap
}

func (f *fakeStore) restore(snap storeSnapshot) {
	f.teams = snap.teams
	f.teamOrder = snap.teamOrder
	f.players = snap.players
	f.matches = snap.matches
	f.matchOrder = snap.matchOrder
	f.groups = snap.groups
	f.standings = snap.standings
}

func (f *fakeStore) WithinTransaction(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	snap := f.snapshot()
	if err := fn(nil); err != nil {
		f.restore(snap)
		return err
	}
	return nil
}

// --- repositories.MatchRepository ---

func (f *fakeStore) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	match.ID = f.addMatch(*match)
	return nil
}

func (f *fakeStore) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, matches []*models.Match) error {
	for _, match := range matches {
		if err := f.Create(ctx, exec, match); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	match, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return &match, nil
}

func (f *fakeStore) GetByIDForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	return f.GetByID(ctx, exec, id)
}

func (f *fakeStore) ListByPhase(ctx context.Context, exec repositories.SQLExecutor, phase models.MatchPhase) ([]models.Match, error) {
	matches := make([]models.Match, 0)
	for _, id := range f.matchOrder {
		if match := f.matches[id]; match.Phase == phase {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (f *fakeStore) ListByPhaseAndGroup(ctx context.Context, exec repositories.SQLExecutor, phase models.MatchPhase, groupName string) ([]models.Match, error) {
	matches := make([]models.Match, 0)
	for _, id := range f.matchOrder {
		match := f.matches[id]
		if match.Phase == phase && match.GroupName != nil && *match.GroupName == groupName {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (f *fakeStore) CountByPhase(ctx context.Context, exec repositories.SQLExecutor, phase models.MatchPhase) (int, error) {
	matches, _ := f.ListByPhase(ctx, exec, phase)
	return len(matches), nil
}

func (f *fakeStore) UpdateScore(ctx context.Context, exec repositories.SQLExecutor, id, homeScore, awayScore int) error {
	match, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.HomeScore = &homeScore
	match.AwayScore = &awayScore
	f.matches[id] = match
	return nil
}

// --- repositories.TeamRepository ---

func (f *fakeStore) List(ctx context.Context, exec repositories.SQLExecutor) ([]models.Team, error) {
	teams := make([]models.Team, 0, len(f.teamOrder))
	for _, id := range f.teamOrder {
		teams = append(teams, f.teams[id])
	}
	return teams, nil
}

func (f *fakeStore) GetTeamByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &team, nil
}

func (f *fakeStore) UpdateStats(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error {
	stored, ok := f.teams[team.ID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	stored.PJ, stored.PG, stored.PE, stored.PP = team.PJ, team.PG, team.PE, team.PP
	stored.GF, stored.GC, stored.GD, stored.Pts = team.GF, team.GC, team.GD, team.Pts
	f.teams[team.ID] = stored
	return nil
}

func (f *fakeStore) UpdateCrestKey(ctx context.Context, exec repositories.SQLExecutor, id int, crestKey *string) error {
	team, ok := f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.CrestKey = crestKey
	f.teams[id] = team
	return nil
}

func (f *fakeStore) ListByOffense(ctx context.Context, exec repositories.SQLExecutor) ([]models.OffenseRow, error) {
	teams, _ := f.List(ctx, exec)
	rows := make([]models.OffenseRow, 0, len(teams))
	for _, team := range teams {
		rows = append(rows, models.OffenseRow{TeamID: team.ID, Name: team.Name, GF: team.GF})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].GF > rows[j].GF })
	return rows, nil
}

func (f *fakeStore) ListByDefense(ctx context.Context, exec repositories.SQLExecutor) ([]models.DefenseRow, error) {
	teams, _ := f.List(ctx, exec)
	rows := make([]models.DefenseRow, 0, len(teams))
	for _, team := range teams {
		rows = append(rows, models.DefenseRow{TeamID: team.ID, Name: team.Name, GC: team.GC})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].GC < rows[j].GC })
	return rows, nil
}

// --- repositories.PlayerRepository ---

func (f *fakeStore) CreatePlayer(ctx context.Context, exec repositories.SQLExecutor, player *models.Player) error {
	player.ID = len(f.players) + 1
	f.players[player.ID] = *player
	return nil
}

func (f *fakeStore) GetPlayerByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Player, error) {
	player, ok := f.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &player, nil
}

func (f *fakeStore) ListByTeam(ctx context.Context, exec repositories.SQLExecutor, teamID int) ([]models.Player, error) {
	players := make([]models.Player, 0)
	for _, player := range f.players {
		if player.TeamID == teamID {
			players = append(players, player)
		}
	}
	sort.SliceStable(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players, nil
}

func (f *fakeStore) Rename(ctx context.Context, exec repositories.SQLExecutor, id int, name string) error {
	player, ok := f.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	player.Name = name
	f.players[id] = player
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	if _, ok := f.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(f.players, id)
	return nil
}

func (f *fakeStore) IncrementStats(ctx context.Context, exec repositories.SQLExecutor, id, goals, yellowCards, redCards, blueCards int) error {
	if f.failPlayerUpdate != nil {
		return f.failPlayerUpdate
	}
	player, ok := f.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	player.Goals += goals
	player.YellowCards += yellowCards
	player.RedCards += redCards
	player.BlueCards += blueCards
	f.players[id] = player
	return nil
}

func (f *fakeStore) ListScorers(ctx context.Context, exec repositories.SQLExecutor) ([]models.ScorerRow, error) {
	rows := make([]models.ScorerRow, 0)
	for _, player := range f.players {
		if player.Goals > 0 {
			rows = append(rows, models.ScorerRow{PlayerID: player.ID, Name: player.Name, Goals: player.Goals})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Goals != rows[j].Goals {
			return rows[i].Goals > rows[j].Goals
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

func (f *fakeStore) ListCarded(ctx context.Context, exec repositories.SQLExecutor) ([]models.CardRow, error) {
	rows := make([]models.CardRow, 0)
	for _, player := range f.players {
		if player.YellowCards > 0 || player.RedCards > 0 || player.BlueCards > 0 {
			rows = append(rows, models.CardRow{
				PlayerID:    player.ID,
				Name:        player.Name,
				YellowCards: player.YellowCards,
				RedCards:    player.RedCards,
				BlueCards:   player.BlueCards,
			})
		}
	}
	return rows, nil
}

// --- repositories.Phase2GroupRepository ---

func (f *fakeStore) CreateGroupBatch(ctx context.Context, exec repositories.SQLExecutor, groups []*models.Phase2Group) error {
	for _, group := range groups {
		for _, existing := range f.groups {
			if existing.TeamID == group.TeamID {
				return repositories.ErrGroupTeamConflict
			}
		}
		group.ID = len(f.groups) + 1
		f.groups = append(f.groups, *group)
	}
	return nil
}

func (f *fakeStore) ListAll(ctx context.Context, exec repositories.SQLExecutor) ([]models.Phase2Group, error) {
	return append([]models.Phase2Group(nil), f.groups...), nil
}

func (f *fakeStore) ListTeamsByGroup(ctx context.Context, exec repositories.SQLExecutor, groupName string) ([]models.Team, error) {
	seats := make([]models.Phase2Group, 0)
	for _, group := range f.groups {
		if group.GroupName == groupName {
			seats = append(seats, group)
		}
	}
	sort.SliceStable(seats, func(i, j int) bool { return seats[i].Position < seats[j].Position })

	teams := make([]models.Team, 0, len(seats))
	for _, seat := range seats {
		teams = append(teams, f.teams[seat.TeamID])
	}
	return teams, nil
}

func (f *fakeStore) Count(ctx context.Context, exec repositories.SQLExecutor) (int, error) {
	return len(f.groups), nil
}

// --- repositories.GroupStandingRepository ---

func (f *fakeStore) Upsert(ctx context.Context, exec repositories.SQLExecutor, standing *models.GroupStanding) error {
	rows, ok := f.standings[standing.GroupName]
	if !ok {
		rows = make(map[int]models.GroupStanding)
		f.standings[standing.GroupName] = rows
	}
	if standing.UpdatedAt.IsZero() {
		standing.UpdatedAt = time.Now()
	}
	rows[standing.TeamID] = *standing
	return nil
}

func (f *fakeStore) ListByGroup(ctx context.Context, exec repositories.SQLExecutor, groupName string) ([]models.GroupStanding, error) {
	rows := make([]models.GroupStanding, 0)
	for _, row := range f.standings[groupName] {
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
	return rows, nil
}

// Adapters: the fake has a single method set, the services want distinct
// interfaces with overlapping method names.

type fakeTeamRepo struct{ *fakeStore }

func (r fakeTeamRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Team, error) {
	return r.GetTeamByID(ctx, exec, id)
}

type fakePlayerRepo struct{ *fakeStore }

func (r fakePlayerRepo) Create(ctx context.Context, exec repositories.SQLExecutor, player *models.Player) error {
	return r.CreatePlayer(ctx, exec, player)
}

func (r fakePlayerRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Player, error) {
	return r.GetPlayerByID(ctx, exec, id)
}

type fakeGroupRepo struct{ *fakeStore }

func (r fakeGroupRepo) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, groups []*models.Phase2Group) error {
	return r.CreateGroupBatch(ctx, exec, groups)
}

var errStorageDown = errors.New("storage down")
