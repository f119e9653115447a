package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/courtside/badminton-league/brackets"
	"github.com/courtside/badminton-league/models"
	"github.com/courtside/badminton-league/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTournamentRepo struct {
	tournaments map[string]*models.Tournament
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{tournaments: make(map[string]*models.Tournament)}
}

func (f *fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	clone := *t
	f.tournaments[t.ID] = &clone
	return nil
}

func (f *fakeTournamentRepo) GetByID(_ context.Context, id string) (*models.Tournament, error) {
	t, ok := f.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	clone := *t
	return &clone, nil
}

func (f *fakeTournamentRepo) List(_ context.Context) ([]models.TournamentSummary, error) {
	summaries := make([]models.TournamentSummary, 0, len(f.tournaments))
	for _, t := range f.tournaments {
		summaries = append(summaries, models.TournamentSummary{ID: t.ID, Name: t.Name, Type: t.Type})
	}
	return summaries, nil
}

func (f *fakeTournamentRepo) Replace(_ context.Context, t *models.Tournament) error {
	existing, ok := f.tournaments[t.ID]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.CreatedBy = existing.CreatedBy
	clone := *t
	f.tournaments[t.ID] = &clone
	return nil
}

func (f *fakeTournamentRepo) ReplaceScores(_ context.Context, id string, scores models.ScoreLedger, updatedBy string) error {
	t, ok := f.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Scores = scores
	t.UpdatedBy = updatedBy
	return nil
}

func (f *fakeTournamentRepo) UpsertScoreField(_ context.Context, id, fixtureKey, rowID, field, value, updatedBy string) error {
	t, ok := f.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	if t.Scores == nil {
		t.Scores = models.ScoreLedger{}
	}
	if !t.Scores.Merge(fixtureKey, rowID, field, value) {
		return repositories.ErrScoreFieldInvalid
	}
	t.UpdatedBy = updatedBy
	return nil
}

func (f *fakeTournamentRepo) GetScores(_ context.Context, id string) (models.ScoreLedger, error) {
	t, ok := f.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return t.Scores, nil
}

func (f *fakeTournamentRepo) UpdateLogoKey(_ context.Context, id string, logoKey *string) error {
	t, ok := f.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.LogoKey = logoKey
	return nil
}

func (f *fakeTournamentRepo) ExistsByName(_ context.Context, name, excludeID string) (bool, error) {
	for _, t := range f.tournaments {
		if t.ID != excludeID && strings.EqualFold(t.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTournamentRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(f.tournaments, id)
	return nil
}

type broadcastCall struct {
	roomID    string
	eventType string
	payload   interface{}
}

type fakeBroadcaster struct {
	calls []broadcastCall
}

func (f *fakeBroadcaster) BroadcastToRoom(roomID, eventType string, payload interface{}) {
	f.calls = append(f.calls, broadcastCall{roomID: roomID, eventType: eventType, payload: payload})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTournamentService(repo repositories.TournamentRepository, hub *fakeBroadcaster) TournamentService {
	return NewTournamentService(repo, nil, hub, testLogger())
}

func writerSession() models.Session {
	return models.Session{Username: "meera", Role: models.RoleUser, Access: models.AccessWrite}
}

func TestTournamentCreateDefaults(t *testing.T) {
	svc := newTournamentService(newFakeTournamentRepo(), &fakeBroadcaster{})

	created, err := svc.Create(context.Background(), TournamentInput{}, writerSession())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Untitled Tournament", created.Name)
	assert.Equal(t, models.TypeTeam, created.Type)
	assert.Equal(t, "meera", created.CreatedBy)
	assert.NotNil(t, created.Scores)
}

func TestTournamentCreateNormalizesSetup(t *testing.T) {
	svc := newTournamentService(newFakeTournamentRepo(), &fakeBroadcaster{})

	input := TournamentInput{
		Name:       "  Summer League  ",
		Categories: []models.Category{{Key: "advanced", Count: 0}, {Key: "b group", Count: 2}},
		Teams: []models.Team{
			{Name: "Smashers"},
			{Name: "  "},
			{Name: "Strikers"},
		},
	}
	created, err := svc.Create(context.Background(), input, writerSession())
	require.NoError(t, err)

	assert.Equal(t, "Summer League", created.Name)
	require.Len(t, created.Categories, 2)
	assert.Equal(t, models.Category{Key: "ADV", Count: 0}, created.Categories[0])
	assert.Equal(t, models.Category{Key: "BGR", Count: 2}, created.Categories[1])

	// Пустое имя команды выбрасывается, без явных слотов берётся ростер
	// из категорий. Категория с нулевым count слотов не даёт.
	require.Len(t, created.Teams, 2)
	assert.Len(t, created.Teams[0].Players, 2)

	// Round-robin по умолчанию.
	require.Len(t, created.Fixtures, 1)
	assert.Equal(t, "Smashers vs Strikers", created.Fixtures[0].Key)
}

func TestTournamentCreateRejectsDuplicateName(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc := newTournamentService(repo, &fakeBroadcaster{})

	_, err := svc.Create(context.Background(), TournamentInput{Name: "Summer League"}, writerSession())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), TournamentInput{Name: "SUMMER league"}, writerSession())
	assert.ErrorIs(t, err, ErrTournamentNameConflict)
}

func TestTournamentCreateRejectsUnknownType(t *testing.T) {
	svc := newTournamentService(newFakeTournamentRepo(), &fakeBroadcaster{})

	_, err := svc.Create(context.Background(), TournamentInput{Type: "mixed"}, writerSession())
	assert.ErrorIs(t, err, ErrTournamentTypeInvalid)
}

func TestTournamentUpdateBroadcasts(t *testing.T) {
	repo := newFakeTournamentRepo()
	hub := &fakeBroadcaster{}
	svc := newTournamentService(repo, hub)

	created, err := svc.Create(context.Background(), TournamentInput{Name: "Summer League"}, writerSession())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, TournamentInput{Name: "Winter League"}, writerSession())
	require.NoError(t, err)
	assert.Equal(t, "Winter League", updated.Name)

	require.Len(t, hub.calls, 1)
	assert.Equal(t, created.ID, hub.calls[0].roomID)
	assert.Equal(t, brackets.EventTournamentUpdated, hub.calls[0].eventType)
}

func TestTournamentCategoryCountZeroPreserved(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc := newTournamentService(repo, &fakeBroadcaster{})

	created, err := svc.Create(context.Background(), TournamentInput{
		Name:       "Summer League",
		Categories: []models.Category{{Key: "A", Count: 0}, {Key: "B", Count: -2}},
	}, writerSession())
	require.NoError(t, err)

	// Нулевой count хранится как есть, отрицательный поджимается к нулю.
	require.Len(t, created.Categories, 2)
	assert.Equal(t, models.Category{Key: "A", Count: 0}, created.Categories[0])
	assert.Equal(t, models.Category{Key: "B", Count: 0}, created.Categories[1])

	fetched, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.Categories[0].Count)
}

func TestTournamentUpdateScoresOnlyKeepsSetup(t *testing.T) {
	repo := newFakeTournamentRepo()
	hub := &fakeBroadcaster{}
	svc := newTournamentService(repo, hub)

	created, err := svc.Create(context.Background(), TournamentInput{
		Name:  "Summer League",
		Teams: []models.Team{{Name: "Smashers", Players: []models.PlayerSlot{}}, {Name: "Strikers", Players: []models.PlayerSlot{}}},
	}, writerSession())
	require.NoError(t, err)

	ledger := models.ScoreLedger{
		"Smashers vs Strikers": {
			"1": models.ScoreEntry{T1: "21", T2: "15", Winner: "t1"},
		},
	}
	updated, err := svc.Update(context.Background(), created.ID, TournamentInput{Scores: ledger}, writerSession())
	require.NoError(t, err)

	// Тело только со счётом не трогает настройку турнира.
	assert.Equal(t, "Summer League", updated.Name)
	require.Len(t, updated.Teams, 2)
	assert.Equal(t, "Smashers", updated.Teams[0].Name)
	require.Len(t, updated.Fixtures, 1)
	assert.Equal(t, models.ScoreValue("21"), updated.Scores.Entry("Smashers vs Strikers", "1").T1)

	require.Len(t, hub.calls, 1)
	assert.Equal(t, brackets.EventTournamentUpdated, hub.calls[0].eventType)
}

func TestTournamentUpdateScore(t *testing.T) {
	repo := newFakeTournamentRepo()
	hub := &fakeBroadcaster{}
	svc := newTournamentService(repo, hub)

	created, err := svc.Create(context.Background(), TournamentInput{
		Name:  "Summer League",
		Teams: []models.Team{{Name: "Smashers", Players: []models.PlayerSlot{}}, {Name: "Strikers", Players: []models.PlayerSlot{}}},
	}, writerSession())
	require.NoError(t, err)

	scores, err := svc.UpdateScore(context.Background(), created.ID, ScoreUpdateInput{
		FixtureKey: "Smashers vs Strikers",
		RowID:      "1",
		Field:      models.FieldT1,
		Value:      "21",
	}, writerSession())
	require.NoError(t, err)

	entry := scores.Entry("Smashers vs Strikers", "1")
	assert.Equal(t, models.ScoreValue("21"), entry.T1)

	require.Len(t, hub.calls, 1)
	assert.Equal(t, brackets.EventScoreUpdated, hub.calls[0].eventType)
	assert.Equal(t, created.ID, hub.calls[0].roomID)
}

func TestTournamentUpdateScoreValidation(t *testing.T) {
	svc := newTournamentService(newFakeTournamentRepo(), &fakeBroadcaster{})

	_, err := svc.UpdateScore(context.Background(), "missing", ScoreUpdateInput{RowID: "1", Field: models.FieldT1}, writerSession())
	assert.ErrorIs(t, err, ErrScoreTargetRequired)

	_, err = svc.UpdateScore(context.Background(), "missing", ScoreUpdateInput{
		FixtureKey: "Smashers vs Strikers", RowID: "1", Field: models.FieldT1, Value: "21",
	}, writerSession())
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestTournamentUpdateScoreRejectsUnknownField(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc := newTournamentService(repo, &fakeBroadcaster{})

	created, err := svc.Create(context.Background(), TournamentInput{Name: "Summer League"}, writerSession())
	require.NoError(t, err)

	_, err = svc.UpdateScore(context.Background(), created.ID, ScoreUpdateInput{
		FixtureKey: "Smashers vs Strikers", RowID: "1", Field: "referee", Value: "x",
	}, writerSession())
	assert.ErrorIs(t, err, ErrScoreFieldInvalid)
}

func TestTournamentStandings(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc := newTournamentService(repo, &fakeBroadcaster{})

	created, err := svc.Create(context.Background(), TournamentInput{
		Name:  "Summer League",
		Teams: []models.Team{{Name: "Smashers", Players: []models.PlayerSlot{}}, {Name: "Strikers", Players: []models.PlayerSlot{}}},
	}, writerSession())
	require.NoError(t, err)

	_, err = svc.UpdateScore(context.Background(), created.ID, ScoreUpdateInput{
		FixtureKey: "Smashers vs Strikers", RowID: "1", Field: models.FieldWinner, Value: "t2",
	}, writerSession())
	require.NoError(t, err)

	standings, err := svc.Standings(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, "Strikers", standings[0].Team)
	assert.Equal(t, 1, standings[0].Points)
	assert.Equal(t, 0, standings[1].Points)
}

func TestTournamentReports(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc := newTournamentService(repo, &fakeBroadcaster{})

	created, err := svc.Create(context.Background(), TournamentInput{
		Name:       "Summer League",
		Categories: []models.Category{{Key: "A", Count: 1}},
		Teams:      []models.Team{{Name: "Smashers"}, {Name: "Strikers"}},
	}, writerSession())
	require.NoError(t, err)

	for field, value := range map[string]string{
		models.FieldT1:     "21",
		models.FieldT2:     "15",
		models.FieldWinner: "t1",
	} {
		_, err = svc.UpdateScore(context.Background(), created.ID, ScoreUpdateInput{
			FixtureKey: "Smashers vs Strikers", RowID: "1", Field: field, Value: value,
		}, writerSession())
		require.NoError(t, err)
	}

	reports, err := svc.Reports(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, reports.TeamTotals, 2)
	assert.Equal(t, "Smashers", reports.TeamTotals[0].Team)
	assert.Equal(t, 1, reports.TeamTotals[0].Wins)
	assert.Equal(t, 21, reports.TeamTotals[0].PointsFor)
}

func TestTournamentUploadLogoWithoutStorage(t *testing.T) {
	svc := newTournamentService(newFakeTournamentRepo(), &fakeBroadcaster{})

	_, err := svc.UploadLogo(context.Background(), "any", "image/png", strings.NewReader("png"))
	assert.ErrorIs(t, err, ErrUploaderUnavailable)
}

func TestTournamentDeleteMissing(t *testing.T) {
	svc := newTournamentService(newFakeTournamentRepo(), &fakeBroadcaster{})
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), ErrTournamentNotFound)
}
