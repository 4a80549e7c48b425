package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nfl-survivor-go/middleware"
	"nfl-survivor-go/models"
	"nfl-survivor-go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore backs the survivor engine with fixed in-memory data. It
// implements the engine's repository interfaces and TransactionRunner.
type stubStore struct {
	matches map[int]*models.Match
	picks   map[int]*models.Pick // by user, single week
	usages  []*models.TeamUsage
}

func newStubStore() *stubStore {
	return &stubStore{
		matches: make(map[int]*models.Match),
		picks:   make(map[int]*models.Pick),
	}
}

func (s *stubStore) addMatch(id, week, homeTeam, awayTeam int, completed bool) {
	s.matches[id] = &models.Match{
		ID:         id,
		Week:       week,
		HomeTeamID: homeTeam,
		AwayTeamID: awayTeam,
		StartTime:  time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC),
		Completed:  completed,
	}
}

func (s *stubStore) GetByID(_ context.Context, id int) (*models.Match, error) {
	return s.matches[id], nil
}

func (s *stubStore) GetByWeek(_ context.Context, week int) ([]*models.Match, error) {
	var matches []*models.Match
	for _, match := range s.matches {
		if match.Week == week {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (s *stubStore) GetIncompleteWeeks(_ context.Context) ([]int, error) {
	seen := make(map[int]bool)
	var weeks []int
	for _, match := range s.matches {
		if !match.Completed && !seen[match.Week] {
			seen[match.Week] = true
			weeks = append(weeks, match.Week)
		}
	}
	return weeks, nil
}

func (s *stubStore) GetByUserAndWeek(_ context.Context, userID, week int) (*models.Pick, error) {
	return s.picks[userID], nil
}

func (s *stubStore) PicksByWeek(_ context.Context, week int) ([]*models.Pick, error) {
	return nil, nil
}

func (s *stubStore) Upsert(_ context.Context, pick *models.Pick) error {
	s.picks[pick.UserID] = pick
	return nil
}

func (s *stubStore) DeleteByUserAndWeek(_ context.Context, userID, week int) error {
	delete(s.picks, userID)
	return nil
}

func (s *stubStore) Create(_ context.Context, usage *models.TeamUsage) error {
	s.usages = append(s.usages, usage)
	return nil
}

func (s *stubStore) GetByUser(_ context.Context, userID int) ([]*models.TeamUsage, error) {
	var entries []*models.TeamUsage
	for _, usage := range s.usages {
		if usage.UserID == userID {
			entries = append(entries, usage)
		}
	}
	return entries, nil
}

func (s *stubStore) GetByUserAndTeam(_ context.Context, userID, teamID int) ([]*models.TeamUsage, error) {
	var entries []*models.TeamUsage
	for _, usage := range s.usages {
		if usage.UserID == userID && usage.TeamID == teamID {
			entries = append(entries, usage)
		}
	}
	return entries, nil
}

func (s *stubStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newPicksFixture() (*stubStore, *PicksHandler) {
	store := newStubStore()
	survivor := services.NewSurvivorService(store, pickRepoAdapter{store}, store, store)
	return store, NewPicksHandler(survivor)
}

// pickRepoAdapter renames PicksByWeek to the PickRepository method set
type pickRepoAdapter struct {
	*stubStore
}

func (a pickRepoAdapter) GetByWeek(ctx context.Context, week int) ([]*models.Pick, error) {
	return a.PicksByWeek(ctx, week)
}

func authedRequest(method, target string, body string, user *models.User) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if user != nil {
		ctx := context.WithValue(req.Context(), middleware.UserKey, user)
		req = req.WithContext(ctx)
	}
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

var testUser = &models.User{ID: 1, Username: "Manuel", DisplayName: "Manuel"}

func TestSubmitPickHandlerSuccess(t *testing.T) {
	store, handler := newPicksFixture()
	store.addMatch(1, 5, 10, 11, false)

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/picks", `{"week":5,"match_id":1,"team_id":10}`, testUser)
	handler.SubmitPick(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	pick := body["pick"].(map[string]interface{})
	assert.Equal(t, float64(10), pick["team_id"])
	assert.Equal(t, float64(5), pick["week"])
}

func TestSubmitPickHandlerDefaultsToCurrentWeek(t *testing.T) {
	store, handler := newPicksFixture()
	store.addMatch(1, 5, 10, 11, false)

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/picks", `{"match_id":1,"team_id":10}`, testUser)
	handler.SubmitPick(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	pick := decodeBody(t, rec)["pick"].(map[string]interface{})
	assert.Equal(t, float64(5), pick["week"])
}

func TestSubmitPickHandlerWeekClosed(t *testing.T) {
	store, handler := newPicksFixture()
	store.addMatch(1, 5, 10, 11, true)

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/picks", `{"week":5,"match_id":1,"team_id":10}`, testUser)
	handler.SubmitPick(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "week_closed", decodeBody(t, rec)["code"])
}

func TestSubmitPickHandlerMatchNotFound(t *testing.T) {
	store, handler := newPicksFixture()
	store.addMatch(1, 5, 10, 11, false)

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/picks", `{"week":5,"match_id":99,"team_id":10}`, testUser)
	handler.SubmitPick(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "match_not_found", decodeBody(t, rec)["code"])
}

func TestSubmitPickHandlerInvalidTeam(t *testing.T) {
	store, handler := newPicksFixture()
	store.addMatch(1, 5, 10, 11, false)

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/picks", `{"week":5,"match_id":1,"team_id":12}`, testUser)
	handler.SubmitPick(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_team_for_match", decodeBody(t, rec)["code"])
}

func TestSubmitPickHandlerEliminatedTeam(t *testing.T) {
	store, handler := newPicksFixture()
	store.addMatch(1, 5, 10, 11, false)
	store.usages = append(store.usages, &models.TeamUsage{UserID: 1, TeamID: 10, UsageType: models.UsageLoser, Week: 1})

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/picks", `{"week":5,"match_id":1,"team_id":10}`, testUser)
	handler.SubmitPick(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "already_eliminated", decodeBody(t, rec)["code"])
}

func TestSubmitPickHandlerBadBody(t *testing.T) {
	_, handler := newPicksFixture()

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/picks", `{not json`, testUser)
	handler.SubmitPick(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	req = authedRequest(http.MethodPost, "/api/picks", `{"week":5}`, testUser)
	handler.SubmitPick(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitPickHandlerUnauthenticated(t *testing.T) {
	_, handler := newPicksFixture()

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/picks", `{"week":5,"match_id":1,"team_id":10}`, nil)
	handler.SubmitPick(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetEligibleTeamsHandler(t *testing.T) {
	store, handler := newPicksFixture()
	store.addMatch(1, 5, 10, 11, false)
	store.usages = append(store.usages, &models.TeamUsage{UserID: 1, TeamID: 10, UsageType: models.UsageLoser, Week: 1})

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodGet, "/api/picks/eligible?week=5", "", testUser)
	handler.GetEligibleTeams(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(5), body["week"])

	teams := body["eligible_teams"].([]interface{})
	require.Len(t, teams, 1)
	assert.Equal(t, float64(11), teams[0])
}

func TestGetEligibleTeamsHandlerBadWeek(t *testing.T) {
	_, handler := newPicksFixture()

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodGet, "/api/picks/eligible?week=zero", "", testUser)
	handler.GetEligibleTeams(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
