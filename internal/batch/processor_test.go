package batch_test

import (
	"errors"
	"testing"

	"fomo-app/internal/apperr"
	"fomo-app/internal/batch"
	"fomo-app/internal/friendship"
	"fomo-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock implementations

type recordedResponse struct {
	UserID    string
	EventID   string
	Value     models.ResponseValue
	InvitedBy string
}

type MockResponseRecorder struct {
	recorded   []recordedResponse
	failEvents map[string]error
}

func NewMockResponseRecorder() *MockResponseRecorder {
	return &MockResponseRecorder{failEvents: make(map[string]error)}
}

func (m *MockResponseRecorder) Record(userID, eventID string, value models.ResponseValue, invitedBy string) (*models.ResponseEntry, error) {
	if err := m.failEvents[eventID]; err != nil {
		return nil, err
	}
	m.recorded = append(m.recorded, recordedResponse{UserID: userID, EventID: eventID, Value: value, InvitedBy: invitedBy})
	return &models.ResponseEntry{
		ID:            "rsp_" + eventID,
		UserID:        userID,
		EventID:       eventID,
		FinalResponse: value,
	}, nil
}

type MockFriendshipWriter struct {
	friendships map[string]*models.Friendship
	upserts     []models.FriendshipStatus
	deleted     []string
}

func NewMockFriendshipWriter() *MockFriendshipWriter {
	return &MockFriendshipWriter{friendships: make(map[string]*models.Friendship)}
}

func (m *MockFriendshipWriter) Get(id string) (*models.Friendship, error) {
	f, exists := m.friendships[id]
	if !exists {
		return nil, apperr.NotFound("friendship", id)
	}
	return f, nil
}

func (m *MockFriendshipWriter) Upsert(fromUserID, toUserID string, status models.FriendshipStatus) (*friendship.UpsertResult, error) {
	m.upserts = append(m.upserts, status)
	id := "frd_" + fromUserID + "_" + toUserID
	m.friendships[id] = &models.Friendship{ID: id, FromUserID: fromUserID, ToUserID: toUserID, Status: status}
	return &friendship.UpsertResult{ID: id, Action: "updated"}, nil
}

func (m *MockFriendshipWriter) Delete(id string) error {
	if _, exists := m.friendships[id]; !exists {
		return apperr.NotFound("friendship", id)
	}
	m.deleted = append(m.deleted, id)
	delete(m.friendships, id)
	return nil
}

func setupProcessor() (*batch.Processor, *MockResponseRecorder, *MockFriendshipWriter) {
	responses := NewMockResponseRecorder()
	friendships := NewMockFriendshipWriter()
	return batch.NewProcessor(responses, friendships, nil), responses, friendships
}

func TestProcessFailureIsolation(t *testing.T) {
	processor, responses, _ := setupProcessor()
	responses.failEvents["event2"] = errors.New("db error")

	actions := []models.BatchAction{
		{Type: models.ActionEventResponse, EventID: "event1", Response: "going"},
		{Type: models.ActionEventResponse, EventID: "event2", Response: "going"},
		{Type: models.ActionEventResponse, EventID: "event3", Response: "maybe"},
	}

	result, err := processor.Process(actions, "user1")
	require.NoError(t, err)

	// The failed middle action is skipped, the rest still run.
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Processed)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "event1", result.Results[0].EventID)
	assert.Equal(t, "event3", result.Results[1].EventID)
}

func TestProcessSkipsUnknownTypes(t *testing.T) {
	processor, _, _ := setupProcessor()

	actions := []models.BatchAction{
		{Type: models.ActionEventResponse, EventID: "event1", Response: "interested"},
		{Type: "poke_user", UserID: "user2"},
	}

	result, err := processor.Process(actions, "user1")
	require.NoError(t, err)

	// Unknown types neither count nor fail the batch.
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Processed)
	assert.Len(t, result.Results, 1)
}

func TestProcessValidation(t *testing.T) {
	processor, _, _ := setupProcessor()

	_, err := processor.Process(nil, "user1")
	assert.Error(t, err)

	_, err = processor.Process([]models.BatchAction{{Type: models.ActionEventResponse, EventID: "event1"}}, "")
	assert.Error(t, err)
}

func TestProcessNormalizesLegacyResponses(t *testing.T) {
	processor, responses, _ := setupProcessor()

	actions := []models.BatchAction{
		{Type: models.ActionEventResponse, EventID: "event1", Response: "participe"},
	}

	result, err := processor.Process(actions, "user1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)

	require.Len(t, responses.recorded, 1)
	assert.Equal(t, models.ResponseGoing, responses.recorded[0].Value)
}

func TestProcessActionUserOverridesBatchUser(t *testing.T) {
	processor, responses, _ := setupProcessor()

	actions := []models.BatchAction{
		{Type: models.ActionEventResponse, EventID: "event1", Response: "going"},
		{Type: models.ActionEventResponse, EventID: "event2", UserID: "user2", Response: "going", InvitedBy: "user1"},
	}

	_, err := processor.Process(actions, "user1")
	require.NoError(t, err)

	require.Len(t, responses.recorded, 2)
	assert.Equal(t, "user1", responses.recorded[0].UserID)
	assert.Equal(t, "user2", responses.recorded[1].UserID)
	assert.Equal(t, "user1", responses.recorded[1].InvitedBy)
}

func TestProcessFriendshipActions(t *testing.T) {
	processor, _, friendships := setupProcessor()
	friendships.friendships["frd_alice_bob"] = &models.Friendship{
		ID: "frd_alice_bob", FromUserID: "alice", ToUserID: "bob", Status: models.FriendshipPending,
	}
	friendships.friendships["frd_carol_alice"] = &models.Friendship{
		ID: "frd_carol_alice", FromUserID: "carol", ToUserID: "alice", Status: models.FriendshipActive,
	}

	actions := []models.BatchAction{
		{Type: models.ActionFriendshipAccept, FriendshipID: "frd_alice_bob"},
		{Type: models.ActionFriendshipRemove, FriendshipID: "frd_carol_alice"},
		{Type: models.ActionFriendshipBlock, FriendshipID: "frd_missing"},
	}

	result, err := processor.Process(actions, "alice")
	require.NoError(t, err)

	// The missing friendship fails its own action only.
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, []models.FriendshipStatus{models.FriendshipActive}, friendships.upserts)
	assert.Equal(t, []string{"frd_carol_alice"}, friendships.deleted)

	// Accept re-upserts with the stored direction.
	assert.Equal(t, "alice", friendships.friendships["frd_alice_bob"].FromUserID)
}

func TestProcessResponseRequiresEvent(t *testing.T) {
	processor, _, _ := setupProcessor()

	actions := []models.BatchAction{
		{Type: models.ActionEventResponse, Response: "going"},
		{Type: models.ActionEventResponse, EventID: "event1", Response: "going"},
	}

	result, err := processor.Process(actions, "user1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
}
