package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"riddlevault/models"
	"riddlevault/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRiddleEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	token := authToken(t, user.ID)

	rec := env.doRequest(t, http.MethodPost, "/api/riddles", token, map[string]interface{}{
		"question":   "What has keys but no locks?",
		"answer":     "A piano",
		"hint":       "It makes music",
		"difficulty": "easy",
		"category":   "wordplay",
		"language":   "en",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	response := decodeEnvelope(t, rec)
	assert.True(t, response.Success)

	var riddle models.Riddle
	require.NoError(t, json.Unmarshal(response.Data, &riddle))
	assert.Equal(t, user.ID, riddle.UserID)
	assert.Equal(t, "A piano", riddle.Answer)
	assert.Equal(t, "easy", riddle.Difficulty)
}

func TestCreateRiddleEndpoint_ForeignCollection(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")

	aliceCollection, err := env.collectionService.CreateCollection(alice.ID, &services.CreateCollectionRequest{Name: "Logic"})
	require.NoError(t, err)

	rec := env.doRequest(t, http.MethodPost, "/api/riddles", authToken(t, bob.ID), map[string]interface{}{
		"question":      "What has keys but no locks?",
		"answer":        "A piano",
		"collection_id": aliceCollection.ID.String(),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeEnvelope(t, rec).Code)
}

func TestCreateRiddleEndpoint_InvalidDifficulty(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice@example.com")

	rec := env.doRequest(t, http.MethodPost, "/api/riddles", authToken(t, user.ID), map[string]interface{}{
		"question":   "What has keys but no locks?",
		"answer":     "A piano",
		"difficulty": "impossible",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION", decodeEnvelope(t, rec).Code)
}

func TestUpdateRiddleEndpoint_PartialAndNull(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	token := authToken(t, user.ID)

	collection, err := env.collectionService.CreateCollection(user.ID, &services.CreateCollectionRequest{Name: "Logic"})
	require.NoError(t, err)
	riddle, err := env.riddleService.CreateRiddle(user.ID, &services.CreateRiddleRequest{
		Question:     "What has keys but no locks?",
		Answer:       "A piano",
		CollectionID: &collection.ID,
	})
	require.NoError(t, err)

	// Updating only the hint leaves everything else alone.
	rec := env.doRequest(t, http.MethodPut, "/api/riddles/"+riddle.ID.String(), token, map[string]string{
		"hint": "It makes music",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Riddle
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &updated))
	assert.Equal(t, "It makes music", updated.Hint)
	assert.Equal(t, riddle.Question, updated.Question)
	require.NotNil(t, updated.CollectionID)
	assert.Equal(t, collection.ID, *updated.CollectionID)

	// An explicit null detaches the riddle from its collection.
	rec = env.doRequestRaw(t, http.MethodPut, "/api/riddles/"+riddle.ID.String(), token,
		`{"collection_id": null}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &updated))
	assert.Nil(t, updated.CollectionID)
	assert.Equal(t, "It makes music", updated.Hint)
}

func TestUpdateRiddleEndpoint_NotOwned(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")

	riddle, err := env.riddleService.CreateRiddle(alice.ID, &services.CreateRiddleRequest{
		Question: "What has keys but no locks?",
		Answer:   "A piano",
	})
	require.NoError(t, err)

	rec := env.doRequest(t, http.MethodPut, "/api/riddles/"+riddle.ID.String(), authToken(t, bob.ID),
		map[string]string{"hint": "Hijacked"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeEnvelope(t, rec).Code)
}

func TestDeleteRiddleEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	token := authToken(t, user.ID)

	riddle, err := env.riddleService.CreateRiddle(user.ID, &services.CreateRiddleRequest{
		Question: "What has keys but no locks?",
		Answer:   "A piano",
	})
	require.NoError(t, err)

	rec := env.doRequest(t, http.MethodDelete, "/api/riddles/"+riddle.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doRequest(t, http.MethodGet, "/api/riddles/"+riddle.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMyRiddlesEndpoint_Filters(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	token := authToken(t, user.ID)

	collection, err := env.collectionService.CreateCollection(user.ID, &services.CreateCollectionRequest{Name: "Logic"})
	require.NoError(t, err)

	_, err = env.riddleService.CreateRiddle(user.ID, &services.CreateRiddleRequest{
		Question:     "In collection",
		Answer:       "a",
		CollectionID: &collection.ID,
		IsFavorite:   true,
		Difficulty:   models.DifficultyHard,
	})
	require.NoError(t, err)
	_, err = env.riddleService.CreateRiddle(user.ID, &services.CreateRiddleRequest{
		Question: "Loose riddle",
		Answer:   "b",
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/riddles?collection_id=%s&favorites_only=true&difficulty=hard", collection.ID)
	rec := env.doRequest(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Riddles []models.Riddle `json:"riddles"`
		Count   int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	assert.Equal(t, 1, data.Count)
	require.Len(t, data.Riddles, 1)
	assert.Equal(t, "In collection", data.Riddles[0].Question)
}

func TestListMyRiddlesEndpoint_FilterValidation(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	token := authToken(t, user.ID)

	for _, path := range []string{
		"/api/riddles?collection_id=not-a-uuid",
		"/api/riddles?favorites_only=maybe",
		"/api/riddles?difficulty=impossible",
		"/api/riddles?page_size=9999",
	} {
		rec := env.doRequest(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, "VALIDATION", decodeEnvelope(t, rec).Code, path)
	}
}
