package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The field tags are the wire contract with the catalog service; these
// payloads mirror what the server actually sends.

func TestEvent_DecodesServerPayload(t *testing.T) {
	payload := `{
		"id": 17,
		"name": "Jazz Night",
		"image": "https://cdn.example.com/jazz.jpg",
		"startDate": "2026-09-01 20:00",
		"endDate": "2026-09-01 23:00",
		"location": {
			"id": 3,
			"name": "Casa da Musica",
			"latitude": 41.1585,
			"longitude": -8.6307,
			"address": {
				"id": 9,
				"street": "Av. da Boavista 604",
				"city": {"id": 1, "name": "Porto", "latitude": 41.1496, "longitude": -8.611}
			}
		},
		"category": {"id": 2, "eventCategory": "music", "image": "music.png"}
	}`

	var event Event
	require.NoError(t, json.Unmarshal([]byte(payload), &event))

	assert.Equal(t, int64(17), event.ID)
	assert.Equal(t, "Jazz Night", event.Name)
	require.NotNil(t, event.Location)
	assert.Equal(t, "Casa da Musica", event.Location.Name)
	require.NotNil(t, event.Location.Address)
	require.NotNil(t, event.Location.Address.City)
	assert.Equal(t, "Porto", event.Location.Address.City.Name)
	require.NotNil(t, event.Category)
	assert.Equal(t, "music", event.Category.EventCategory)
}

func TestMapEvent_DecodesSlimPayload(t *testing.T) {
	payload := `{
		"id": 17,
		"name": "Jazz Night",
		"location": {"id": 3, "name": "Casa da Musica", "latitude": 41.1585, "longitude": -8.6307}
	}`

	var event MapEvent
	require.NoError(t, json.Unmarshal([]byte(payload), &event))

	assert.Equal(t, int64(17), event.ID)
	require.NotNil(t, event.Location)
	assert.InDelta(t, 41.1585, event.Location.Latitude, 0.0001)
}

func TestUserProfile_DecodesNestedPreferences(t *testing.T) {
	payload := `{
		"username": "alice",
		"email": "alice@example.com",
		"userInformationDto": {"favouriteCategories": ["music", "food"]}
	}`

	var profile UserProfile
	require.NoError(t, json.Unmarshal([]byte(payload), &profile))

	assert.Equal(t, "alice", profile.Username)
	require.NotNil(t, profile.UserInformation)
	assert.Equal(t, []string{"music", "food"}, profile.UserInformation.FavouriteCategories)
}
