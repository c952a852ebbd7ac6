package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDocument_Normalize_HealsMissingCollections(t *testing.T) {
	// a document written before the teams collection existed
	raw := `{"organizations":[{"id":"o1","name":"Acme"}],"projects":[]}`

	var doc DataDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	doc.Normalize()

	assert.Len(t, doc.Organizations, 1)
	assert.NotNil(t, doc.Teams)
	assert.Empty(t, doc.Teams)
	assert.NotNil(t, doc.TaskPredecessors)
	assert.NotNil(t, doc.TeamMembers)
}

func TestAuthDocument_Normalize(t *testing.T) {
	var doc AuthDocument
	doc.Normalize()

	assert.NotNil(t, doc.Users)
	assert.NotNil(t, doc.Sessions)
}

func TestUser_Public_BlanksPasswordHash(t *testing.T) {
	u := User{ID: "u1", Email: "a@b.c", PasswordHash: "hash"}
	assert.Empty(t, u.Public().PasswordHash)
	assert.Equal(t, "hash", u.PasswordHash)
}
