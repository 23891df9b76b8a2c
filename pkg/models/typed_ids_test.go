package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savanth/folio/pkg/models"
)

func TestProjectIDRoundTrip(t *testing.T) {
	id := models.NewProjectID()
	require.False(t, id.IsZero())

	parsed, err := models.ParseProjectID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = models.ParseProjectID("not-a-uuid")
	assert.Error(t, err)
}

func TestProjectIDJSON(t *testing.T) {
	id := models.NewProjectID()

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"`+id.String()+`"`, string(data))

	var decoded models.ProjectID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)
}

func TestUserIDRecordID(t *testing.T) {
	id := models.NewUserID()
	rid := id.RecordID()
	assert.Equal(t, "users", rid.Table)
	assert.Equal(t, id.String(), rid.ID)
}
