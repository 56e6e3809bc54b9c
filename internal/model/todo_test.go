package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoTransport(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	todo := Todo{
		ID:        1,
		Title:     "Buy milk",
		Completed: true,
		CreatedAt: time.Date(2024, 3, 1, 13, 4, 5, 123456000, loc),
	}

	out, err := json.Marshal(todo.Transport())
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":1,"title":"Buy milk","completed":true,"created_at":"2024-03-01T12:04:05.123456Z"}`,
		string(out))
}

func TestTransportListNeverNull(t *testing.T) {
	out, err := json.Marshal(TransportList(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestUpdateTodoInputPresence(t *testing.T) {
	var in UpdateTodoInput
	require.NoError(t, json.Unmarshal([]byte(`{"completed":false}`), &in))
	assert.Nil(t, in.Title)
	require.NotNil(t, in.Completed)
	assert.False(t, *in.Completed)

	in = UpdateTodoInput{}
	require.NoError(t, json.Unmarshal([]byte(`{"title":""}`), &in))
	require.NotNil(t, in.Title)
	assert.Equal(t, "", *in.Title)
	assert.Nil(t, in.Completed)
}
