package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     ChatRequest
		wantErr string
	}{
		{"valid", ChatRequest{Message: "Hi", CharacterID: "neymar"}, ""},
		{"empty message", ChatRequest{Message: "  ", CharacterID: "neymar"}, "message cannot be empty"},
		{"missing character", ChatRequest{Message: "Hi"}, "character_id cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestChatRequest_WireFormat(t *testing.T) {
	var req ChatRequest
	require.NoError(t, json.Unmarshal([]byte(`{"message":"Hello","character_id":"kaka"}`), &req))
	assert.Equal(t, "Hello", req.Message)
	assert.Equal(t, "kaka", req.CharacterID)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal([]byte(`{"response":"Olá!"}`), &resp))
	assert.Equal(t, "Olá!", resp.Response)
}
