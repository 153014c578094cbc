package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserRef(t *testing.T) {
	tests := []struct {
		raw          string
		wantID       string
		wantUsername string
	}{
		{"3f2a1d2e-9c4b-4f6a-8e1d-0a9b8c7d6e5f", "3f2a1d2e-9c4b-4f6a-8e1d-0a9b8c7d6e5f", ""},
		{"jdoe", "", "jdoe"},
		{"  jdoe  ", "", "jdoe"},
		{"3f2a1d2e-9c4b-4f6a-8e1d-0a9b8c7d6e5", "", "3f2a1d2e-9c4b-4f6a-8e1d-0a9b8c7d6e5"},
		{"3f2a1d2e_9c4b_4f6a_8e1d_0a9b8c7d6e5f", "", "3f2a1d2e_9c4b_4f6a_8e1d_0a9b8c7d6e5f"},
		{"", "", ""},
	}
	for _, tt := range tests {
		ref := ParseUserRef(tt.raw)
		assert.Equal(t, tt.wantID, ref.ID, "raw=%q", tt.raw)
		assert.Equal(t, tt.wantUsername, ref.Username, "raw=%q", tt.raw)
	}
}

func TestLooksLikeUUID(t *testing.T) {
	assert.True(t, looksLikeUUID("3F2A1D2E-9C4B-4F6A-8E1D-0A9B8C7D6E5F"))
	assert.False(t, looksLikeUUID("not-a-uuid"))
	assert.False(t, looksLikeUUID("3f2a1d2e9c4b4f6a8e1d0a9b8c7d6e5f"))
	assert.False(t, looksLikeUUID("zf2a1d2e-9c4b-4f6a-8e1d-0a9b8c7d6e5f"))
}
