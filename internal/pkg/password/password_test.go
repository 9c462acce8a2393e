package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Abcd1234")
	assert.NoError(t, err)
	assert.NotEqual(t, "Abcd1234", hash)

	assert.True(t, Verify("Abcd1234", hash))
	assert.False(t, Verify("abcd1234", hash))
	assert.False(t, Verify("", hash))
}

func TestHashToken(t *testing.T) {
	a := HashToken("some-refresh-token")
	b := HashToken("some-refresh-token")
	c := HashToken("other-token")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64) // hex-encoded SHA256
}

func TestValidatePolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"upper lower digit len8", "Abcd1234", true},
		{"missing uppercase", "abcd1234", false},
		{"missing lowercase", "ABCD1234", false},
		{"missing digit", "Abcdefgh", false},
		{"too short", "Ab1", false},
		{"empty", "", false},
		{"longer valid", "SuperSecreta99", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidatePolicy(tt.password))
		})
	}
}
