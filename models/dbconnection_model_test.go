package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskedPassword_OneBulletPerCharacter(t *testing.T) {
	c := DBConnection{Password: "s3cr3t"}
	assert.Equal(t, "••••••", c.MaskedPassword())

	c.Password = ""
	assert.Equal(t, "", c.MaskedPassword())

	c.Password = "pässwörd"
	assert.Equal(t, 8, len([]rune(c.MaskedPassword())))
}

func TestView_NeverSerializesCleartextPassword(t *testing.T) {
	c := DBConnection{ID: 3, Title: "reporting", Password: "hunter2", DBType: DBTypeMySQL}

	raw, err := json.Marshal(c.View())
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "hunter2")
	assert.Contains(t, string(raw), `"password":"•••••••"`)
	assert.Contains(t, string(raw), `"title":"reporting"`)
}

func TestIsPublished(t *testing.T) {
	assert.True(t, (&DBConnection{PostStatus: PostStatusPublish}).IsPublished())
	assert.False(t, (&DBConnection{PostStatus: PostStatusDraft}).IsPublished())
	assert.False(t, (&DBConnection{}).IsPublished())
}
