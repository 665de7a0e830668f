package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	p := &Profile{}
	p.FromEnv()

	assert.Equal(t, "dev", p.Mode)
	assert.Equal(t, "sqlite", p.Driver)
	assert.Equal(t, "whisper-1", p.TranscribeModel)
	assert.Equal(t, "text-embedding-3-large", p.EmbeddingModel)
	assert.Equal(t, 3072, p.EmbeddingDim)
	assert.Equal(t, "https://api.openai.com/v1", p.OpenAIBaseURL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("VOXNOTE_MODE", "prod")
	t.Setenv("VOXNOTE_DRIVER", "postgres")
	t.Setenv("VOXNOTE_DSN", "postgres://localhost/voxnote")
	t.Setenv("VOXNOTE_OPENAI_API_KEY", "sk-test")
	t.Setenv("VOXNOTE_EMBEDDING_DIM", "1536")

	p := &Profile{}
	p.FromEnv()

	assert.Equal(t, "prod", p.Mode)
	assert.Equal(t, "postgres", p.Driver)
	assert.Equal(t, "postgres://localhost/voxnote", p.DSN)
	assert.Equal(t, 1536, p.EmbeddingDim)
	assert.True(t, p.HasProviderKey())
}

func TestFromEnvIgnoresInvalidDimension(t *testing.T) {
	t.Setenv("VOXNOTE_EMBEDDING_DIM", "not-a-number")

	p := &Profile{}
	p.FromEnv()
	assert.Equal(t, 3072, p.EmbeddingDim)
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	p := &Profile{Mode: "dev", Driver: "oracle"}
	assert.Error(t, p.Validate())
}

func TestValidatePostgresRequiresDSN(t *testing.T) {
	p := &Profile{Mode: "dev", Driver: "postgres"}
	assert.Error(t, p.Validate())

	p.DSN = "postgres://localhost/voxnote"
	assert.NoError(t, p.Validate())
}

func TestValidateSQLiteDefaultsDSN(t *testing.T) {
	p := &Profile{Mode: "dev", Driver: "sqlite", Data: t.TempDir(), EmbeddingDim: 3072}
	require.NoError(t, p.Validate())
	assert.Contains(t, p.DSN, "voxnote_dev.db")
}
