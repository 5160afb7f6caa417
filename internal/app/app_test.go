package app

import (
	"context"
	"testing"

	"pdf-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{
			Provider:  config.ProviderOllama,
			Model:     "llama3",
			ServerURL: "http://localhost:11434",
		},
		Quiz: config.QuizConfig{MaxQuestions: 50, MaxDocumentChars: 1000, MarkupFallback: true},
	}
}

func TestBuild_WithoutCache(t *testing.T) {
	c, err := Build(context.Background(), testConfig())
	require.NoError(t, err)
	assert.NotNil(t, c.QuizService)
	assert.Nil(t, c.Cache)
	assert.NoError(t, c.Close())
}

func TestBuild_UnreachableRedisDisablesCache(t *testing.T) {
	cfg := testConfig()
	cfg.Redis.Address = "127.0.0.1:1"

	c, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, c.QuizService)
	assert.Nil(t, c.Cache)
}

func TestBuild_UnsupportedProvider(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.Provider = "unknown"

	_, err := Build(context.Background(), cfg)
	assert.Error(t, err)
}
