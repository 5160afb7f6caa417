package quizgen

import (
	"context"
	"errors"
	"testing"

	"pdf-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	resp       *genai.GenerateContentResponse
	err        error
	gotModel   string
	gotPrompt  string
	gotConfig  *genai.GenerateContentConfig
	callsCount int
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.callsCount++
	f.gotModel = model
	f.gotConfig = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.gotPrompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: genai.RoleModel, Parts: parts}}},
	}
}

func TestGeminiInvoker_Invoke(t *testing.T) {
	ctx := context.Background()

	t.Run("returns first candidate text", func(t *testing.T) {
		gen := &fakeGenerator{resp: textResponse(&genai.Part{Text: "  [{\"question\":\"Q\"}]  "})}
		inv := newGeminiInvoker(gen, "gemini-2.0-flash", 0.2)

		out, err := inv.Invoke(ctx, "the prompt")
		require.NoError(t, err)
		assert.Equal(t, `[{"question":"Q"}]`, out)
		assert.Equal(t, "gemini-2.0-flash", gen.gotModel)
		assert.Equal(t, "the prompt", gen.gotPrompt)
		require.NotNil(t, gen.gotConfig.Temperature)
		assert.InDelta(t, 0.2, *gen.gotConfig.Temperature, 1e-6)
		assert.Equal(t, 1, gen.callsCount)
	})

	t.Run("skips thought parts", func(t *testing.T) {
		gen := &fakeGenerator{resp: textResponse(
			&genai.Part{Text: "thinking about it", Thought: true},
			&genai.Part{Text: "[]"},
		)}
		out, err := newGeminiInvoker(gen, "m", 0).Invoke(ctx, "p")
		require.NoError(t, err)
		assert.Equal(t, "[]", out)
		assert.Nil(t, gen.gotConfig.Temperature)
	})

	t.Run("no candidates", func(t *testing.T) {
		gen := &fakeGenerator{resp: &genai.GenerateContentResponse{}}
		_, err := newGeminiInvoker(gen, "m", 0).Invoke(ctx, "p")
		require.Error(t, err)
		assert.Equal(t, domain.ErrEmptyModelResponse, domain.CodeOf(err))
	})

	t.Run("candidate without parts", func(t *testing.T) {
		gen := &fakeGenerator{resp: textResponse()}
		_, err := newGeminiInvoker(gen, "m", 0).Invoke(ctx, "p")
		assert.Equal(t, domain.ErrEmptyModelResponse, domain.CodeOf(err))
	})

	t.Run("candidate without content", func(t *testing.T) {
		gen := &fakeGenerator{resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}}
		_, err := newGeminiInvoker(gen, "m", 0).Invoke(ctx, "p")
		assert.Equal(t, domain.ErrEmptyModelResponse, domain.CodeOf(err))
	})

	t.Run("api error", func(t *testing.T) {
		apiErr := genai.APIError{Code: 503, Status: "UNAVAILABLE", Message: "overloaded"}
		gen := &fakeGenerator{err: apiErr}
		_, err := newGeminiInvoker(gen, "m", 0).Invoke(ctx, "p")
		require.Error(t, err)
		assert.Equal(t, domain.ErrModelInvocation, domain.CodeOf(err))

		var got genai.APIError
		require.True(t, errors.As(err, &got))
		assert.Equal(t, 503, got.Code)
	})

	t.Run("transport error", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("dial tcp: connection refused")}
		_, err := newGeminiInvoker(gen, "m", 0).Invoke(ctx, "p")
		assert.Equal(t, domain.ErrModelInvocation, domain.CodeOf(err))
	})
}

func TestFirstCandidateText(t *testing.T) {
	text, ok := firstCandidateText(nil)
	assert.False(t, ok)
	assert.Empty(t, text)

	_, ok = firstCandidateText(textResponse(&genai.Part{Text: "   "}))
	assert.False(t, ok)

	text, ok = firstCandidateText(textResponse(&genai.Part{Text: "a"}, &genai.Part{Text: "b"}))
	assert.True(t, ok)
	assert.Equal(t, "ab", text)
}

func TestNewGeminiInvoker_Validation(t *testing.T) {
	_, err := NewGeminiInvoker(context.Background(), "", "gemini-2.0-flash", 0)
	assert.Error(t, err)

	_, err = NewGeminiInvoker(context.Background(), "key", "", 0)
	assert.Error(t, err)
}

func TestGeminiInvoker_ModelID(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", newGeminiInvoker(&fakeGenerator{}, "gemini-2.0-flash", 0).ModelID())
}
