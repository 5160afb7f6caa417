package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	text := "La photosynthèse convertit la lumière en énergie chimique.\nElle a lieu dans les chloroplastes."

	p := Build(text, 7)

	assert.Contains(t, p, "EXACTEMENT 7 questions")
	assert.Contains(t, p, "exactement 7 objets")
	assert.True(t, strings.HasSuffix(p, "Voici le texte source :\n"+text), "source text must close the prompt verbatim")
	for _, key := range []string{`"question"`, `"options"`, `"answer"`, `"explanation"`} {
		assert.Contains(t, p, key)
	}
	assert.Contains(t, p, "Ne réponds que par ce JSON valide")
}

func TestBuild_Deterministic(t *testing.T) {
	assert.Equal(t, Build("abc", 3), Build("abc", 3))
	assert.NotEqual(t, Build("abc", 3), Build("abc", 4))
}

func TestBuild_TextWithFormatVerbs(t *testing.T) {
	text := "100% des cas %d %s"
	p := Build(text, 1)
	assert.True(t, strings.HasSuffix(p, text))
}
