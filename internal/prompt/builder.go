package prompt

import (
	"fmt"
)

// quizTemplate is filled with the question count (twice) and the source text.
const quizTemplate = `Tu es un assistant pédagogique. Génère un quiz JSON avec EXACTEMENT %d questions à choix multiple (4 options par question). Utilise CE FORMAT JSON STRICT :
[
  {
    "question": "...",
    "options": ["option a", "option b", "option c", "option d"],
    "answer": "option correcte (copiée de la liste options)",
    "explanation": "explication courte"
  }
]

Le tableau doit contenir exactement %d objets. Chaque "answer" doit reprendre mot pour mot l'une des quatre "options".
Ne réponds que par ce JSON valide, sans introduction, ni texte supplémentaire.

Voici le texte source :
%s`

// Build returns the generation prompt for count questions over text.
// The text is embedded verbatim; callers bound its size.
func Build(text string, count int) string {
	return fmt.Sprintf(quizTemplate, count, count, text)
}
