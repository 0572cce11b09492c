// Package catalog generates the fixed list of survey questions.
package catalog

import (
	"fmt"
	"sync"

	"audiosurvey/internal/model"
)

// Size is the number of questions in the survey
const Size = 30

const (
	promptIntelligibility = "Listen to the audio below. Please type exactly what you hear."
	promptNaturalness     = "Listen to the audio below. How natural does this voice sound? (1 = very unnatural, 5 = very natural)"
	promptLikability      = "Listen to the audio below. How pleasant does this voice sound? (1 = very unpleasant, 5 = very pleasant)"
)

var cycle = [...]struct {
	typ    model.QuestionType
	prompt string
}{
	{model.QuestionTypeIntelligibility, promptIntelligibility},
	{model.QuestionTypeNaturalness, promptNaturalness},
	{model.QuestionTypeLikability, promptLikability},
}

// AudioPath returns the logical URL of the clip for question id
func AudioPath(id int) string {
	return fmt.Sprintf("/audio/q%d.mp3", id)
}

// Generate builds the catalog. The order is fixed: no shuffling happens here
// or anywhere else.
func Generate() []model.Question {
	questions := make([]model.Question, 0, Size)
	for i := 1; i <= Size; i++ {
		c := cycle[(i-1)%len(cycle)]
		questions = append(questions, model.Question{
			ID:        i,
			Type:      c.typ,
			Text:      c.prompt,
			AudioPath: AudioPath(i),
		})
	}
	return questions
}

var shared = sync.OnceValue(Generate)

// Questions returns a copy of the process-wide catalog
func Questions() []model.Question {
	qs := shared()
	out := make([]model.Question, len(qs))
	copy(out, qs)
	return out
}

// Lookup finds a question by id
func Lookup(id int) (model.Question, bool) {
	if id < 1 || id > Size {
		return model.Question{}, false
	}
	return shared()[id-1], true
}
