package model

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeIntelligibility QuestionType = "INTELLIGIBILITY" // Free text transcription
	QuestionTypeNaturalness     QuestionType = "NATURALNESS"     // 1-5 rating
	QuestionTypeLikability      QuestionType = "LIKABILITY"      // 1-5 rating
)

// Rating scale bounds for NATURALNESS and LIKABILITY questions
const (
	RatingMin = 1
	RatingMax = 5
)

// MaxTextLength caps a transcription, in bytes
const MaxTextLength = 64 * 1024

// IsRating reports whether the question is answered on the 1-5 scale
func (t QuestionType) IsRating() bool {
	return t == QuestionTypeNaturalness || t == QuestionTypeLikability
}

// Question is an immutable catalog entry
type Question struct {
	ID        int          `json:"id"`
	Type      QuestionType `json:"type"`
	Text      string       `json:"text"`
	AudioPath string       `json:"audioPath"`
}
