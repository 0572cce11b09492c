package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AnswerKind tells which field of an Answer carries the value
type AnswerKind string

const (
	AnswerText   AnswerKind = "text"
	AnswerRating AnswerKind = "rating"
)

// Answer is a single response: a transcription or a rating.
// On the wire it is a bare JSON string or number.
type Answer struct {
	Kind   AnswerKind
	Text   string
	Rating int
}

// TextAnswer builds a transcription answer
func TextAnswer(text string) Answer {
	return Answer{Kind: AnswerText, Text: text}
}

// RatingAnswer builds a rating answer
func RatingAnswer(rating int) Answer {
	return Answer{Kind: AnswerRating, Rating: rating}
}

// Value returns the answer as a string or an int
func (a Answer) Value() interface{} {
	if a.Kind == AnswerRating {
		return a.Rating
	}
	return a.Text
}

// Fits reports whether the answer is acceptable for a question of type t
func (a Answer) Fits(t QuestionType) bool {
	if t.IsRating() {
		return a.Kind == AnswerRating && a.Rating >= RatingMin && a.Rating <= RatingMax
	}
	return a.Kind == AnswerText && len(a.Text) <= MaxTextLength
}

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value())
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = TextAnswer(s)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("answer must be a string or an integer: %w", ErrInvalidAnswer)
	}
	*a = RatingAnswer(n)
	return nil
}
