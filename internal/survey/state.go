// Package survey holds the per-session survey state machine.
package survey

import (
	"audiosurvey/internal/model"
)

// PlaybackCommand is what the audio output must do after a toggle
type PlaybackCommand int

const (
	StartPlayback PlaybackCommand = iota + 1
	StopPlayback
)

// NotPlaying is the PlayingID when nothing is bound to the output
const NotPlaying = 0

// State is the survey's transient UI state. Transitions either apply fully
// or return an error and leave the state untouched.
type State struct {
	Total     int
	Answers   map[int]model.Answer
	PlayingID int
	Submitted bool
}

// NewState returns the initial state for a catalog of total questions
func NewState(total int) *State {
	return &State{
		Total:   total,
		Answers: make(map[int]model.Answer),
	}
}

// RecordAnswer upserts the answer for q
func (s *State) RecordAnswer(q model.Question, a model.Answer) error {
	if s.Submitted {
		return model.ErrAlreadySubmitted
	}
	if !a.Fits(q.Type) {
		return model.ErrInvalidAnswer
	}
	s.Answers[q.ID] = a
	return nil
}

// Toggle flips playback for q. A different question takes over the output.
func (s *State) Toggle(q model.Question) (PlaybackCommand, error) {
	if s.Submitted {
		return 0, model.ErrAlreadySubmitted
	}
	if s.PlayingID == q.ID {
		s.PlayingID = NotPlaying
		return StopPlayback, nil
	}
	s.PlayingID = q.ID
	return StartPlayback, nil
}

// PlaybackEnded clears the playing id whatever was playing
func (s *State) PlaybackEnded() {
	s.PlayingID = NotPlaying
}

// Answered is the number of questions with an answer
func (s *State) Answered() int {
	return len(s.Answers)
}

// Complete reports whether every question has an answer
func (s *State) Complete() bool {
	return len(s.Answers) == s.Total
}

func (s *State) Submit() error {
	if s.Submitted {
		return model.ErrAlreadySubmitted
	}
	if !s.Complete() {
		return model.ErrIncomplete
	}
	s.Submitted = true
	return nil
}

// Restart returns to the initial state
func (s *State) Restart() {
	s.Submitted = false
	s.Answers = make(map[int]model.Answer)
	s.PlayingID = NotPlaying
}

// Clone returns a deep copy
func (s *State) Clone() *State {
	answers := make(map[int]model.Answer, len(s.Answers))
	for id, a := range s.Answers {
		answers[id] = a
	}
	return &State{
		Total:     s.Total,
		Answers:   answers,
		PlayingID: s.PlayingID,
		Submitted: s.Submitted,
	}
}
