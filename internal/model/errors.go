package model

import "errors"

var (
	ErrUnknownQuestion  = errors.New("question does not exist")
	ErrInvalidAnswer    = errors.New("answer does not fit the question")
	ErrIncomplete       = errors.New("all questions must be answered before submitting")
	ErrAlreadySubmitted = errors.New("survey already submitted")
	ErrSessionNotFound  = errors.New("session not found")
)
