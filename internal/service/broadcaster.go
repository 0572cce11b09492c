package service

import "audiosurvey/internal/survey"

// Broadcaster interface for WebSocket pushes (avoids import cycle)
type Broadcaster interface {
	SendToSession(sessionID string, msgType string, payload interface{})
	DisconnectSession(sessionID string)
}

// Renderer turns a snapshot into the survey body HTML
type Renderer interface {
	RenderSurvey(snap survey.Snapshot) (string, error)
}
