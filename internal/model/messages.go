package model

// Messages pushed to the browser over a session's socket
const (
	MsgRender    = "render"
	MsgProgress  = "progress"
	MsgScrollTop = "scroll_top"
	MsgPlaying   = "playing"
	MsgError     = "error"
)

// PlayingPayload names the question whose clip is playing, 0 for none
type PlayingPayload struct {
	QuestionID int `json:"questionId"`
}

// RenderPayload carries the re-rendered survey body
type RenderPayload struct {
	HTML string `json:"html"`
}

// ProgressPayload tells the browser whether submission is possible
type ProgressPayload struct {
	Answered int  `json:"answered"`
	Total    int  `json:"total"`
	Complete bool `json:"complete"`
}

// ErrorPayload reports a rejected event
type ErrorPayload struct {
	Message string `json:"message"`
}
