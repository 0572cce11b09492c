// Package audio models the single audio output a survey session plays through.
package audio

// Player is the owned handle to one physical output. Play reassigns the
// source, so switching clips needs no Stop in between.
type Player interface {
	Play(path string) error
	Stop() error
	OnEnded(fn func())
}

// Commands sent to the browser
const (
	MsgPlay = "audio_play"
	MsgStop = "audio_stop"
)

// PlayPayload is the body of an audio_play command
type PlayPayload struct {
	Src string `json:"src"`
}

// Commander delivers a command to the browser attached to a session
// (implemented by the ws hub; declared here to avoid an import cycle)
type Commander interface {
	SendToSession(sessionID string, msgType string, payload interface{})
}

// RemotePlayer drives the browser's <audio> element for one session
type RemotePlayer struct {
	sessionID string
	out       Commander
	onEnded   func()
}

// NewRemotePlayer creates a player bound to a session
func NewRemotePlayer(sessionID string, out Commander) *RemotePlayer {
	return &RemotePlayer{sessionID: sessionID, out: out}
}

func (p *RemotePlayer) Play(path string) error {
	p.out.SendToSession(p.sessionID, MsgPlay, PlayPayload{Src: path})
	return nil
}

func (p *RemotePlayer) Stop() error {
	p.out.SendToSession(p.sessionID, MsgStop, nil)
	return nil
}

func (p *RemotePlayer) OnEnded(fn func()) {
	p.onEnded = fn
}

// Ended is called when the browser reports end of media
func (p *RemotePlayer) Ended() {
	if p.onEnded != nil {
		p.onEnded()
	}
}
