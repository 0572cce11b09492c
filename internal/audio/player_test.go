package audio

import "testing"

type sent struct {
	session string
	msgType string
	payload interface{}
}

type recorder struct {
	msgs []sent
}

func (r *recorder) SendToSession(sessionID string, msgType string, payload interface{}) {
	r.msgs = append(r.msgs, sent{sessionID, msgType, payload})
}

func TestRemotePlayerSendsCommands(t *testing.T) {
	rec := &recorder{}
	p := NewRemotePlayer("s1", rec)

	if err := p.Play("/audio/q3.mp3"); err != nil {
		t.Fatalf("play: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}

	if len(rec.msgs) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(rec.msgs))
	}
	if rec.msgs[0].session != "s1" || rec.msgs[0].msgType != MsgPlay {
		t.Fatalf("unexpected first command: %+v", rec.msgs[0])
	}
	if pl, ok := rec.msgs[0].payload.(PlayPayload); !ok || pl.Src != "/audio/q3.mp3" {
		t.Fatalf("unexpected play payload: %#v", rec.msgs[0].payload)
	}
	if rec.msgs[1].msgType != MsgStop {
		t.Fatalf("expected stop command, got %s", rec.msgs[1].msgType)
	}
}

func TestRemotePlayerEndedInvokesCallback(t *testing.T) {
	p := NewRemotePlayer("s1", &recorder{})
	p.Ended() // no callback yet

	calls := 0
	p.OnEnded(func() { calls++ })
	p.Ended()

	if calls != 1 {
		t.Fatalf("expected callback once, got %d", calls)
	}
}
