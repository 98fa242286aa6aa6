package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type capturePublisher struct {
	queue string
	body  []byte
	err   error
}

func (p *capturePublisher) Publish(_ context.Context, queue string, body []byte) error {
	if p.err != nil {
		return p.err
	}
	p.queue = queue
	p.body = body
	return nil
}

func TestRabbitNotifier_Payload(t *testing.T) {
	pub := &capturePublisher{}
	n := NewRabbitNotifier(pub, "invite_emails", zerolog.Nop())

	link := "http://127.0.0.1:5500/otp-flow.html?email=a%40example.com&code=123456"
	if err := n.SendInviteLink(context.Background(), "admin@example.com", "a@example.com", link); err != nil {
		t.Fatalf("SendInviteLink returned error: %v", err)
	}
	if pub.queue != "invite_emails" {
		t.Errorf("queue = %q", pub.queue)
	}

	var msg InviteEmail
	if err := json.Unmarshal(pub.body, &msg); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if msg.From != "admin@example.com" || msg.To != "a@example.com" || msg.Link != link || msg.Subject == "" {
		t.Errorf("unexpected payload %+v", msg)
	}
}

func TestRabbitNotifier_PublishError(t *testing.T) {
	boom := errors.New("channel closed")
	n := NewRabbitNotifier(&capturePublisher{err: boom}, "q", zerolog.Nop())

	if err := n.SendInviteLink(context.Background(), "a", "b", "c"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped publish error, got %v", err)
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	if err := n.SendInviteLink(context.Background(), "admin@example.com", "a@example.com", "http://x/?code=1"); err != nil {
		t.Fatalf("SendInviteLink returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "a@example.com") || !strings.Contains(buf.String(), "http://x/?code=1") {
		t.Errorf("log line missing recipient or link: %s", buf.String())
	}
}
