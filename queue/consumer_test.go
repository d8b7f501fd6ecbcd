package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
)

type handlerFunc func(ctx context.Context, message []byte) (bool, error)

func (f handlerFunc) HandleMessage(ctx context.Context, m []byte) (bool, error) { return f(ctx, m) }

type fakeSession struct {
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "test-member" }
func (s *fakeSession) GenerationID() int32                      { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Context() context.Context                 { return s.ctx }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

func TestConsumeClaimMarksOnlyHandledMessages(t *testing.T) {
	session := &fakeSession{ctx: context.Background()}
	msgs := make(chan *sarama.ConsumerMessage, 3)
	msgs <- &sarama.ConsumerMessage{Topic: "renders", Offset: 1, Value: []byte("ok")}
	msgs <- &sarama.ConsumerMessage{Topic: "renders", Offset: 2, Value: []byte("fail")}
	msgs <- &sarama.ConsumerMessage{Topic: "renders", Offset: 3, Value: []byte("ok")}
	close(msgs)

	h := &groupHandler{
		ready: make(chan bool),
		handler: handlerFunc(func(_ context.Context, m []byte) (bool, error) {
			if string(m) == "fail" {
				return false, errors.New("boom")
			}
			return true, nil
		}),
	}
	if err := h.ConsumeClaim(session, fakeClaim{msgs: msgs}); err != nil {
		t.Fatalf("ConsumeClaim: %v", err)
	}

	want := []int64{1, 3}
	if len(session.marked) != len(want) {
		t.Fatalf("marked %v, want %v", session.marked, want)
	}
	for i, off := range want {
		if session.marked[i] != off {
			t.Errorf("marked[%d] = %d, want %d", i, session.marked[i], off)
		}
	}
}

func TestConsumeClaimStopsWhenSessionEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	session := &fakeSession{ctx: ctx}

	done := make(chan error, 1)
	h := &groupHandler{
		ready:   make(chan bool),
		handler: handlerFunc(func(context.Context, []byte) (bool, error) { return true, nil }),
	}
	go func() {
		done <- h.ConsumeClaim(session, fakeClaim{msgs: make(chan *sarama.ConsumerMessage)})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ConsumeClaim: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ConsumeClaim did not return after session context ended")
	}
}

type fakeClaim struct {
	msgs chan *sarama.ConsumerMessage
}

func (c fakeClaim) Topic() string                            { return "renders" }
func (c fakeClaim) Partition() int32                         { return 0 }
func (c fakeClaim) InitialOffset() int64                     { return 0 }
func (c fakeClaim) HighWaterMarkOffset() int64               { return 0 }
func (c fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.msgs }
