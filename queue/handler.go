package queue

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"newsreel/config"
	"newsreel/engine"
	"newsreel/layers"
	"newsreel/pipeline"
)

// TypedMessageHandler decodes messages into T before processing.
// AlwaysMark controls whether undecodable or invalid messages are
// committed anyway instead of being redelivered forever.
type TypedMessageHandler[T any] struct {
	Validate   func(msg *T) bool
	Process    func(ctx context.Context, msg *T) error
	AlwaysMark bool
}

// HandleMessage implements MessageHandler.
func (h *TypedMessageHandler[T]) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var msg T
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("❌ Failed to unmarshal message: %v", err)
		return h.AlwaysMark, nil
	}

	if h.Validate != nil && !h.Validate(&msg) {
		return h.AlwaysMark, nil
	}

	if err := h.Process(ctx, &msg); err != nil {
		return false, err
	}
	return true, nil
}

// RenderRequest is one queued render. Kind selects the flow: a
// "story" message carries hook + script (plus optional narration
// audio), a "bulletin" message carries the five ranked titles.
type RenderRequest struct {
	Kind      string   `json:"kind"`
	ID        string   `json:"id,omitempty"`
	Hook      string   `json:"hook,omitempty"`
	Script    string   `json:"script,omitempty"`
	AudioPath string   `json:"audio_path,omitempty"`
	Duration  float64  `json:"duration,omitempty"`
	Titles    []string `json:"titles,omitempty"`
}

// Renderer is the slice of the engine queued requests drive.
type Renderer interface {
	RenderStory(ctx context.Context, req engine.StoryRequest) (string, error)
	RenderBulletin(ctx context.Context, req engine.BulletinRequest) (string, error)
}

var _ Renderer = (*engine.Engine)(nil)

// RenderHandler builds the handler for render request messages.
// Malformed requests are marked and dropped, render failures are left
// unmarked for redelivery.
func RenderHandler(render Renderer) *TypedMessageHandler[RenderRequest] {
	return &TypedMessageHandler[RenderRequest]{
		AlwaysMark: true,
		Validate:   validRenderRequest,
		Process: func(ctx context.Context, msg *RenderRequest) error {
			switch msg.Kind {
			case "story":
				narration := engine.Narration{Script: msg.Script, AudioPath: msg.AudioPath, Duration: msg.Duration}
				if msg.Duration == 0 {
					paced, err := pipeline.Pacer{}.Narrate(ctx, msg.Script)
					if err != nil {
						return err
					}
					narration = paced
					narration.AudioPath = msg.AudioPath
				}
				out, err := render.RenderStory(ctx, engine.StoryRequest{
					ID:        msg.ID,
					Hook:      msg.Hook,
					Narration: narration,
				})
				if err != nil {
					return err
				}
				log.Printf("✅ Queued story rendered: %s", out)
				return nil
			default:
				items := make([]layers.Item, len(msg.Titles))
				for i, title := range msg.Titles {
					items[i] = layers.Item{Rank: i + 1, Title: title}
				}
				out, err := render.RenderBulletin(ctx, engine.BulletinRequest{ID: msg.ID, Items: items})
				if err != nil {
					return err
				}
				log.Printf("✅ Queued bulletin rendered: %s", out)
				return nil
			}
		},
	}
}

func validRenderRequest(msg *RenderRequest) bool {
	switch msg.Kind {
	case "story":
		if strings.TrimSpace(msg.Hook) == "" || strings.TrimSpace(msg.Script) == "" {
			log.Printf("⚠️ Dropping story request without hook or script (id=%s)", msg.ID)
			return false
		}
		if msg.Duration < 0 {
			log.Printf("⚠️ Dropping story request with negative duration (id=%s)", msg.ID)
			return false
		}
		return true
	case "bulletin":
		if len(msg.Titles) != config.BulletinItemCount {
			log.Printf("⚠️ Dropping bulletin request with %d titles (id=%s)", len(msg.Titles), msg.ID)
			return false
		}
		return true
	default:
		log.Printf("⚠️ Dropping message with unknown kind %q", msg.Kind)
		return false
	}
}
