// Package content turns raw headlines into platform-ready text: viral
// hooks via the Cohere chat API and the captions, titles and hashtag
// sets that ship with each video.
package content

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// HookRewriter rewrites headlines into short, punchy video hooks.
// Implementations degrade to the original titles, never fail a render.
type HookRewriter interface {
	RewriteAll(ctx context.Context, titles []string) []string
}

// CohereRewriter rewrites headlines with one batched chat call.
type CohereRewriter struct {
	client *cohereclient.Client
	model  string
}

var _ HookRewriter = (*CohereRewriter)(nil)

// NewCohereRewriter returns nil when no API key is configured. A nil
// rewriter keeps the original titles.
func NewCohereRewriter(apiKey string) *CohereRewriter {
	if apiKey == "" {
		return nil
	}
	// Force HTTP/1.1 to avoid HTTP/2 protocol errors against the API.
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereRewriter{client: client, model: "command-r"}
}

// RewriteAll rewrites every title in one call to save tokens. On any
// API or format problem the original titles come back unchanged.
func (r *CohereRewriter) RewriteAll(ctx context.Context, titles []string) []string {
	if r == nil || len(titles) == 0 {
		return titles
	}

	numbered := make([]string, len(titles))
	for i, t := range titles {
		numbered[i] = fmt.Sprintf("%d. %s", i+1, t)
	}
	prompt := fmt.Sprintf(
		"Rewrite these %d news headlines into catchy, viral video hooks (MAX 8 words each).\n"+
			"Make them punchy, dramatic, and clear. No hashtags. No emojis.\n"+
			"Current headlines:\n%s\n\n"+
			"Output ONLY the %d rewritten headlines, numbered 1-%d.",
		len(titles), strings.Join(numbered, "\n"), len(titles), len(titles))

	resp, err := r.client.Chat(ctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   &r.model,
	})
	if err != nil {
		log.Printf("⚠️ Hook rewrite failed: %v. Using original headlines", err)
		return titles
	}

	hooks := parseNumberedLines(resp.Text)
	if len(hooks) != len(titles) {
		log.Printf("⚠️ Hook rewrite returned %d lines, want %d. Using original headlines", len(hooks), len(titles))
		return titles
	}
	for i := range hooks {
		log.Printf("✏️ Rewrote: %.40s -> %s", titles[i], hooks[i])
	}
	return hooks
}

// parseNumberedLines keeps lines that start with a digit, stripped of
// their "N." prefix, in order.
func parseNumberedLines(s string) []string {
	var out []string
	for _, raw := range strings.Split(s, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || line[0] < '0' || line[0] > '9' {
			continue
		}
		if _, after, found := strings.Cut(line, "."); found {
			out = append(out, strings.TrimSpace(after))
		} else {
			out = append(out, line)
		}
	}
	return out
}
