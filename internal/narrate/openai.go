package narrate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	MaxCompletionTokens int           `json:"max_completion_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatChoice struct {
	Message *chatMessage `json:"message"`
	Delta   *chatMessage `json:"delta"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// extractors are tried in order until one yields non-empty text. Completion
// payloads come in at least two shapes (full message or incremental delta);
// a third shape slots in here.
var extractors = []func(chatChoice) string{
	func(c chatChoice) string {
		if c.Message != nil {
			return c.Message.Content
		}
		return ""
	},
	func(c chatChoice) string {
		if c.Delta != nil {
			return c.Delta.Content
		}
		return ""
	},
}

// complete issues one non-streaming chat-completions request and returns
// the trimmed summary text, or "" when the backend produced no usable text.
func (n *Narrator) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:               n.Model,
		Messages:            []chatMessage{{Role: "user", Content: prompt}},
		MaxCompletionTokens: n.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.APIKey)

	resp, err := n.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("completion endpoint returned %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", nil
	}
	for _, extract := range extractors {
		if text := strings.TrimSpace(extract(cr.Choices[0])); text != "" {
			return text, nil
		}
	}
	return "", nil
}
