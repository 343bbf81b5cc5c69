package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const replyPath = "/v2/bot/message/reply"

// maxMessagesPerReply 是平台对单次 reply 调用的消息数上限。
const maxMessagesPerReply = 5

// Message 是 Messaging API 的消息对象，按 type 区分字段。
type Message struct {
	Type               string `json:"type"`
	Text               string `json:"text,omitempty"`
	OriginalContentURL string `json:"originalContentUrl,omitempty"`
	PreviewImageURL    string `json:"previewImageUrl,omitempty"`
	PackageID          string `json:"packageId,omitempty"`
	StickerID          string `json:"stickerId,omitempty"`
}

// APIError 表示平台返回的非 2xx 响应。
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("line api error: status=%d body=%s", e.StatusCode, e.Body)
}

// Client 是 Messaging API 的回复客户端。
// reply token 为一次性凭证，本客户端不做任何重试。
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(baseURL, accessToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type replyRequest struct {
	ReplyToken string    `json:"replyToken"`
	Messages   []Message `json:"messages"`
}

// Reply 使用 reply token 发送回复消息。
func (c *Client) Reply(ctx context.Context, replyToken string, messages []Message) error {
	if replyToken == "" {
		return fmt.Errorf("reply token is required")
	}
	if len(messages) == 0 || len(messages) > maxMessagesPerReply {
		return fmt.Errorf("reply requires 1 to %d messages, got %d", maxMessagesPerReply, len(messages))
	}

	body, err := json.Marshal(replyRequest{
		ReplyToken: replyToken,
		Messages:   messages,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reply request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+replyPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build reply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call reply api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// 错误响应体较小，读全量便于排查
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
	}
}
