package model

import (
	"fmt"
)

// ResponseType 回复内容类型枚举
type ResponseType string

const (
	ResponseTypeText    ResponseType = "text"    // 文本回复
	ResponseTypeImage   ResponseType = "image"   // 图片回复
	ResponseTypeSticker ResponseType = "sticker" // 贴图回复
)

// Response 规则回复内容，按 Type 区分有效字段
// Probability 取值 [0,1]，命中概率判定失败时跳过本条规则
type Response struct {
	Type               ResponseType `json:"type"`
	Text               string       `json:"text,omitempty"`
	OriginalContentURL string       `json:"original_content_url,omitempty"`
	PreviewImageURL    string       `json:"preview_image_url,omitempty"`
	PackageID          string       `json:"package_id,omitempty"`
	StickerID          string       `json:"sticker_id,omitempty"`
	Probability        float64      `json:"probability"`
}

// Validate 校验回复字段组合是否合法
func (r Response) Validate() error {
	if r.Probability < 0 || r.Probability > 1 {
		return fmt.Errorf("response probability must be within [0,1], got %v", r.Probability)
	}
	switch r.Type {
	case ResponseTypeText:
		if r.Text == "" {
			return fmt.Errorf("text response requires text")
		}
	case ResponseTypeImage:
		if r.OriginalContentURL == "" || r.PreviewImageURL == "" {
			return fmt.Errorf("image response requires original and preview urls")
		}
	case ResponseTypeSticker:
		if r.PackageID == "" || r.StickerID == "" {
			return fmt.Errorf("sticker response requires package and sticker ids")
		}
	default:
		return fmt.Errorf("unknown response type: %q", r.Type)
	}
	return nil
}

// ContentSummary 返回用于日志记录的内容摘要
func (r Response) ContentSummary() string {
	switch r.Type {
	case ResponseTypeText:
		return r.Text
	case ResponseTypeImage:
		return r.OriginalContentURL
	case ResponseTypeSticker:
		return fmt.Sprintf("sticker:%s/%s", r.PackageID, r.StickerID)
	default:
		return ""
	}
}
