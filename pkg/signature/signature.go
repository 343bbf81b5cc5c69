package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

const prefix = "sha256="

// Sign 计算 webhook 请求体的签名值：base64(HMAC-SHA256(secret, body))，带 sha256= 前缀。
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return prefix + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify 校验请求头中的签名是否与原始请求体匹配。
// 使用常量时间比较，避免时序侧信道。
func Verify(secret string, body []byte, header string) bool {
	if !strings.HasPrefix(header, prefix) {
		return false
	}

	got, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, prefix))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}
