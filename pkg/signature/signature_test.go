package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	secret := "channel-secret"
	body := []byte(`{"events":[{"type":"message"}]}`)

	header := Sign(secret, body)
	require.True(t, Verify(secret, body, header))
}

func TestVerify_RejectsTamperedBody(t *testing.T) {
	secret := "channel-secret"
	header := Sign(secret, []byte("original"))

	assert.False(t, Verify(secret, []byte("tampered"), header))
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	body := []byte("payload")
	header := Sign("secret-a", body)

	assert.False(t, Verify("secret-b", body, header))
}

func TestVerify_RejectsMalformedHeader(t *testing.T) {
	body := []byte("payload")

	assert.False(t, Verify("secret", body, ""))
	assert.False(t, Verify("secret", body, "md5=abcd"))
	assert.False(t, Verify("secret", body, "sha256=!!!not-base64!!!"))
}
