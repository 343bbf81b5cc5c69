package line

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientReply_SendsExpectedRequest(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq replyRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", 2*time.Second)

	err := client.Reply(context.Background(), "reply-token", []Message{
		{Type: "text", Text: "hello"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/v2/bot/message/reply", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "reply-token", gotReq.ReplyToken)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "hello", gotReq.Messages[0].Text)
}

func TestClientReply_APIErrorCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid reply token"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", 2*time.Second)

	err := client.Reply(context.Background(), "expired-token", []Message{{Type: "text", Text: "hi"}})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Invalid reply token")
}

func TestClientReply_ValidatesInput(t *testing.T) {
	client := NewClient("http://localhost:0", "token", time.Second)

	assert.Error(t, client.Reply(context.Background(), "", []Message{{Type: "text", Text: "hi"}}))
	assert.Error(t, client.Reply(context.Background(), "tok", nil))
	assert.Error(t, client.Reply(context.Background(), "tok", make([]Message, 6)))
}
