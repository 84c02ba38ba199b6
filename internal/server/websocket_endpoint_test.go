package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, url string) (*websocket.Conn, *http.Response, error) {
	c, res, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	if err == nil {
		t.Cleanup(func() {
			_ = c.Close()
		})
	}
	return c, res, err
}

func Test_Websocket(t *testing.T) {
	ts := newTestServer(t, NewConfig())

	c, _, err := dial(t, ts.URL+"/ws/encode?altchars=-_")
	require.NoError(t, err)

	for in, out := range map[string]string{"foo": "Zm9v", "\xfb\xff": "-_8=", "": ""} {
		require.NoError(t, c.WriteMessage(websocket.BinaryMessage, []byte(in)))
		messageType, msg, err := c.ReadMessage()
		require.NoError(t, err)
		require.Equal(t, websocket.BinaryMessage, messageType)
		require.Equal(t, out, string(msg))
	}

	require.NoError(t, c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
}

func Test_Websocket_ErrorKeepsSocketOpen(t *testing.T) {
	ts := newTestServer(t, NewConfig())

	c, _, err := dial(t, ts.URL+"/ws/decode?validate=true")
	require.NoError(t, err)

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("Zm9v\n")))
	messageType, msg, err := c.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.TextMessage, messageType)
	require.True(t, strings.HasPrefix(string(msg), ErrorPrefix), string(msg))
	require.Contains(t, string(msg), "invalid byte")

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("Zm9v")))
	_, msg, err = c.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "foo", string(msg))
}

func Test_Websocket_Rejected(t *testing.T) {
	ts := newTestServer(t, NewConfig())

	_, res, err := dial(t, ts.URL+"/ws/rot13")
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, res.StatusCode)

	_, res, err = dial(t, ts.URL+"/ws/encode?altchars=AB")
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func Test_Websocket_MessageLimit(t *testing.T) {
	config := NewConfig()
	config.MaxBodySize = 4
	ts := newTestServer(t, config)

	c, _, err := dial(t, ts.URL+"/ws/encodebytes")
	require.NoError(t, err)

	require.NoError(t, c.WriteMessage(websocket.BinaryMessage, []byte("12345")))
	_, _, err = c.ReadMessage()
	require.Error(t, err, "Oversized messages close the socket")
}
