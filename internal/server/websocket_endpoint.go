package server

import (
	"github.com/bokysan/altbase64/internal/streams"
	"github.com/bokysan/altbase64/internal/util/cert"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"net/http"
)

// ErrorPrefix starts every text message which reports a failed transform on a websocket.
const ErrorPrefix = "error: "

// Websocket handles GET /ws/{op}. Every incoming message is transformed on its own and answered with
// one message of the same type. A failing transform is answered with a text message starting with
// ErrorPrefix and the socket stays open.
func (hs *HttpServer) Websocket(w http.ResponseWriter, r *http.Request) {
	log.Debugf("New client request...")
	cert.LogPeerCertificates(r.TLS)

	req, err := parseRequest(r)
	if err != nil {
		writeError(w, err)
		return
	} else if req == nil {
		http.NotFound(w, r)
		return
	}

	c, err := hs.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		log.WithError(err).Debugf("Socket upgrade failed: %v", err)
		return
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.WithError(err).Debugf("Failed closing the websocket: %v", err)
		}
	}()

	if hs.MaxBodySize > 0 {
		c.SetReadLimit(hs.MaxBodySize)
	}

	for {
		messageType, msg, err := c.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debugf("Websocket %v closed by the client", req)
			} else {
				log.WithError(err).Debugf("Websocket %v read failed: %v", req, err)
			}
			return
		}

		res, err := req.run(streams.Bytes(msg))
		if err != nil {
			log.WithError(err).Debugf("Websocket %v transform failed: %v", req, err)
			messageType = websocket.TextMessage
			res = []byte(ErrorPrefix + err.Error())
		}

		if err := c.WriteMessage(messageType, res); err != nil {
			log.WithError(err).Debugf("Websocket %v write failed: %v", req, err)
			return
		}
	}
}
