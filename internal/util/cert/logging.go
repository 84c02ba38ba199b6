package cert

import (
	"crypto/tls"

	log "github.com/sirupsen/logrus"
)

// LogPeerCertificates logs the client certificate of a mutually authenticated connection.
func LogPeerCertificates(state *tls.ConnectionState) {
	if state == nil || len(state.PeerCertificates) == 0 {
		return
	}

	cert := state.PeerCertificates[0]
	log.Debugf(
		"Peer certificate: ver=%v, serial=%v, subject=%v",
		cert.Version,
		cert.SerialNumber,
		cert.Subject,
	)
}
