package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bokysan/altbase64/internal/args"
	"github.com/bokysan/altbase64/internal/logging"
	"github.com/bokysan/altbase64/internal/util/addr"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ShutdownTimeout is how long Shutdown waits for running requests to finish
const ShutdownTimeout = 5 * time.Second

// HttpServer serves the codec operations over HTTP and websockets.
type HttpServer struct {
	Config

	upgrader websocket.Upgrader

	m        sync.Mutex
	secure   bool
	server   *http.Server
	listener net.Listener
	failed   chan error
}

func NewHttpServer(config Config) *HttpServer {
	return &HttpServer{
		Config: config,
		upgrader: websocket.Upgrader{
			EnableCompression: config.EnableCompression,
		},
		failed: make(chan error, 1),
	}
}

func (hs *HttpServer) String() string {
	hs.m.Lock()
	defer hs.m.Unlock()

	protocol := "http"
	if hs.secure {
		protocol += "s"
	}

	address := hs.Listen.Address
	if hs.listener != nil {
		address = hs.listener.Addr().String()
	}
	return fmt.Sprintf("%s://%s", protocol, address)
}

// Addr returns the address the server listens on, or nil if it has not been started.
func (hs *HttpServer) Addr() net.Addr {
	hs.m.Lock()
	defer hs.m.Unlock()

	if hs.listener == nil {
		return nil
	}
	return hs.listener.Addr()
}

// Failed delivers the error which stopped the server, if it stopped for any reason other than
// Shutdown.
func (hs *HttpServer) Failed() <-chan error {
	return hs.failed
}

// Router builds the handler with all the routes. The address is only used for request logging and
// may be nil.
func (hs *HttpServer) Router(address *net.TCPAddr) http.Handler {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID, // Set Request Id on all requests
		middleware.RealIP,    // Extract actual IP if running behind reverse proxy
		GetRequestLogger(address),
		middleware.RedirectSlashes, // Redirect slashes to no slash URLs
		middleware.Recoverer,       // Recover from panics without crashing the server
	)

	router.Post("/{op}", hs.Transform)
	router.Get("/ws/{op}", hs.Websocket)

	return router
}

// GetRequestLogger selects the chi request logger matching the configured log format.
func GetRequestLogger(address *net.TCPAddr) func(next http.Handler) http.Handler {
	if args.General.LogFormat == "json" {
		return middleware.RequestLogger(&logging.JSONLogFormatter{
			ServerAddress: address,
		})
	}

	color := strings.TrimSpace(strings.ToLower(args.General.LogColor))
	return middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  &logging.ChiLogWriter{},
		NoColor: color == "no" || color == "false" || color == "0",
	})
}

// Startup binds the listener and serves in the background. It returns once the server accepts
// connections, or with the error that prevented it.
func (hs *HttpServer) Startup() error {
	hs.m.Lock()
	defer hs.m.Unlock()

	if hs.server != nil {
		return errors.Errorf("Server %v already started", hs.Listen)
	}

	listen := hs.Listen
	if listen.Network == "" {
		listen = NewConfig().Listen
	}
	if listen.IsTCP() {
		if _, err := addr.ResolveHostAddress(listen.Address); err != nil {
			return err
		}
	}

	tlsConfig, err := hs.GetTlsConfig()
	if err != nil {
		return errors.Wrapf(err, "Could not configure TLS")
	}

	ln, err := net.Listen(listen.Network, listen.Address)
	if err != nil {
		return errors.Wrapf(err, "Could not listen on %v", listen)
	}

	tcpAddr, _ := ln.Addr().(*net.TCPAddr)
	hs.listener = ln
	hs.secure = tlsConfig != nil
	hs.server = &http.Server{
		Handler:   hs.Router(tcpAddr),
		TLSConfig: tlsConfig,
	}

	server := hs.server
	secure := hs.secure
	go func() {
		var err error
		if secure {
			log.Infof("Starting HTTPS server at %v", ln.Addr())
			err = server.ServeTLS(ln, "", "")
		} else {
			log.Infof("Starting HTTP server at %v", ln.Addr())
			err = server.Serve(ln)
		}
		if err != http.ErrServerClosed {
			err = errors.WithStack(err)
			log.WithError(err).Errorf("Server stopped: %v", err)
			hs.failed <- err
		}
	}()

	return nil
}

// Shutdown stops accepting connections and waits up to ShutdownTimeout for running requests.
func (hs *HttpServer) Shutdown() error {
	hs.m.Lock()
	server := hs.server
	hs.m.Unlock()

	if server == nil {
		return nil
	}

	var errs error
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		errs = multierror.Append(errs, errors.Wrapf(err, "Could not shutdown %v", hs))
	}

	select {
	case err := <-hs.failed:
		errs = multierror.Append(errs, err)
	default:
	}

	return errs
}
