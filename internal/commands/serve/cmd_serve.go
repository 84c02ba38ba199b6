package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bokysan/altbase64/internal/logging"
	"github.com/bokysan/altbase64/internal/server"
	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Command runs the codec as an HTTP and websocket service.
type Command struct {
	server.Config `group:"Server options" yaml:",inline"`

	srv *server.HttpServer
}

func NewCommand() *Command {
	return &Command{
		Config: server.NewConfig(),
	}
}

// Server returns the running server, or nil before Startup.
func (c *Command) Server() *server.HttpServer {
	return c.srv
}

func (c *Command) Startup() error {
	log.Debugf("Effective configuration:\n%s", spew.Sdump(c.Config.Redacted()))

	c.srv = server.NewHttpServer(c.Config)
	return c.srv.Startup()
}

func (c *Command) Shutdown() error {
	if c.srv == nil {
		return nil
	}

	log.Infof("Graceful server shutdown...")
	log.Debugf("[Server] Shutting down %v", c.srv)
	return c.srv.Shutdown()
}

func (c *Command) Execute(args []string) error {
	logging.SetupLogging()

	if len(args) > 0 {
		return errors.Errorf("serve does not take any arguments, got %v", args)
	}

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(interrupted)

	if err := c.Startup(); err != nil {
		return err
	}

	select {
	case <-interrupted:
		return c.Shutdown()
	case err := <-c.srv.Failed():
		var errs error = multierror.Append(err, c.Shutdown())
		return errs
	}
}
