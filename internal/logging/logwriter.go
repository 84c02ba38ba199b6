package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ChiLogWriter sends the lines of chi's default request logger to logrus at debug level.
type ChiLogWriter struct {
}

func (lw *ChiLogWriter) Print(a ...interface{}) {
	if len(a) == 0 {
		return
	}
	if format, ok := a[0].(string); ok && len(a) > 1 {
		logrus.Debugf(format, a[1:]...)
		return
	}
	msg := strings.TrimSpace(fmt.Sprint(a...))
	logrus.Debug(msg)
}
