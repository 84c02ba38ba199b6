package logging

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func Test_SetVerbosity(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	tests := []struct {
		count int
		level log.Level
		name  string
	}{
		{0, log.WarnLevel, "WARN"},
		{1, log.InfoLevel, "INFO"},
		{2, log.DebugLevel, "DEBUG"},
		{3, log.TraceLevel, "TRACE"},
		{10, log.TraceLevel, "TRACE"},
	}

	for _, test := range tests {
		SetVerbosity(make([]bool, test.count))
		require.Equal(t, test.level, log.GetLevel(), "verbosity %d", test.count)
		require.Equal(t, test.name, VerbosityName())
	}
}
