package addr

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/require"
)

func Test_ParseAddress(t *testing.T) {
	tests := map[string]ProtoAddress{
		"tcp://127.0.0.1:9988":     {Network: "tcp", Address: "127.0.0.1:9988"},
		"  tcp6://[::1]:80 ":       {Network: "tcp6", Address: "[::1]:80"},
		"unix:///run/altbase.sock": {Network: "unix", Address: "/run/altbase.sock"},
		"localhost:8080":           {Network: "tcp", Address: "localhost:8080"},
	}

	for in, expected := range tests {
		a, err := ParseAddress(in)
		require.NoErrorf(t, err, "Could not parse %q", in)
		require.Equal(t, expected, a)
	}

	for _, in := range []string{"", "udp://127.0.0.1:53", "tcp://"} {
		_, err := ParseAddress(in)
		require.Errorf(t, err, "Expected an error for %q", in)
	}
}

func Test_ProtoAddress_String(t *testing.T) {
	a, err := ParseAddress("unix:///tmp/a.sock")
	require.NoError(t, err)
	require.Equal(t, "unix:///tmp/a.sock", a.String())
	require.False(t, a.IsTCP())

	flag, err := ProtoAddress{Network: "tcp", Address: ":80"}.MarshalFlag()
	require.NoError(t, err)
	require.Equal(t, "tcp://:80", flag)
}

func Test_ProtoAddress_Yaml(t *testing.T) {
	var data struct {
		First  ProtoAddress `yaml:"first"`
		Second ProtoAddress `yaml:"second"`
	}

	in := "first: tcp://127.0.0.1:1\nsecond:\n  network: unix\n  address: /tmp/b.sock\n"
	require.NoError(t, yaml.Unmarshal([]byte(in), &data))
	require.Equal(t, ProtoAddress{Network: "tcp", Address: "127.0.0.1:1"}, data.First)
	require.Equal(t, ProtoAddress{Network: "unix", Address: "/tmp/b.sock"}, data.Second)

	require.Error(t, yaml.Unmarshal([]byte("first: udp://x:1\n"), &data))
}

func Test_ResolveHostAddress(t *testing.T) {
	a, err := ResolveHostAddress("127.0.0.1:9988")
	require.NoError(t, err)
	require.Equal(t, 9988, a.Port)

	_, err = ResolveHostAddress("127.0.0.1:notaport")
	require.Error(t, err)
}
