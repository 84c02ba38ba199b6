package version

import (
	"fmt"
	"io"

	"github.com/bokysan/altbase64/internal/version"
	"github.com/k0kubun/go-ansi"
)

const (
	Bold           = "\x1b[1m"
	Reset          = "\x1b[0m"
	LightGray      = "\x1b[37m"
	DarkGray       = "\x1b[90m"
	White          = "\x1b[97m"
	BackgroundBlue = "\x1b[44m"
)

// Command prints the build information of the binary.
type Command struct {
}

func (i *Command) String() string {
	return "Version details"
}

func (i *Command) Execute(args []string) error {
	PrintDetails(ansi.NewAnsiStdout())
	return nil
}

//goland:noinspection GoUnhandledErrorResult
func PrintDetails(w io.Writer) {
	PrintVersion(w)
	fmt.Fprintf(w, DarkGray+" Author      "+White+"%+v"+Reset+"\n", "Bojan Cekrlic <github.com/bokysan>")
	if version.GitTag != "" {
		fmt.Fprintf(w, DarkGray+" Git tag     "+White+"%+v"+Reset+"\n", version.GitTag)
	}
	if version.GitBranch != "" {
		fmt.Fprintf(w, DarkGray+" Git branch  "+White+"%+v"+Reset+"\n", version.GitBranch)
	}
	if version.GitState != "" {
		fmt.Fprintf(w, DarkGray+" Git state   "+White+"%+v"+Reset+"\n", version.GitState)
	}
	if version.GoVersion != "" {
		fmt.Fprintf(w, DarkGray+" Go version  "+White+"%+v"+Reset+"\n", version.GoVersion)
	}
}

//goland:noinspection GoUnhandledErrorResult
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, Bold+BackgroundBlue+
		LightGray+" ALTBASE64 - Base64 with alternative alphabets "+White+"%s"+LightGray+" "+Reset+"\n"+
		DarkGray+" Built on    "+White+"%+v\n"+
		DarkGray+" Git version "+White+"%+v"+Reset+"\n",
		version.AppVersion(), version.BuildDate, version.GitCommit)
}
