package repl

import (
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/kuhi-lang/kuhi/internal/builtin"
	"github.com/kuhi-lang/kuhi/internal/config"
	"github.com/kuhi-lang/kuhi/internal/format"
)

const (
	ansiRed   = "\033[31m"
	ansiDim   = "\033[2m"
	ansiReset = "\033[0m"
)

// Run drives an interactive session until :q, Ctrl-D or Ctrl-C. History is
// read at startup and written back on exit; failures around the history
// file are ignored.
func Run(cfg config.Config, colored bool) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(cfg.History); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	banner := fmt.Sprintf("%s %s (%s to quit)", config.AppName, config.Version, config.QuitCommand)
	if colored {
		banner = ansiDim + banner + ansiReset
	}
	fmt.Println(banner)

	s := NewSession(builtin.NewTable(), "repl")
	for {
		input, err := ln.Prompt(fmt.Sprintf("%d%s", s.Line(), config.PromptSuffix))
		if err != nil {
			break
		}
		if strings.TrimSpace(input) == config.QuitCommand {
			break
		}
		// History and the session both receive the expanded form, so
		// recalled lines look like what was evaluated.
		expanded := format.Expand(input)
		if strings.TrimSpace(expanded) != "" {
			ln.AppendHistory(expanded)
		}
		out, ok := s.Feed(expanded)
		if out == "" {
			continue
		}
		if !ok && colored {
			out = ansiRed + out + ansiReset
		}
		fmt.Println(out)
	}

	if f, err := os.Create(cfg.History); err == nil {
		ln.WriteHistory(f)
		f.Close()
	}
}
