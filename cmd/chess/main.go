// Package main runs an interactive terminal chess session
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/VideosHosting/Chess/internal/cli"
	"github.com/VideosHosting/Chess/internal/service"
	clitransport "github.com/VideosHosting/Chess/internal/transport/cli"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	theme := flag.String("theme", "", "Board color theme: off, brown, green, gray (default brown on a terminal)")
	position := flag.String("position", "", "Start immediately from this position, e.g. '4k3/8/8/8/8/8/8/4K2R w'")
	history := flag.String("history", ".chess_history", "Readline history file (empty disables)")
	flag.Parse()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	var input cli.LineReader
	if interactive {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "> ",
			HistoryFile:     *history,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start line editor: %v\n", err)
			os.Exit(1)
		}
		defer rl.Close()
		input = rl
	} else {
		input = cli.NewScannerReader(os.Stdin)
	}

	svc := service.New(nil)
	defer svc.Close()

	view := cli.New(input, os.Stdout)

	selected := cli.ColorTheme(*theme)
	if selected == "" {
		selected = cli.ThemeOff
		if term.IsTerminal(int(os.Stdout.Fd())) {
			selected = cli.ThemeBrown
		}
	}
	if err := view.SetTheme(selected); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	handler := clitransport.New(svc, view)

	if interactive {
		view.ShowWelcome()
	}
	if *position != "" {
		handler.ProcessCommand(&cli.Command{Type: cli.CmdResume, Args: []string{*position}})
	}

	handler.Run()
}
