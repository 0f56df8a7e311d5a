// Command chess is a two-player chess game played at the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/benbeisheim/simplechess/internal/cli"
	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	themeName := flag.String("theme", "classic", "board theme: "+strings.Join(cli.ThemeNames(), ", "))
	history := flag.String("history", "", "readline history file")
	flag.Parse()

	theme, ok := cli.LookupTheme(*themeName)
	if !ok {
		log.Fatalf("unknown theme %q", *themeName)
	}
	// colour codes only make sense on a terminal
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		theme, _ = cli.LookupTheme("plain")
	}

	session := cli.NewSession(os.Stdout, theme)
	registry := cli.NewRegistry(session)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          session.Prompt(),
		HistoryFile:     *history,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		log.Fatalf("readline: %v", err)
	}
	defer rl.Close()

	fmt.Println("Type 'help' for commands")
	session.Draw()

	for {
		rl.SetPrompt(session.Prompt())
		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		if err := registry.Execute(strings.TrimSpace(line)); err != nil {
			if errors.Is(err, cli.ErrQuit) {
				break
			}
			if session.Theme.Plain() {
				fmt.Println(err)
			} else {
				fmt.Printf("%s%v%s\n", cli.Red, err, cli.Reset)
			}
		}
	}
}
