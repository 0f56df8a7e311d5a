package cli

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/benbeisheim/simplechess/internal/model"
)

// ErrQuit is returned by Execute when the user asks to leave.
var ErrQuit = errors.New("quit")

var movePattern = regexp.MustCompile(`^([a-h][1-8])([a-h][1-8])([qrbnQRBN]?)$`)

// Command defines a terminal command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(*Session, []string) error
}

// Registry manages command registration and execution
type Registry struct {
	session  *Session
	commands map[string]*Command
	order    []*Command
}

func NewRegistry(session *Session) *Registry {
	r := &Registry{
		session:  session,
		commands: make(map[string]*Command),
	}

	r.Register(&Command{Name: "undo", ShortName: "z", Description: "Take back the last move", Usage: "undo", Handler: undoHandler})
	r.Register(&Command{Name: "new", ShortName: "n", Description: "Start a new game", Usage: "new", Handler: newHandler})
	r.Register(&Command{Name: "flip", ShortName: "f", Description: "Flip the board", Usage: "flip", Handler: flipHandler})
	r.Register(&Command{Name: "board", ShortName: "b", Description: "Redraw the board", Usage: "board", Handler: boardHandler})
	r.Register(&Command{Name: "moves", ShortName: "m", Description: "List legal moves", Usage: "moves [square]", Handler: movesHandler})
	r.Register(&Command{Name: "history", ShortName: "h", Description: "Show the moves played", Usage: "history", Handler: historyHandler})
	r.Register(&Command{Name: "theme", ShortName: "t", Description: "Change the board colours", Usage: "theme [" + strings.Join(ThemeNames(), "|") + "]", Handler: themeHandler})
	r.Register(&Command{Name: "help", ShortName: "?", Description: "Show available commands", Usage: "help", Handler: r.helpHandler})
	r.Register(&Command{Name: "quit", ShortName: "q", Description: "Exit the game", Usage: "quit", Handler: quitHandler})

	return r
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
	r.order = append(r.order, cmd)
}

// Execute runs one input line: a coordinate move such as e2e4 or e7e8n, or a command.
func (r *Registry) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	if m := movePattern.FindStringSubmatch(fields[0]); m != nil && len(fields) == 1 {
		return moveHandler(r.session, model.MoveRequest{From: m[1], To: m[2], Promotion: m[3]})
	}

	cmd, ok := r.commands[strings.ToLower(fields[0])]
	if !ok {
		return fmt.Errorf("unknown command %q, type 'help' for commands", fields[0])
	}
	return cmd.Handler(r.session, fields[1:])
}

func moveHandler(s *Session, req model.MoveRequest) error {
	played, err := s.Game.MakeMove(req)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "%s\n", played.Notation)
	s.Draw()
	return nil
}

func undoHandler(s *Session, _ []string) error {
	if _, err := s.Game.Undo(); err != nil {
		return err
	}
	s.Draw()
	return nil
}

func newHandler(s *Session, _ []string) error {
	s.Game.Reset()
	s.Draw()
	return nil
}

func flipHandler(s *Session, _ []string) error {
	s.Flipped = !s.Flipped
	s.Draw()
	return nil
}

func boardHandler(s *Session, _ []string) error {
	s.Draw()
	return nil
}

func movesHandler(s *Session, args []string) error {
	var moves []model.SimpleMove
	if len(args) > 0 {
		var err error
		if moves, err = s.Game.ValidMovesFrom(args[0]); err != nil {
			return err
		}
	} else {
		moves = s.Game.GetState().LegalMoves
	}
	if len(moves) == 0 {
		fmt.Fprintln(s.Out, "no legal moves")
		return nil
	}

	listed := make([]string, 0, len(moves))
	for _, m := range moves {
		listed = append(listed, m.From+m.To)
	}
	sort.Strings(listed)
	fmt.Fprintf(s.Out, "%d moves: %s\n", len(listed), strings.Join(listed, " "))
	return nil
}

func historyHandler(s *Session, _ []string) error {
	pairs := s.Game.GetState().MoveHistory
	if len(pairs) == 0 {
		fmt.Fprintln(s.Out, "no moves yet")
		return nil
	}
	for _, p := range pairs {
		fmt.Fprintf(s.Out, "%3d. %-8s %s\n", p.Number, p.WhitePly, p.BlackPly)
	}
	return nil
}

func themeHandler(s *Session, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(s.Out, "current theme: %s (available: %s)\n", s.Theme.Name, strings.Join(ThemeNames(), ", "))
		return nil
	}
	theme, ok := LookupTheme(args[0])
	if !ok {
		return fmt.Errorf("unknown theme %q", args[0])
	}
	s.Theme = theme
	s.Draw()
	return nil
}

func (r *Registry) helpHandler(s *Session, _ []string) error {
	fmt.Fprintln(s.Out, "Enter moves in coordinate form, e.g. e2e4 or e7e8n to underpromote.")
	fmt.Fprintln(s.Out, "Commands:")
	for _, cmd := range r.order {
		fmt.Fprintf(s.Out, "  %-20s (%s) %s\n", cmd.Usage, cmd.ShortName, cmd.Description)
	}
	return nil
}

func quitHandler(*Session, []string) error {
	return ErrQuit
}
