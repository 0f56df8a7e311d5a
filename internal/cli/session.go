package cli

import (
	"io"

	"github.com/benbeisheim/simplechess/internal/model"
)

// Session is one hot-seat game at the terminal.
type Session struct {
	Game    *model.Game
	Out     io.Writer
	Flipped bool
	Theme   Theme
}

func NewSession(out io.Writer, theme Theme) *Session {
	return &Session{
		Game:  model.NewGame("local"),
		Out:   out,
		Theme: theme,
	}
}

// lastMoveSquares marks the origin and destination of the previous ply.
func lastMoveSquares(snap model.Snapshot) map[model.Square]bool {
	marked := make(map[model.Square]bool, 2)
	if snap.LastMove == nil {
		return marked
	}
	for _, s := range []string{snap.LastMove.From, snap.LastMove.To} {
		if sq, err := model.ParseSquare(s); err == nil {
			marked[sq] = true
		}
	}
	return marked
}

// Draw renders the current position followed by its status line, if any.
func (s *Session) Draw() {
	snap := s.Game.GetState()
	RenderBoard(s.Out, snap.Board, s.Flipped, s.Theme, lastMoveSquares(snap))
	s.status(snap)
}

func (s *Session) status(snap model.Snapshot) {
	if snap.Message == "" {
		return
	}
	msg := snap.Message
	if !s.Theme.Plain() {
		color := Yellow
		if snap.IsCheckmate || snap.IsStalemate {
			color = Bold + Green
		}
		msg = color + msg + Reset
	}
	io.WriteString(s.Out, msg+"\n")
}

// Prompt is the readline prompt for the side to move.
func (s *Session) Prompt() string {
	return Prompt(s.Game.GetState().ToMove, s.Theme)
}
