package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/benbeisheim/simplechess/internal/model"
)

// Terminal color codes
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
)

// Theme colours the board. A theme with empty fields renders plain text.
type Theme struct {
	Name      string
	Light     string // background of light squares
	Dark      string // background of dark squares
	Highlight string // background of the last move's squares
	WhitePc   string
	BlackPc   string
}

func (t Theme) Plain() bool {
	return t.Light == ""
}

var themes = map[string]Theme{
	"plain": {Name: "plain"},
	"classic": {
		Name:      "classic",
		Light:     "\033[48;5;180m",
		Dark:      "\033[48;5;137m",
		Highlight: "\033[48;5;186m",
		WhitePc:   "\033[1;97m",
		BlackPc:   "\033[1;30m",
	},
	"green": {
		Name:      "green",
		Light:     "\033[48;5;187m",
		Dark:      "\033[48;5;65m",
		Highlight: "\033[48;5;185m",
		WhitePc:   "\033[1;97m",
		BlackPc:   "\033[1;30m",
	},
	"blue": {
		Name:      "blue",
		Light:     "\033[48;5;153m",
		Dark:      "\033[48;5;67m",
		Highlight: "\033[48;5;222m",
		WhitePc:   "\033[1;97m",
		BlackPc:   "\033[1;30m",
	},
}

// LookupTheme finds a theme by name.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(name)]
	return t, ok
}

// ThemeNames lists the available themes alphabetically.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// glyph is the ASCII letter of a piece: upper case for white, lower case for black.
func glyph(p model.Piece) byte {
	if p.IsEmpty() {
		return '.'
	}
	letter := byte(p.Type)
	if p.Type == model.Pawn {
		letter = 'P'
	}
	if p.Color == model.Black {
		letter += 'a' - 'A'
	}
	return letter
}

// RenderBoard draws the board from white's side, or black's when flipped.
// Squares in marked are drawn with the theme's highlight.
func RenderBoard(w io.Writer, board [8][8]model.Piece, flipped bool, theme Theme, marked map[model.Square]bool) {
	files := "abcdefgh"
	if flipped {
		files = "hgfedcba"
	}
	header := "   " + strings.Join(strings.Split(files, ""), "  ")
	if !theme.Plain() {
		header = Cyan + header + Reset
	}

	fmt.Fprintln(w, header)
	for i := 0; i < 8; i++ {
		row := i
		if flipped {
			row = 7 - i
		}
		rank := fmt.Sprintf("%d ", 8-row)
		if !theme.Plain() {
			rank = Cyan + rank + Reset
		}
		var line strings.Builder
		line.WriteString(rank)
		for j := 0; j < 8; j++ {
			col := j
			if flipped {
				col = 7 - j
			}
			sq := model.Square{Row: row, Col: col}
			line.WriteString(renderSquare(board[row][col], sq, theme, marked[sq]))
		}
		line.WriteString(" " + rank)
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
	fmt.Fprintln(w, header)
}

func renderSquare(p model.Piece, sq model.Square, theme Theme, marked bool) string {
	cell := fmt.Sprintf(" %c ", glyph(p))
	if theme.Plain() {
		if marked && p.IsEmpty() {
			cell = " * "
		}
		return cell
	}

	bg := theme.Dark
	if (sq.Row+sq.Col)%2 == 0 {
		bg = theme.Light
	}
	if marked {
		bg = theme.Highlight
	}
	if p.IsEmpty() {
		return bg + "   " + Reset
	}
	fg := theme.WhitePc
	if p.Color == model.Black {
		fg = theme.BlackPc
	}
	return bg + fg + cell + Reset
}

// ColorForTurn returns colored turn indicator
func ColorForTurn(c model.Color, theme Theme) string {
	name := "White"
	color := Blue
	if c == model.Black {
		name = "Black"
		color = Red
	}
	if theme.Plain() {
		return name
	}
	return color + name + Reset
}

// Prompt returns the prompt string for the side to move.
func Prompt(c model.Color, theme Theme) string {
	if theme.Plain() {
		return fmt.Sprintf("chess [%s] > ", ColorForTurn(c, theme))
	}
	return Yellow + "chess [" + ColorForTurn(c, theme) + Yellow + "] > " + Reset
}
