package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/VideosHosting/Chess/internal/core"
	"github.com/VideosHosting/Chess/internal/game"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdResume
	CmdMove
	CmdMoves
	CmdUndo
	CmdColor
	CmdHistory
	CmdBoard
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	markBg  string
	white   string
	black   string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		markBg:  "\033[48;5;179m", // Amber
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m", // Light green
		darkBg:  "\033[48;5;22m",  // Dark green
		markBg:  "\033[48;5;185m", // Yellow
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m", // Light gray
		darkBg:  "\033[48;5;240m", // Dark gray
		markBg:  "\033[48;5;110m", // Steel blue
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
}

// LineReader yields one input line per call and io.EOF at the end.
// *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
}

// prompter is implemented by readers that draw their own prompt
type prompter interface {
	SetPrompt(prompt string)
}

// scannerReader adapts a plain io.Reader for piped input
type scannerReader struct {
	scanner *bufio.Scanner
}

// NewScannerReader reads lines from r without line editing
func NewScannerReader(r io.Reader) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(r)}
}

func (s *scannerReader) Readline() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

type CLI struct {
	input  LineReader
	output io.Writer
	theme  ColorTheme
}

func New(input LineReader, output io.Writer) *CLI {
	return &CLI{
		input:  input,
		output: output,
		theme:  ThemeOff,
	}
}

// GetCommand prompts and reads one command. End of input reads as quit;
// an interrupted line reads as an empty command.
func (c *CLI) GetCommand(prompt string) (*Command, error) {
	if p, ok := c.input.(prompter); ok {
		p.SetPrompt(prompt)
	} else {
		c.ShowPrompt(prompt)
	}

	line, err := c.input.Readline()
	if errors.Is(err, io.EOF) {
		return &Command{Type: CmdQuit}, nil
	}
	if err != nil {
		return &Command{Type: CmdNone}, nil
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return &Command{Type: CmdNone}, nil
	}

	return ParseCommand(input), nil
}

func ParseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "new":
		return &Command{Type: CmdNew, Args: args}
	case "resume":
		return &Command{Type: CmdResume, Args: args, Raw: input}
	case "moves", "m":
		return &Command{Type: CmdMoves, Args: args}
	case "undo":
		return &Command{Type: CmdUndo, Args: args}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "history":
		return &Command{Type: CmdHistory}
	case "board", "b":
		return &Command{Type: CmdBoard}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		// Assume it's a move
		return &Command{Type: CmdMove, Args: []string{cmd}, Raw: input}
	}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) Theme() ColorTheme {
	return c.theme
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v\n", err))
}

func (c *CLI) ShowPrompt(prompt string) {
	fmt.Fprint(c.output, prompt)
}

// DisplayBoard draws the game's board, highlighting the destinations in marked
func (c *CLI) DisplayBoard(g *game.Game, marked core.MoveSet) {
	if c.theme == ThemeOff {
		c.ShowMessage("\n" + g.Render(marked) + "\n")
		return
	}

	theme := themes[c.theme]
	targets := make(map[string]bool, len(marked))
	for _, sq := range marked.Targets() {
		targets[sq] = true
	}

	var sb strings.Builder
	sb.WriteString("\n  a b c d e f g h\n")

	for r := 0; r < core.BoardSize; r++ {
		sb.WriteString(fmt.Sprintf("%d ", core.BoardSize-r))
		for f := 0; f < core.BoardSize; f++ {
			square := core.SquareName(r, f)
			piece, _ := g.PieceAt(square)

			bg := theme.darkBg
			if (r+f)%2 == 0 {
				bg = theme.lightBg
			}
			if targets[square] {
				bg = theme.markBg
			}

			if piece.Empty() {
				cell := "  "
				if targets[square] {
					cell = "* "
				}
				sb.WriteString(fmt.Sprintf("%s%s%s", bg, cell, theme.reset))
				continue
			}

			color := theme.black
			if piece.Color == core.ColorWhite {
				color = theme.white
			}
			sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, color, piece.Letter(), theme.reset))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", core.BoardSize-r))
	}
	sb.WriteString("  a b c d e f g h\n")

	c.ShowMessage(sb.String())
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  new               - Start a new game from the standard position
  resume <position> - Start from a position, e.g. resume 4k3/8/8/8/8/8/8/4K2R w
  <move>            - Make a move (e.g., e2e4, g1f3)
  moves <square>    - Show the moves of the piece on a square
  undo [count]      - Undo last move(s), default 1
  color <theme>     - Set board color theme (off|brown|green|gray)
  history           - Show game move history and positions
  board             - Redraw the board
  quit/exit         - Exit the program
  help/?            - Show this help message

Moves are not checked for leaving your own king attacked; capturing a
king ends the game.`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Chess!")
	c.ShowMessage("Commands: new, resume <position>, <move>, moves <square>, undo, history, help/?, quit")
	c.ShowMessage("Example: 'resume 4k3/8/8/8/8/8/8/4K2R w' to start from a custom position.")
	c.ShowMessage("")
}

func (c *CLI) ShowGameHistory(g *game.Game) {
	c.ShowMessage(fmt.Sprintf("Starting position: %s\n", g.InitialPosition()))

	moves := g.Moves()
	for i := 0; i < len(moves); i += 2 {
		moveNum := i/2 + 1
		white := moves[i]
		if i+1 < len(moves) {
			c.ShowMessage(fmt.Sprintf("%d. %s | %s", moveNum, white, moves[i+1]))
		} else {
			c.ShowMessage(fmt.Sprintf("%d. %s | ...", moveNum, white))
		}
	}
	c.ShowMessage(fmt.Sprintf("\nCurrent position: %s", g.Position()))
	c.ShowMessage(fmt.Sprintf("Game state: %s\n", g.State()))
}

func (c *CLI) ShowMove(result *game.MoveResult) {
	msg := fmt.Sprintf("%s: %s", result.PlayerColor.Name(), result.Move)
	if !result.Captured.Empty() {
		msg += fmt.Sprintf(" captures %s", result.Captured.Type)
	}
	if result.Check {
		msg += " (check)"
	}
	c.ShowMessage(msg)
}

// ShowLegalMoves lists the destinations of the piece on square
func (c *CLI) ShowLegalMoves(piece core.Piece, moves core.MoveSet) {
	if piece.Empty() {
		c.ShowMessage(fmt.Sprintf("No piece on %s", piece.Square()))
		return
	}
	if len(moves) == 0 {
		c.ShowMessage(fmt.Sprintf("%s %s on %s has no moves", piece.Color.Name(), piece.Type, piece.Square()))
		return
	}
	c.ShowMessage(fmt.Sprintf("%s %s on %s: %s", piece.Color.Name(), piece.Type, piece.Square(),
		strings.Join(moves.Targets(), " ")))
}

func (c *CLI) ShowGameOver(state core.State) {
	c.ShowMessage(fmt.Sprintf("\nGame Over: %s\n", state))
	c.ShowMessage("Start a new game with 'new' or 'resume', or take the move back with 'undo'.")
}
