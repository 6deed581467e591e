package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/VideosHosting/Chess/internal/cli"
	"github.com/VideosHosting/Chess/internal/service"
)

func runScript(t *testing.T, script string) (string, *CLIHandler, *service.Service) {
	t.Helper()
	svc := service.New(nil)
	t.Cleanup(func() { svc.Close() })

	var out bytes.Buffer
	view := cli.New(cli.NewScannerReader(strings.NewReader(script)), &out)
	h := New(svc, view)
	h.Run()
	return out.String(), h, svc
}

func TestSession(t *testing.T) {
	script := strings.Join([]string{
		"e2e4",
		"new",
		"e2e4",
		"d2d4",
		"moves g8",
		"e7e5",
		"history",
		"undo 2",
		"undo x",
		"board",
		"quit",
		"e2e4",
	}, "\n")

	out, h, svc := runScript(t, script)

	expect := []string{
		"No active game.",
		"Game started.",
		"White: e2e4",
		"not this side's turn",
		"Black knight on g8: f6 h6",
		"Black: e7e5",
		"1. e2e4 | e7e5",
		"Current position: rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w",
		"2 moves undone",
		"Invalid undo count",
		"[w]> ",
	}
	for _, want := range expect {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	g, err := svc.GetGame(h.GameID())
	if err != nil {
		t.Fatal(err)
	}
	// the move after quit is never read
	if g.MoveCount() != 0 {
		t.Errorf("MoveCount() = %d, want 0", g.MoveCount())
	}
}

func TestResumeAndKingCapture(t *testing.T) {
	out, _, _ := runScript(t, "resume 4k3/4R3/8/8/8/8/8/4K3 w\ne7e8\ne1e2\nresume 8/8 w\n")

	for _, want := range []string{
		"Game started.",
		"White: e7e8 captures king",
		"Game Over: white wins",
		"game is over",
		"could not start the game",
		"[white wins]> ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestCheckPrompt(t *testing.T) {
	out, _, _ := runScript(t, "resume 4k3/8/8/8/8/8/8/R3K3 w\na1a8\n")
	if !strings.Contains(out, "White: a1a8 (check)") {
		t.Errorf("move not reported as check:\n%s", out)
	}
	if !strings.Contains(out, "[b+]> ") {
		t.Errorf("prompt does not show check:\n%s", out)
	}
}

func TestColorCommand(t *testing.T) {
	out, _, _ := runScript(t, "color gray\ncolor neon\ncolor\n")
	for _, want := range []string{
		"Color theme set to: gray",
		"invalid theme: neon",
		"Usage: color",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
