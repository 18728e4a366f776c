package chesscore

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/testutil"
)

func TestApplyMove_DoublePush(t *testing.T) {
	t.Parallel()
	pos, err := ParseFEN(testutil.StartFEN)
	testutil.AssertNoError(t, err)

	m, _ := chess.ParseUCI("e2e4")
	next, err := ApplyMove(pos, m)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, SerializeFEN(next), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")

	// The original position is untouched.
	testutil.AssertEqual(t, SerializeFEN(pos), testutil.StartFEN)
}

func TestApplyMove_Illegal(t *testing.T) {
	t.Parallel()
	m, _ := chess.ParseUCI("e2e5")
	_, err := ApplyMove(chess.StartingPosition(), m)
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)

	var ime *errors.IllegalMoveError
	if !errors.As(err, &ime) || ime.From != "e2" || ime.To != "e5" {
		t.Errorf("error = %#v", err)
	}
}

func TestApplyMoveText(t *testing.T) {
	t.Parallel()
	for _, text := range []string{"Nf3", "g1f3"} {
		next, err := ApplyMoveText(chess.StartingPosition(), text)
		testutil.AssertNoError(t, err, text)
		testutil.AssertFEN(t, next, "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1", text)
	}

	_, err := ApplyMoveText(chess.StartingPosition(), "Nf4")
	testutil.AssertErrorIs(t, err, errors.ErrUnknownMove)
}

func TestParseFEN_Error(t *testing.T) {
	t.Parallel()
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)

	var fe *errors.FormatError
	if !errors.As(err, &fe) || fe.Token != "x" {
		t.Errorf("error = %#v, want a FormatError naming the side to move", err)
	}
}

func TestGameStatus_SmotheredMate(t *testing.T) {
	t.Parallel()
	pos := testutil.MustFEN(t, testutil.SmotheredFEN)
	testutil.AssertEqual(t, GameStatus(pos, nil), chess.StatusCheckmate)
	testutil.AssertEqual(t, len(LegalMoves(pos)), 0)
}

func TestGameStatus_Stalemate(t *testing.T) {
	t.Parallel()
	pos := testutil.MustFEN(t, testutil.StalemateFEN)
	testutil.AssertEqual(t, GameStatus(pos, nil), chess.Stalemate)
}

func TestSAN_Disambiguation(t *testing.T) {
	t.Parallel()
	pos := testutil.MustFEN(t, testutil.TwoKnightsFEN)

	for _, want := range []string{"Nbd2", "Nfd2"} {
		m, err := ParseSAN(pos, want)
		testutil.AssertNoError(t, err, want)
		got, err := RenderSAN(pos, m)
		testutil.AssertNoError(t, err, want)
		testutil.AssertEqual(t, got, want)
	}

	_, err := ParseSAN(pos, "Nd2")
	testutil.AssertErrorIs(t, err, errors.ErrAmbiguousMove)
}

func TestParsePGN_RoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		text   string
		tags   int
		result chess.Result
	}{
		{"with tags", "[Event \"Test\"]\n\n1. e4 1-0\n", 1, chess.WhiteWins},
		{"no tags", "1. e4 1-0\n", 0, chess.WhiteWins},
		{"fool's mate", testutil.FoolsMatePGN, 1, chess.BlackWins},
		{"irregular spacing", "[Event \"x\"]\r\n\r\n1.e4   e5 {a  comment}\r\n2.Nf3 $1 *\r\n", 1, chess.NoResult},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			games, err := ParsePGN(tt.text)
			testutil.AssertNoError(t, err)
			if len(games) != 1 {
				t.Fatalf("got %d games, want 1", len(games))
			}
			testutil.AssertEqual(t, games[0].Tags().Len(), tt.tags, "tag count")
			testutil.AssertEqual(t, games[0].Result(), tt.result)
			testutil.AssertEqual(t, SerializePGN(games[0]), tt.text)
		})
	}
}

func TestParsePGN_Scenario(t *testing.T) {
	t.Parallel()
	games, err := ParsePGN("[Event \"Test\"]\n\n1. e4 1-0\n")
	testutil.AssertNoError(t, err)
	g := games[0]
	testutil.AssertEqual(t, g.Event(), "Test")
	testutil.AssertEqual(t, g.SANs(), []string{"e4"})
}

func TestParsePGN_Empty(t *testing.T) {
	t.Parallel()
	games, err := ParsePGN("")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(games), 0)
	testutil.AssertEqual(t, SerializePGNGames(games), "")

	_, err = ParsePGN("\n\n")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidPGN)
}

func TestParsePGN_RejectsWholeDocument(t *testing.T) {
	t.Parallel()
	games, err := ParsePGN("1. e4 *\n\n1. e4 e4 *\n")
	testutil.AssertErrorIs(t, err, errors.ErrUnknownMove)
	if games != nil {
		t.Errorf("got %d games, want none", len(games))
	}

	var ge *errors.GameError
	if !errors.As(err, &ge) || ge.GameNum != 2 || ge.PlyNum != 2 {
		t.Errorf("error = %v, want game 2 ply 2", err)
	}
}

func TestSerializePGNGames(t *testing.T) {
	t.Parallel()
	text := "[Event \"A\"]\n\n1. e4 e5 1-0\n\n[Event \"B\"]\n\n1. d4 0-1\n"
	games, err := ParsePGN(text)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, SerializePGNGames(games), text)
}

func TestSerializePGNGames_SeparateDocuments(t *testing.T) {
	t.Parallel()
	var games []*Game
	for _, text := range []string{"[Event \"A\"]\n\n1. e4 1-0", "[Event \"B\"]\n\n1. d4 0-1"} {
		parsed, err := ParsePGN(text)
		testutil.AssertNoError(t, err)
		games = append(games, parsed...)
	}

	joined := SerializePGNGames(games)
	testutil.AssertEqual(t, joined, "[Event \"A\"]\n\n1. e4 1-0\n\n[Event \"B\"]\n\n1. d4 0-1")
	again, err := ParsePGN(joined)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(again), 2)
}

func TestParsePGNConcurrent(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		sb.WriteString("[Event \"Club\"]\n\n1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 1/2-1/2\n\n")
		sb.WriteString("1. d4 {solid} d5 2. c4 *\n\n")
	}
	text := sb.String()

	want, err := ParsePGN(text)
	testutil.AssertNoError(t, err)
	got, err := ParsePGNConcurrent(context.Background(), text, 4)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, len(got), len(want))
	testutil.AssertEqual(t, SerializePGNGames(got), text)

	_, err = ParsePGNConcurrent(context.Background(), "1. e4 *\n\n1. Ke2 *\n", 2)
	testutil.AssertErrorIs(t, err, errors.ErrUnknownMove)
}

func TestPGNDecoder(t *testing.T) {
	t.Parallel()
	d := NewPGNDecoder(strings.NewReader("1. e4 *\n\n1. d4 *\n\n1. c4 1-0\n\n1. e4 (1. d4) *\n"))

	var sans []string
	for {
		g, err := d.Decode()
		if err == io.EOF {
			t.Fatal("decoder reached EOF past a bad game")
		}
		if err != nil {
			testutil.AssertErrorIs(t, err, errors.ErrInvalidPGN)
			break
		}
		sans = append(sans, g.SANs()...)
	}
	testutil.AssertEqual(t, sans, []string{"e4", "d4", "c4"})

	d = NewPGNDecoder(strings.NewReader(""))
	if _, err := d.Decode(); err != io.EOF {
		t.Errorf("Decode on empty input = %v, want io.EOF", err)
	}
}

func TestNewGame(t *testing.T) {
	t.Parallel()
	g, err := NewGame("")
	testutil.AssertNoError(t, err)
	for _, text := range []string{"e4", "e7e5", "Qh5", "Nc6", "Bc4", "Nf6", "Qxf7"} {
		testutil.AssertNoError(t, Play(g, text), text)
	}
	testutil.AssertEqual(t, SerializePGN(g), "1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7# *\n")

	g, err = NewGame(testutil.TwoKnightsFEN)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, g.GetTag("FEN"), testutil.TwoKnightsFEN)

	_, err = NewGame("8/8/8/8 w - - 0 1")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
}

func TestGameJSON(t *testing.T) {
	t.Parallel()
	games, err := ParsePGN(testutil.FoolsMatePGN)
	testutil.AssertNoError(t, err)

	data, err := GameJSON(games[0])
	testutil.AssertNoError(t, err)
	var view struct {
		Status string `json:"status"`
		Moves  []struct {
			SAN string `json:"san"`
			UCI string `json:"uci"`
		} `json:"moves"`
	}
	testutil.AssertNoError(t, json.Unmarshal(data, &view))
	testutil.AssertEqual(t, view.Status, chess.StatusCheckmate.String())
	testutil.AssertEqual(t, len(view.Moves), 4)
	testutil.AssertEqual(t, view.Moves[3].SAN, "Qh4#")
	testutil.AssertEqual(t, view.Moves[3].UCI, "d8h4")
}

func TestDiagram(t *testing.T) {
	t.Parallel()
	pos, err := ApplyMoveText(chess.StartingPosition(), "Nf3")
	testutil.AssertNoError(t, err)
	lines := strings.Split(Diagram(pos, false), "\n")
	testutil.AssertEqual(t, lines[5], "3 . . . . . N . .")
	testutil.AssertEqual(t, lines[0], "8 r n b q k b n r")
	if !strings.Contains(Diagram(pos, true), "\x1b[") {
		t.Error("coloured diagram has no escape sequences")
	}
}

func TestEncoders(t *testing.T) {
	t.Parallel()
	games, err := ParsePGN("[Event \"A\"]\n\n1. e4 1-0")
	testutil.AssertNoError(t, err)
	built, err := NewGame("")
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, Play(built, "d4"))
	games = append(games, built)

	var pgn bytes.Buffer
	enc := NewPGNEncoder(&pgn)
	for _, g := range games {
		testutil.AssertNoError(t, enc.Encode(g))
	}
	testutil.AssertNoError(t, enc.Close())
	testutil.AssertEqual(t, pgn.String(), "[Event \"A\"]\n\n1. e4 1-0\n\n1. d4 *\n")
	testutil.AssertEqual(t, pgn.String(), SerializePGNGames(games))

	var js bytes.Buffer
	enc = NewJSONEncoder(&js)
	for _, g := range games {
		testutil.AssertNoError(t, enc.Encode(g))
	}
	testutil.AssertEqual(t, js.Len(), 0)
	testutil.AssertNoError(t, enc.Flush())
	var doc struct {
		Games []struct {
			Result string `json:"result"`
		} `json:"games"`
	}
	testutil.AssertNoError(t, json.Unmarshal(js.Bytes(), &doc))
	testutil.AssertEqual(t, len(doc.Games), 2)
	testutil.AssertEqual(t, doc.Games[0].Result, "1-0")
	testutil.AssertNoError(t, enc.Close())
}

func TestPerft(t *testing.T) {
	t.Parallel()
	pos, err := ParseFEN(testutil.KiwipeteFEN)
	testutil.AssertNoError(t, err)
	nodes, err := Perft(pos, 2)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, nodes, uint64(2039))
}

func TestCrossCheckBackend(t *testing.T) {
	t.Parallel()
	pos, err := ParseFEN(testutil.Position3FEN)
	testutil.AssertNoError(t, err)
	for _, name := range []string{"notnil", "dragontooth"} {
		diffs, err := CrossCheckBackend(name, pos, 3)
		testutil.AssertNoError(t, err, name)
		testutil.AssertEqual(t, len(diffs), 0, name)
	}

	_, err = CrossCheckBackend("stockfish", pos, 1)
	testutil.AssertErrorIs(t, err, errors.ErrUnknownBackend)
}

// TestUseBackend changes process-wide state, so it does not run in
// parallel.
func TestUseBackend(t *testing.T) {
	defer func() {
		testutil.AssertNoError(t, UseBackend("engine"))
	}()

	for _, name := range []string{"notnil", "dragontooth", "engine"} {
		testutil.AssertNoError(t, UseBackend(name))
		testutil.AssertEqual(t, CurrentBackend().Name(), name)

		pos, err := ParseFEN(testutil.KiwipeteFEN)
		testutil.AssertNoError(t, err, name)
		moves := LegalMoves(pos)
		testutil.AssertEqual(t, len(moves), 48, name)
		testutil.AssertEqual(t, moves[0].UCI(), "a1b1", name)
		testutil.AssertEqual(t, moves[47].UCI(), "e5f7", name)

		next, err := ApplyMoveText(pos, "O-O-O")
		testutil.AssertNoError(t, err, name)
		testutil.AssertEqual(t, SerializeFEN(next), "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/2KR3R b kq - 1 1", name)
	}

	err := UseBackend("stockfish")
	testutil.AssertErrorIs(t, err, errors.ErrUnknownBackend)
	testutil.AssertEqual(t, CurrentBackend().Name(), "engine")
}

func TestConfigure_Invalid(t *testing.T) {
	cfg := NewConfigBuilder().WithMaxLineLength(5).Build()
	testutil.AssertErrorIs(t, Configure(cfg), errors.ErrInvalidConfig)
}
