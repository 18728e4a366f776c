package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/engine"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Tags       map[string]string `json:"tags"`
	TagOrder   []string          `json:"tagOrder,omitempty"`
	Comments   []string          `json:"comments,omitempty"`
	Moves      []JSONMove        `json:"moves,omitempty"`
	Result     string            `json:"result"`
	Status     string            `json:"status"`
	PlyCount   int               `json:"plyCount"`
	InitialFEN string            `json:"initialFEN,omitempty"`
	FinalFEN   string            `json:"finalFEN"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int      `json:"moveNumber"`
	Color      string   `json:"color"` // "white" or "black"
	SAN        string   `json:"san"`
	UCI        string   `json:"uci"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	Piece      string   `json:"piece"`
	Captured   string   `json:"captured,omitempty"`
	Promotion  string   `json:"promotion,omitempty"`
	NAGs       []string `json:"nags,omitempty"`
	Comments   []string `json:"comments,omitempty"`
	FEN        string   `json:"fen"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// WriteGamesJSON writes games as an indented JSON object holding an array.
func WriteGamesJSON(w io.Writer, games []*chess.Game, cfg *config.Config) error {
	out := &JSONOutput{Games: make([]*JSONGame, len(games))}
	for i, game := range games {
		out.Games[i] = GameToJSON(game, cfg)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// GameToJSON converts a chess game to JSON format. Every move carries its
// SAN, UCI and the FEN of the position it produces.
func GameToJSON(game *chess.Game, cfg *config.Config) *JSONGame {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	jg := &JSONGame{
		Tags:     copyTags(game.Tags()),
		TagOrder: game.Tags().Keys(),
		Result:   string(game.Result()),
		Status:   engine.GameStatus(game).String(),
		PlyCount: game.PlyCount(),
		FinalFEN: engine.SerializeFEN(game.Position()),
	}
	if start := game.Start(); start != chess.StartingPosition() {
		jg.InitialFEN = engine.SerializeFEN(start)
	}
	if cfg.Output.KeepComments {
		jg.Comments = game.PrefixComments()
	}

	moves := game.Moves()
	jg.Moves = make([]JSONMove, len(moves))
	for i, m := range moves {
		jg.Moves[i] = convertMove(game, i+1, m, cfg.Output)
	}

	return jg
}

// copyTags copies game tags and ensures seven tag roster has values.
func copyTags(tags *chess.TagMap) map[string]string {
	result := make(map[string]string, tags.Len()+len(chess.SevenTagRoster))
	for _, k := range tags.Keys() {
		result[k] = tags.Get(k)
	}
	for _, tag := range chess.SevenTagRoster {
		if _, ok := result[tag]; !ok {
			result[tag] = "?"
		}
	}
	return result
}

// convertMove describes the move at ply.
func convertMove(game *chess.Game, ply int, m chess.Move, cfg *config.OutputConfig) JSONMove {
	before := game.PositionAt(ply - 1)
	after := game.PositionAt(ply)

	jm := JSONMove{
		MoveNumber: int(before.MoveNumber),
		Color:      colorName(before.ToMove),
		SAN:        game.SAN(ply),
		UCI:        m.UCI(),
		From:       m.From.String(),
		To:         m.To.String(),
		Piece:      pieceTypeName(chess.ExtractPiece(before.Get(m.From))),
		Captured:   capturedPiece(before, m),
		FEN:        engine.SerializeFEN(after),
	}
	if m.IsPromotion() {
		jm.Promotion = pieceTypeName(m.Promotion)
	}

	ann := game.Annotation(ply)
	if cfg.KeepNAGs {
		jm.NAGs = ann.NAGs
	}
	if cfg.KeepComments {
		jm.Comments = ann.Comments
	}
	return jm
}

// colorName returns "white" or "black".
func colorName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

// capturedPiece returns the name of the captured piece, if any.
func capturedPiece(pos chess.Position, m chess.Move) string {
	if m.IsEnPassant() {
		return "pawn"
	}
	if captured := pos.Get(m.To); captured != chess.Empty {
		return pieceTypeName(chess.ExtractPiece(captured))
	}
	return ""
}

// pieceTypeName returns the piece type as a string.
func pieceTypeName(p chess.Piece) string {
	switch p {
	case chess.Pawn:
		return "pawn"
	case chess.Knight:
		return "knight"
	case chess.Bishop:
		return "bishop"
	case chess.Rook:
		return "rook"
	case chess.Queen:
		return "queen"
	case chess.King:
		return "king"
	default:
		return ""
	}
}
