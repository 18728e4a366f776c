package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// castleRule describes one of the four castling moves.
type castleRule struct {
	right  chess.CastlingRights
	colour chess.Colour
	flag   chess.MoveFlag
	king   chess.Square
	kingTo chess.Square
	rook   chess.Square
	rookTo chess.Square

	// Squares that must be empty.
	between []chess.Square

	// Squares the king crosses or lands on, which must not be attacked.
	passes []chess.Square
}

var castleRules = [...]castleRule{
	{
		right: chess.WhiteKingside, colour: chess.White, flag: chess.FlagKingsideCastle,
		king: chess.E1, kingTo: chess.G1, rook: chess.H1, rookTo: chess.F1,
		between: []chess.Square{chess.F1, chess.G1},
		passes:  []chess.Square{chess.F1, chess.G1},
	},
	{
		right: chess.WhiteQueenside, colour: chess.White, flag: chess.FlagQueensideCastle,
		king: chess.E1, kingTo: chess.C1, rook: chess.A1, rookTo: chess.D1,
		between: []chess.Square{chess.B1, chess.C1, chess.D1},
		passes:  []chess.Square{chess.D1, chess.C1},
	},
	{
		right: chess.BlackKingside, colour: chess.Black, flag: chess.FlagKingsideCastle,
		king: chess.E8, kingTo: chess.G8, rook: chess.H8, rookTo: chess.F8,
		between: []chess.Square{chess.F8, chess.G8},
		passes:  []chess.Square{chess.F8, chess.G8},
	},
	{
		right: chess.BlackQueenside, colour: chess.Black, flag: chess.FlagQueensideCastle,
		king: chess.E8, kingTo: chess.C8, rook: chess.A8, rookTo: chess.D8,
		between: []chess.Square{chess.B8, chess.C8, chess.D8},
		passes:  []chess.Square{chess.D8, chess.C8},
	},
}

// castlingRightsLost maps a square to the rights that disappear when a
// move starts or ends there.
var castlingRightsLost = map[chess.Square]chess.CastlingRights{
	chess.E1: chess.WhiteKingside | chess.WhiteQueenside,
	chess.H1: chess.WhiteKingside,
	chess.A1: chess.WhiteQueenside,
	chess.E8: chess.BlackKingside | chess.BlackQueenside,
	chess.H8: chess.BlackKingside,
	chess.A8: chess.BlackQueenside,
}

// genCastlingMoves appends the castling moves available to the side to
// move.
func genCastlingMoves(moves []chess.Move, pos chess.Position) []chess.Move {
	colour := pos.ToMove
	for i := range castleRules {
		rule := &castleRules[i]
		if rule.colour == colour && canCastle(pos, rule) {
			moves = append(moves, chess.Move{From: rule.king, To: rule.kingTo, Flags: rule.flag})
		}
	}
	return moves
}

// canCastle checks every castling condition except the final legality
// filter, which is applied to all moves alike.
func canCastle(pos chess.Position, rule *castleRule) bool {
	if !pos.Castling.Has(rule.right) {
		return false
	}
	if pos.Get(rule.king) != chess.MakeColouredPiece(rule.colour, chess.King) ||
		pos.Get(rule.rook) != chess.MakeColouredPiece(rule.colour, chess.Rook) {
		return false
	}
	for _, sq := range rule.between {
		if !pos.IsEmpty(sq) {
			return false
		}
	}

	enemy := rule.colour.Opposite()
	if IsSquareAttacked(pos, rule.king, enemy) {
		return false
	}
	for _, sq := range rule.passes {
		if IsSquareAttacked(pos, sq, enemy) {
			return false
		}
	}
	return true
}

// castleRuleFor returns the rule matching a castling move.
func castleRuleFor(m chess.Move) *castleRule {
	for i := range castleRules {
		rule := &castleRules[i]
		if rule.king == m.From && rule.kingTo == m.To {
			return rule
		}
	}
	return nil
}

// updateCastlingRights removes castling rights when a king or rook leaves
// its home square, or a rook is captured on it.
func updateCastlingRights(rights chess.CastlingRights, from, to chess.Square) chess.CastlingRights {
	return rights &^ (castlingRightsLost[from] | castlingRightsLost[to])
}
