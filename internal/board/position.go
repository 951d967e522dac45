package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIllegalMove is returned when a move token matches no legal move.
	ErrIllegalMove = errors.New("illegal move")
	// ErrInvalidFEN wraps every FEN parse or validation failure.
	ErrInvalidFEN = errors.New("invalid FEN")
)

// CastlingRights holds the four castle flags. Bit i pairs with
// zobristCastling[i].
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, c := range "KQkq" {
		if cr&(1<<i) != 0 {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// castle describes one castling move: where king and rook go, which squares
// must be empty and which the king crosses (start and end included).
type castle struct {
	right            CastlingRights
	kingFrom, kingTo Square
	rookFrom, rookTo Square
	empty            Bitboard
	crossed          Bitboard
}

var castles = [4]castle{
	{WhiteKingSide, E1, G1, H1, F1, SquareBB(F1) | SquareBB(G1), SquareBB(E1) | SquareBB(F1) | SquareBB(G1)},
	{WhiteQueenSide, E1, C1, A1, D1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), SquareBB(E1) | SquareBB(D1) | SquareBB(C1)},
	{BlackKingSide, E8, G8, H8, F8, SquareBB(F8) | SquareBB(G8), SquareBB(E8) | SquareBB(F8) | SquareBB(G8)},
	{BlackQueenSide, E8, C8, A8, D8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), SquareBB(E8) | SquareBB(D8) | SquareBB(C8)},
}

// castleFor returns the castle whose king lands on kingTo.
func castleFor(kingTo Square) *castle {
	for i := range castles {
		if castles[i].kingTo == kingTo {
			return &castles[i]
		}
	}
	return nil
}

// revokes[sq] lists the rights lost when a piece leaves or is captured on sq.
var revokes [64]CastlingRights

func init() {
	revokes[E1] = WhiteKingSide | WhiteQueenSide
	revokes[H1] = WhiteKingSide
	revokes[A1] = WhiteQueenSide
	revokes[E8] = BlackKingSide | BlackQueenSide
	revokes[H8] = BlackKingSide
	revokes[A8] = BlackQueenSide
}

// Position is the mutable board. It has a single owner; search and move
// generation borrow it and return it unchanged through MakeMove/UndoMove.
type Position struct {
	Pieces      [2][6]Bitboard
	Occupied    [2]Bitboard
	AllOccupied Bitboard

	SideToMove     Color
	CastlingRights CastlingRights
	// EnPassant is set only while a side-to-move pawn can capture there.
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int

	Hash uint64
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

func (p *Position) Copy() *Position {
	c := *p
	return &c
}

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if p.AllOccupied&bb == 0 {
		return NoPiece
	}
	c := White
	if p.Occupied[Black]&bb != 0 {
		c = Black
	}
	for _, pt := range PieceTypes {
		if p.Pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// KingSquare returns c's king square, or NoSquare on a kingless board.
func (p *Position) KingSquare(c Color) Square {
	return p.Pieces[c][King].LSB()
}

// The setters below are the only code that writes board state. Each one
// toggles the matching Zobrist key as it changes the field.

func (p *Position) putPiece(pc Piece, sq Square) {
	if debugChecks && p.AllOccupied.IsSet(sq) {
		p.fatal("put on occupied square", sq, pc)
	}
	bb := SquareBB(sq)
	c := pc.Color()
	p.Pieces[c][pc.Type()] |= bb
	p.Occupied[c] |= bb
	p.AllOccupied |= bb
	p.Hash ^= zobristPiece[pc][sq]
}

func (p *Position) takePiece(pc Piece, sq Square) {
	if debugChecks && (pc >= NoPiece || !p.Pieces[pc.Color()][pc.Type()].IsSet(sq)) {
		p.fatal("take of absent piece", sq, pc)
	}
	bb := SquareBB(sq)
	c := pc.Color()
	p.Pieces[c][pc.Type()] &^= bb
	p.Occupied[c] &^= bb
	p.AllOccupied &^= bb
	p.Hash ^= zobristPiece[pc][sq]
}

func (p *Position) setEnPassant(sq Square) {
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	p.EnPassant = sq
	if sq != NoSquare {
		p.Hash ^= zobristEnPassant[sq.File()]
	}
}

func (p *Position) setCastlingRights(cr CastlingRights) {
	p.Hash ^= castlingKey(p.CastlingRights ^ cr)
	p.CastlingRights = cr
}

func (p *Position) flipSide() {
	p.SideToMove = p.SideToMove.Other()
	p.Hash ^= zobristWhiteToMove
}

// canCaptureEnPassant reports whether a capturer pawn attacks target, the
// square a double push skipped over.
func (p *Position) canCaptureEnPassant(target Square, capturer Color) bool {
	return pawnAttacks[capturer.Other()][target]&p.Pieces[capturer][Pawn] != 0
}

// checkInvariants returns the first structural defect found: overlapping
// piece sets, stale occupancy caches or a king count other than one.
func (p *Position) checkInvariants() error {
	var union Bitboard
	count := 0
	for c := White; c <= Black; c++ {
		var side Bitboard
		for _, pt := range PieceTypes {
			side |= p.Pieces[c][pt]
			count += p.Pieces[c][pt].PopCount()
		}
		if side != p.Occupied[c] {
			return fmt.Errorf("%s occupancy out of sync", c)
		}
		union |= side
		if n := p.Pieces[c][King].PopCount(); n != 1 {
			return fmt.Errorf("%s has %d kings", c, n)
		}
	}
	if union.PopCount() != count {
		return errors.New("piece sets overlap")
	}
	if union != p.AllOccupied {
		return errors.New("board occupancy out of sync")
	}
	return nil
}

// Validate checks that the position is one the engine can play from.
func (p *Position) Validate() error {
	if err := p.checkInvariants(); err != nil {
		return err
	}
	if (p.Pieces[White][Pawn]|p.Pieces[Black][Pawn])&(Rank1|Rank8) != 0 {
		return errors.New("pawn on first or last rank")
	}
	if p.kingAttacked(p.SideToMove.Other()) {
		return fmt.Errorf("%s is in check but not on move", p.SideToMove.Other())
	}
	return nil
}

// String draws the board with rank 8 on top, followed by FEN and hash.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(p.PieceAt(NewSquare(file, rank)).String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Fen: %s\n", p.ToFEN())
	fmt.Fprintf(&sb, "Key: %016X\n", p.Hash)
	return sb.String()
}
