package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a position from Forsyth-Edwards notation. The clock
// fields are optional.
//
// Loading normalizes two things so the hash invariants hold: castle rights
// whose king or rook is off its home square are dropped, and an en-passant
// square nobody can capture on is cleared.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fmt.Errorf("%w: want 4 to 6 fields, got %d", ErrInvalidFEN, len(fields))
	}

	p := &Position{EnPassant: NoSquare, FullMoveNumber: 1}

	if err := p.parsePlacement(fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}

	if fields[2] != "-" {
		for _, c := range fields[2] {
			i := strings.IndexRune("KQkq", c)
			if i < 0 {
				return nil, fmt.Errorf("%w: castling %q", ErrInvalidFEN, fields[2])
			}
			p.CastlingRights |= 1 << i
		}
	}
	for i := range castles {
		c := &castles[i]
		color := White
		if c.kingFrom == E8 {
			color = Black
		}
		if !p.Pieces[color][King].IsSet(c.kingFrom) || !p.Pieces[color][Rook].IsSet(c.rookFrom) {
			p.CastlingRights &^= c.right
		}
	}

	ep, err := ParseSquare(fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	wantRank := 5
	if p.SideToMove == Black {
		wantRank = 2
	}
	if ep != NoSquare && ep.Rank() == wantRank && !p.AllOccupied.IsSet(ep) &&
		p.Pieces[p.SideToMove.Other()][Pawn].IsSet(enPassantVictim(ep, p.SideToMove)) &&
		p.canCaptureEnPassant(ep, p.SideToMove) {
		p.EnPassant = ep
	}

	if len(fields) > 4 {
		if p.HalfMoveClock, err = strconv.Atoi(fields[4]); err != nil || p.HalfMoveClock < 0 {
			return nil, fmt.Errorf("%w: half-move clock %q", ErrInvalidFEN, fields[4])
		}
	}
	if len(fields) > 5 {
		if p.FullMoveNumber, err = strconv.Atoi(fields[5]); err != nil || p.FullMoveNumber < 1 {
			return nil, fmt.Errorf("%w: full-move number %q", ErrInvalidFEN, fields[5])
		}
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	p.Hash = p.ComputeHash()
	return p, nil
}

func (p *Position) parsePlacement(s string) error {
	ranks := strings.Split(s, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: want 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for i, row := range ranks {
		rank, file := 7-i, 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pc := PieceFromFEN(c)
			if pc == NoPiece {
				return fmt.Errorf("%w: piece %q", ErrInvalidFEN, c)
			}
			if file > 7 {
				return fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, rank+1)
			}
			sq := NewSquare(file, rank)
			bb := SquareBB(sq)
			p.Pieces[pc.Color()][pc.Type()] |= bb
			p.Occupied[pc.Color()] |= bb
			p.AllOccupied |= bb
			file++
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, rank+1, file)
		}
	}
	return nil
}

// ToFEN renders the position in Forsyth-Edwards notation.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		gap := 0
		for file := 0; file < 8; file++ {
			pc := p.PieceAt(NewSquare(file, rank))
			if pc == NoPiece {
				gap++
				continue
			}
			if gap > 0 {
				sb.WriteByte(byte('0' + gap))
				gap = 0
			}
			sb.WriteString(pc.String())
		}
		if gap > 0 {
			sb.WriteByte(byte('0' + gap))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if p.SideToMove == Black {
		side = "b"
	}
	fmt.Fprintf(&sb, " %s %s %s %d %d", side, p.CastlingRights, p.EnPassant, p.HalfMoveClock, p.FullMoveNumber)
	return sb.String()
}
