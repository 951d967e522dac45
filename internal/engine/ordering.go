package engine

import "github.com/hailam/chesscore/internal/board"

const (
	pvMoveScore   = 1 << 20
	captureBase   = 10000
	promotionBase = 9000
)

// MVV-LVA: most valuable victim first, cheapest attacker breaking ties.
var mvvLva = [6][6]int{
	//       P    N    B    R    Q    K  (attacker)
	/* P */ {15, 14, 14, 13, 12, 11},
	/* N */ {25, 24, 24, 23, 22, 21},
	/* B */ {35, 34, 34, 33, 32, 31},
	/* R */ {45, 44, 44, 43, 42, 41},
	/* Q */ {55, 54, 54, 53, 52, 51},
	/* K */ {0, 0, 0, 0, 0, 0},
}

func scoreMove(pos *board.Position, m, pvMove board.Move) int {
	if m == pvMove {
		return pvMoveScore
	}
	if m.IsCapture() {
		victim := board.Pawn
		if !m.IsEnPassant() {
			victim = pos.PieceAt(m.To()).Type()
		}
		attacker := pos.PieceAt(m.From()).Type()
		return captureBase + mvvLva[victim][attacker]
	}
	if m.IsPromotion() {
		return promotionBase + int(m.Promotion())
	}
	return 0
}

// orderMoves sorts moves best first: the previous iteration's PV move, then
// captures by MVV-LVA, then promotions. Equal scores keep generation order.
func orderMoves(pos *board.Position, moves *board.MoveList, pvMove board.Move) {
	n := moves.Len()
	var scores [256]int
	for i := 0; i < n; i++ {
		scores[i] = scoreMove(pos, moves.Get(i), pvMove)
	}
	for i := 1; i < n; i++ {
		m, s := moves.Get(i), scores[i]
		j := i
		for ; j > 0 && scores[j-1] < s; j-- {
			moves.Set(j, moves.Get(j-1))
			scores[j] = scores[j-1]
		}
		moves.Set(j, m)
		scores[j] = s
	}
}
