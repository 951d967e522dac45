package board

import "github.com/rs/zerolog/log"

// assertConsistent aborts the process when a move left the board in a
// broken state. It compiles away unless debugChecks is set.
func (p *Position) assertConsistent(op string, m Move) {
	if !debugChecks {
		return
	}
	if err := p.checkInvariants(); err != nil {
		log.Fatal().
			Err(err).
			Str("op", op).
			Str("move", m.String()).
			Msg("board invariant violated\n" + p.String())
	}
}

func (p *Position) fatal(what string, sq Square, pc Piece) {
	log.Fatal().
		Str("square", sq.String()).
		Str("piece", pc.String()).
		Msg(what + "\n" + p.String())
}
