package builtins

import (
	"github.com/google/uuid"

	"github.com/lifovm/lifo/internal/core"
	"github.com/lifovm/lifo/internal/signal"
)

// Uid pushes a fresh USER-tagged value wrapping a random uuid.UUID.
// Storing a pointer (rather than the 16-byte value) keeps USER's
// equality rule an honest "same instance" test: two separate
// generations are two separate pointers even on the vanishingly
// unlikely chance their bytes coincide, matching the opaque-pointer
// comparison every other USER value gets.
func Uid(ctx *core.Context) signal.Kind {
	id := uuid.New()
	c, sig := ctx.NewUser(&id, nil)
	if sig != signal.OK {
		return sig
	}
	ctx.Push(c)
	return signal.OK
}
