// tablut runs a line-based debug console against the engine: type moves in algebraic
// notation ("e2 e5"), "go" to let the engine choose and play a move, "print" to
// redisplay the board, "reset" to start over, "quit" to exit.
package main

import (
	"context"
	"flag"

	"github.com/seekerror/logw"
	"github.com/tablutai/tablut/pkg/engine"
	"github.com/tablutai/tablut/pkg/engine/console"
	"github.com/tablutai/tablut/pkg/search/searchctl"
)

var (
	hash = flag.Int("hash", searchctl.DefaultTableSizeMB, "Transposition table size in MB")
	seed = flag.Int64("seed", 0, "Zobrist hash key seed")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, engine.WithTableSizeMB(*hash), engine.WithZobristSeed(*seed))

	in := engine.ReadStdinLines(ctx)
	driver, out := console.NewDriver(ctx, e, e.ZobristTable(), in)
	go engine.WriteStdoutLines(ctx, out)

	<-driver.Closed()
	logw.Infof(ctx, "tablutai exited")
}
