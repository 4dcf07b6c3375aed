// Command chessplay is a small demonstration front end for the
// chesscore library: it loads a position from a FEN string (or the
// starting position), runs the AI at a chosen level, and prints the
// result. It is a thin consumer of the public chess package, not part
// of the library itself.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gordienko/chesscore/chess"
)

func main() {
	fen := flag.String("fen", "", "FEN to start from (defaults to the standard starting position)")
	level := flag.Int("level", 3, "AI level, 1..5")
	analysis := flag.Bool("analysis", false, "print every root move's score")
	ttSizeMB := flag.Int("tt", 16, "transposition table size in megabytes")
	flag.Parse()

	g, err := chess.New(&chess.Config{FEN: *fen})
	if err != nil {
		log.Fatalf("chessplay: %v", err)
	}

	result, err := g.AI(chess.AIOptions{
		Level:    *level,
		Play:     true,
		Analysis: *analysis,
		TTSizeMB: *ttSizeMB,
	})
	if err != nil {
		log.Fatalf("chessplay: %v", err)
	}

	if result.Move == nil {
		fmt.Println("no legal move: game is over")
		fmt.Println(g.ExportFEN())
		return
	}

	log.Printf("played %s%s%s (depth %d, score %d, %d nodes)",
		result.Move.From, result.Move.To, result.Move.Promotion,
		*result.Depth, *result.BestScore, *result.NodesSearched)
	fmt.Println(g.ExportFEN())

	if *analysis {
		for _, rm := range result.Analysis {
			fmt.Printf("%s%s  %d\n", rm.From, rm.To, rm.Score)
		}
	}
}
