// Command perft counts leaf nodes of the legal move tree from the start position.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/benbeisheim/simplechess/internal/model"
)

func main() {
	depth := flag.Int("depth", 3, "search depth in plies")
	divide := flag.Bool("divide", false, "print the count below each root move")
	flag.Parse()

	if *depth < 0 {
		log.Fatalf("depth must not be negative, got %d", *depth)
	}

	gs := model.NewGameState()
	start := time.Now()

	if *divide {
		counts := model.Divide(gs, *depth)
		moves := make([]string, 0, len(counts))
		for m := range counts {
			moves = append(moves, m)
		}
		sort.Strings(moves)
		var total int64
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, counts[m])
			total += counts[m]
		}
		fmt.Printf("\nMoves: %d\n", len(moves))
		fmt.Printf("Perft(%d) = %d (%s)\n", *depth, total, time.Since(start).Round(time.Millisecond))
		return
	}

	fmt.Printf("Perft(%d) = %d (%s)\n", *depth, model.Perft(gs, *depth), time.Since(start).Round(time.Millisecond))
}
