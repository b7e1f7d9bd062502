// Command bisect runs the bisection driver (spec.md component C8)
// over a recorded replay link, pinpointing the last turn the game was
// still provably winnable.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/lukev/hanabisolve/internal/bisect"
	"github.com/lukev/hanabisolve/internal/instance"
	"github.com/lukev/hanabisolve/internal/notation"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: bisect <compressed_replay> <final_score>")
		os.Exit(1)
	}

	numPlayers, deck, actions, variantID, err := notation.DecompressReplay(os.Args[1])
	if err != nil {
		fmt.Printf("invalid replay: %v\n", err)
		os.Exit(1)
	}

	finalScore, err := strconv.Atoi(os.Args[2])
	if err != nil {
		fmt.Printf("invalid final_score: %v\n", err)
		os.Exit(1)
	}

	inst, err := instance.New(deck, numPlayers)
	if err != nil {
		fmt.Printf("invalid instance: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Bisecting %d-player replay (%d actions, variant %d)...\n", numPlayers, len(actions), variantID)

	res, err := bisect.Check(inst, actions, finalScore)
	if err != nil {
		fmt.Printf("bisect failed: %v\n", err)
		os.Exit(1)
	}

	switch {
	case res.LastWinnable == 0:
		fmt.Println("Infeasible from the start")
	case res.LastWinnable == len(actions)+1:
		fmt.Println("The recorded replay already wins")
	default:
		fmt.Printf("Last winnable position: %d (of %d recorded actions)\n", res.LastWinnable, len(actions))
	}

	if res.Certificate != nil {
		actionsStr, err := notation.CompressActions(res.Certificate.Actions)
		if err != nil {
			fmt.Printf("found a certificate, but failed to compress it: %v\n", err)
			return
		}
		fmt.Printf("Certificate replay (%d actions): %s\n", len(res.Certificate.Actions), actionsStr)
	}
}
