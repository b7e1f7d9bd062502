// Command solve runs the static analyzer and, if it finds no
// certificate of infeasibility, the full solve cascade (greedy warm
// start falling back to the SAT encoder) over a single deal given as
// a player count and a compressed deck string.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/lukev/hanabisolve/internal/analyzer"
	"github.com/lukev/hanabisolve/internal/instance"
	"github.com/lukev/hanabisolve/internal/notation"
	"github.com/lukev/hanabisolve/internal/sat"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: solve <num_players> <compressed_deck>")
		os.Exit(1)
	}

	numPlayers, err := strconv.Atoi(os.Args[1])
	if err != nil {
		fmt.Printf("invalid num_players: %v\n", err)
		os.Exit(1)
	}

	deck, err := notation.DecompressDeck(os.Args[2])
	if err != nil {
		fmt.Printf("invalid deck: %v\n", err)
		os.Exit(1)
	}

	inst, err := instance.New(deck, numPlayers)
	if err != nil {
		fmt.Printf("invalid instance: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Analyzing %d-player instance (%d suits, deck size %d)...\n",
		numPlayers, inst.NumSuits(), inst.DeckSize())

	if reasons := analyzer.Analyze(inst, true); len(reasons) > 0 {
		fmt.Println("Infeasible: static analyzer found a certificate")
		for _, r := range reasons {
			fmt.Printf("  - %s\n", r)
		}
		os.Exit(0)
	}
	fmt.Println("Static analyzer found no certificate; invoking the solve cascade...")

	won, result := sat.SolveInstance(inst)
	if !won {
		fmt.Println("Infeasible: SAT solver proved unsatisfiable")
		os.Exit(0)
	}

	actionsStr, err := notation.CompressActions(result.Actions)
	if err != nil {
		fmt.Printf("solved, but failed to compress the replay: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Winnable: score %d/%d\n", result.Score(), inst.MaxScore())
	fmt.Printf("Replay (%d actions): %s\n", len(result.Actions), actionsStr)
}
