// Package cli implements the literature command-line interface.
package cli

import (
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
)

var (
	playersFlag int
	seedFlag    uint64
)

var rootCmd = &cobra.Command{
	Use:   "literature",
	Short: "Play and simulate games of Literature",
	Long: `Literature is a card game of deduction played with a 48-card deck
(a standard deck without the 7s) between two teams. Players ask opponents
for specific cards and claim half-suits their team collectively holds.

The simulate and compete commands train simple learned move policies by
self-play; play starts an interactive game against bot opponents.`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&playersFlag, "players", 4, "number of players (4, 6 or 8)")
	rootCmd.PersistentFlags().Uint64Var(&seedFlag, "seed", 0, "random seed, 0 derives one from the clock")
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(competeCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newRNG() *rand.Rand {
	seed := seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
