package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mathrgo/adsearch/internal/rng"
	"github.com/mathrgo/adsearch/kit"
	"github.com/mathrgo/adsearch/problem/allinterval"
	"github.com/mathrgo/adsearch/problem/langford"
	"github.com/mathrgo/adsearch/problem/quasigroup"
	"github.com/mathrgo/adsearch/problem/smti"
	"github.com/mathrgo/adsearch/qwh"
)

// problemCreatorFunc adapts a plain func to kit.CreateProblem, the way an
// http.HandlerFunc adapts a func to http.Handler.
type problemCreatorFunc func(sd int64) (kit.Model, error)

func (f problemCreatorFunc) Create(sd int64) (kit.Model, error) { return f(sd) }

func newAllIntervalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "allinterval N",
		Short: "solve an all-interval series of size N",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("allinterval: invalid size %q: %w", args[0], err)
			}
			return runProblem(cmd, "allinterval", problemCreatorFunc(func(sd int64) (kit.Model, error) {
				return allinterval.New(n, rng.New(sd)), nil
			}))
		},
	}
}

func newLangfordCmd() *cobra.Command {
	var skolem bool
	var k int
	cmd := &cobra.Command{
		Use:   "langford ORDER",
		Short: "solve a Langford pairing, or a Skolem sequence with --skolem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("langford: invalid order %q: %w", args[0], err)
			}
			kind := langford.Langford
			if skolem {
				kind = langford.Skolem
			}
			return runProblem(cmd, "langford", problemCreatorFunc(func(sd int64) (kit.Model, error) {
				return langford.New(order, kind, k, rng.New(sd))
			}))
		},
	}
	cmd.Flags().BoolVar(&skolem, "skolem", false, "use the Skolem distance rule instead of Langford's")
	cmd.Flags().IntVar(&k, "k", 2, "number of copies of each value")
	return cmd
}

func newQuasigroupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quasigroup FILE",
		Short: "complete a Latin-square board with holes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			b, err := quasigroup.Parse(f)
			if err != nil {
				return fmt.Errorf("quasigroup: %w", err)
			}
			return runProblem(cmd, "quasigroup", problemCreatorFunc(func(sd int64) (kit.Model, error) {
				return quasigroup.New(b, rng.New(sd)), nil
			}))
		},
	}
}

func newQwhCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qwh FILE",
		Short: "complete a quasigroup-with-holes board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			b, err := qwh.Parse(f)
			if err != nil {
				return fmt.Errorf("qwh: %w", err)
			}
			return runProblem(cmd, "qwh", problemCreatorFunc(func(sd int64) (kit.Model, error) {
				return qwh.New(b, rng.New(sd))
			}))
		},
	}
}

func newSMTICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "smti FILE",
		Short: "find a weakly stable matching with ties and incomplete lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			p, err := smti.Parse(f)
			if err != nil {
				return fmt.Errorf("smti: %w", err)
			}
			return runProblem(cmd, "smti", problemCreatorFunc(func(sd int64) (kit.Model, error) {
				return smti.New(p, rng.New(sd)), nil
			}))
		},
	}
}
