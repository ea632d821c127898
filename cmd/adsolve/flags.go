package main

import (
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"

	"github.com/mathrgo/adsearch"
)

// config is the shape of the -config YAML file: a sparse overlay applied
// after the command-line flags, so a saved tuning profile only needs to
// name the fields it changes.
type config struct {
	ProbSelectLocMin *int  `yaml:"prob_select_loc_min"`
	FreezeLocMin     *int  `yaml:"freeze_loc_min"`
	FreezeSwap       *int  `yaml:"freeze_swap"`
	ResetLimit       *int  `yaml:"reset_limit"`
	ResetPercent     *int  `yaml:"reset_percent"`
	RestartLimit     *int  `yaml:"restart_limit"`
	RestartMax       *int  `yaml:"restart_max"`
	TargetCost       *int  `yaml:"target_cost"`
	OptimPb          *bool `yaml:"optim_pb"`
	DoNotInit        *bool `yaml:"do_not_init"`
	Exhaustive       *bool `yaml:"exhaustive"`
	FirstBest        *bool `yaml:"first_best"`
	IgnoreMarkIfBest *bool `yaml:"ignore_mark_if_best"`
	UnmarkAtReset    *int  `yaml:"unmark_at_reset"`
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *config) apply(h *adsearch.Heuristics) {
	if c == nil {
		return
	}
	if c.ProbSelectLocMin != nil {
		h.ProbSelectLocMin = *c.ProbSelectLocMin
	}
	if c.FreezeLocMin != nil {
		h.FreezeLocMin = *c.FreezeLocMin
	}
	if c.FreezeSwap != nil {
		h.FreezeSwap = *c.FreezeSwap
	}
	if c.ResetLimit != nil {
		h.ResetLimit = *c.ResetLimit
	}
	if c.ResetPercent != nil {
		h.ResetPercent = *c.ResetPercent
	}
	if c.RestartLimit != nil {
		h.RestartLimit = *c.RestartLimit
	}
	if c.RestartMax != nil {
		h.RestartMax = *c.RestartMax
	}
	if c.TargetCost != nil {
		h.TargetCost = *c.TargetCost
	}
	if c.OptimPb != nil {
		h.OptimPb = *c.OptimPb
	}
	if c.DoNotInit != nil {
		h.DoNotInit = *c.DoNotInit
	}
	if c.Exhaustive != nil {
		h.Exhaustive = *c.Exhaustive
	}
	if c.FirstBest != nil {
		h.FirstBest = *c.FirstBest
	}
	if c.IgnoreMarkIfBest != nil {
		h.IgnoreMarkIfBest = *c.IgnoreMarkIfBest
	}
	if c.UnmarkAtReset != nil {
		h.UnmarkAtReset = *c.UnmarkAtReset
	}
}

// heuristicsFromFlags builds a Heuristics value from cmd's persistent
// pflag.FlagSet, then overlays -config if given. It takes the
// *pflag.FlagSet directly, rather than *cobra.Command, since parsing
// the flags is the only thing it does with cmd.
func heuristicsFromFlags(f *pflag.FlagSet) (adsearch.Heuristics, error) {
	h := adsearch.DefaultHeuristics()

	if v, err := f.GetInt("prob"); err == nil {
		h.ProbSelectLocMin = v
	}
	if v, err := f.GetInt("freeze-loc-min"); err == nil {
		h.FreezeLocMin = v
	}
	if v, err := f.GetInt("freeze-swap"); err == nil {
		h.FreezeSwap = v
	}
	if v, err := f.GetInt("reset-limit"); err == nil {
		h.ResetLimit = v
	}
	if v, err := f.GetInt("reset-percent"); err == nil {
		h.ResetPercent = v
	}
	if v, err := f.GetInt("restart-limit"); err == nil {
		h.RestartLimit = v
	}
	if v, err := f.GetInt("restart-max"); err == nil {
		h.RestartMax = v
	}
	if v, err := f.GetInt("target"); err == nil {
		h.TargetCost = v
	}
	if v, err := f.GetBool("optim"); err == nil {
		h.OptimPb = v
	}
	if v, err := f.GetBool("do-not-init"); err == nil {
		h.DoNotInit = v
	}

	path, _ := f.GetString("config")
	if path != "" {
		c, err := loadConfig(path)
		if err != nil {
			return h, err
		}
		c.apply(&h)
	}
	return h, nil
}
