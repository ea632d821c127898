package main

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mathrgo/adsearch/kit"
)

/*
plotCostAct implements the plot-cost Action: a per-run chart of
Solver.TotalCost and Solver.BestCost against iteration count, the direct
analogue of psokit/actlist.go's PlotPersonalBest (which charts each
particle's personal-best Fbits(cost) the same way). Where PlotPersonalBest
tracks one line per particle, adsearch has a single Solver per run, so
there are exactly two lines: the current cost (which can climb back up
on an escape) and the current restart's running best (monotone
non-increasing within a restart; it starts over at each restart).
*/
type plotCostAct struct {
	cost plotter.XYs
	best plotter.XYs
}

func (a *plotCostAct) Create(sd int64) kit.Act { return &plotCostAct{} }

// RunInit resets the recorded series for the new run.
func (a *plotCostAct) RunInit(man *kit.Manager) {
	a.cost = a.cost[:0]
	a.best = a.best[:0]
}

// Update appends one sample per committed swap or reset, driven by the
// same logrus hook that drives every other ActUpdate.
func (a *plotCostAct) Update(man *kit.Manager) {
	s := man.Solver()
	iter := float64(man.Iter())
	a.cost = append(a.cost, plotter.XY{X: iter, Y: float64(s.TotalCost())})
	a.best = append(a.best, plotter.XY{X: iter, Y: float64(s.BestCost())})
}

// Result renders the run's cost history to plotCost<run>.png.
func (a *plotCostAct) Result(man *kit.Manager) {
	if len(a.cost) == 0 {
		return
	}
	p, err := plot.New()
	if err != nil {
		fmt.Println("plot-cost:", err)
		return
	}
	p.Add(plotter.NewGrid())

	costLine, err := plotter.NewLine(a.cost)
	if err != nil {
		fmt.Println("plot-cost:", err)
		return
	}
	bestLine, err := plotter.NewLine(a.best)
	if err != nil {
		fmt.Println("plot-cost:", err)
		return
	}
	bestLine.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(costLine, bestLine)
	p.Legend.Add("cost", costLine)
	p.Legend.Add("best", bestLine)

	p.Title.Text = fmt.Sprintf("adsolve cost: run %d", man.RunID())
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "cost"

	filename := fmt.Sprintf("plotCost%d.png", man.RunID())
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		fmt.Println("plot-cost:", err)
	}
}
