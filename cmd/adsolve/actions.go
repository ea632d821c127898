package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/mathrgo/adsearch/kit"
)

// colorDisplayer is implemented by problem models with an ANSI-highlighted
// board display; presently only qwh.Model.
type colorDisplayer interface {
	DisplayColor(w io.Writer)
}

// displayer is implemented by every problem model's plain-text dump.
type displayer interface {
	Display(w io.Writer)
}

// printResultAct reports each run's outcome, the analogue of
// psokit/actlist.go's Printresult.
type printResultAct struct{}

func (a *printResultAct) Create(sd int64) kit.Act { return &printResultAct{} }

func (a *printResultAct) Result(man *kit.Manager) {
	s := man.Stats()
	fmt.Printf("run %d: cost=%d iter=%d swap=%d reset=%d restart=%d\n",
		man.RunID(), man.Cost(), s.NbIterTot, s.NbSwapTot, s.NbResetTot, s.NbRestart)
}

// displayAct prints the final configuration of the last run, using
// DisplayColor when the model supports it, the terminal is a tty, and
// COLOR is set in the environment; otherwise it falls back to Display.
type displayAct struct{}

func (a *displayAct) Create(sd int64) kit.Act { return &displayAct{} }

func (a *displayAct) Result(man *kit.Manager) {
	color := os.Getenv("COLOR") != "" && isatty.IsTerminal(os.Stdout.Fd())
	if cd, ok := man.Model().(colorDisplayer); ok && color {
		cd.DisplayColor(colorable.NewColorableStdout())
		return
	}
	if d, ok := man.Model().(displayer); ok {
		d.Display(os.Stdout)
	}
}

/*
debugPromptAct replaces ad_solver.c's Show_Debug_Info fgets loop with an
interactive github.com/peterh/liner prompt, entered once per committed
swap or reset while debug level 2 is active. "c" stops prompting for the rest of the
run (equivalent to the original's "continue without further pauses"),
"q" aborts the whole process, anything else (including a blank line)
runs on to the next committed swap or reset.
*/
type debugPromptAct struct {
	line *liner.State
	cont bool
}

func (a *debugPromptAct) Create(sd int64) kit.Act { return &debugPromptAct{} }

func (a *debugPromptAct) RunInit(man *kit.Manager) {
	a.line = liner.NewLiner()
	a.line.SetCtrlCAborts(true)
	a.cont = false
}

func (a *debugPromptAct) Update(man *kit.Manager) {
	if a.cont {
		return
	}
	prompt := fmt.Sprintf("iter %d cost %d [n]ext/[c]ontinue/[q]uit> ", man.Iter(), man.Model().CostOfSolution(false))
	reply, lerr := a.line.Prompt(prompt)
	if lerr == liner.ErrPromptAborted || lerr == io.EOF {
		a.cont = true
		return
	}
	switch reply {
	case "c":
		a.cont = true
	case "q":
		a.line.Close()
		os.Exit(0)
	}
}

func (a *debugPromptAct) Result(man *kit.Manager) {
	if a.line != nil {
		a.line.Close()
	}
}
