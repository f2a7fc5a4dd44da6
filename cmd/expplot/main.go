// Command expplot demonstrates the expm package by propagating a small
// linear system x' = A·x through its matrix exponential: it computes
// exp(tA) over a grid of times t and plots selected entries as curves.
//
// Usage:
//
//	expplot
//
// The output is written to expm.png in the working directory.
package main

import (
	"fmt"
	"log"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/lvlmat/expm"
	"github.com/katalvlaran/lvlmat/matrix"
)

// Time grid for the trajectory plot.
const (
	tMax   = 3.0 // end of the propagation window
	tSteps = 60  // number of grid points
)

func main() {
	// A lightly damped rotation: a classic system whose exponential mixes
	// decay and oscillation, so the curves are worth looking at.
	a, err := matrix.FromRows([][]float64{
		{-0.10, -1.00, 0.00},
		{1.00, -0.10, 0.00},
		{0.00, 0.25, -0.50},
	})
	if err != nil {
		log.Fatalf("expplot: build system matrix: %v", err)
	}

	// Track two entries of exp(tA): the rotating (0,0) and the coupled (2,1).
	var rot, coupled plotter.XYs
	for i := 0; i <= tSteps; i++ {
		t := tMax * float64(i) / tSteps

		at, err := matrix.Scale(a, t)
		if err != nil {
			log.Fatalf("expplot: scale: %v", err)
		}
		e, err := expm.Exp(at)
		if err != nil {
			log.Fatalf("expplot: exp(tA) at t=%.3f: %v", t, err)
		}

		v00, _ := e.At(0, 0)
		v21, _ := e.At(2, 1)
		rot = append(rot, plotter.XY{X: t, Y: v00})
		coupled = append(coupled, plotter.XY{X: t, Y: v21})
	}

	// Assemble the plot.
	p := plot.New()
	p.Title.Text = "exp(tA) entries over t"
	p.X.Label.Text = "t"
	p.Y.Label.Text = "entry value"

	rotLine, err := plotter.NewLine(rot)
	if err != nil {
		log.Fatalf("expplot: line: %v", err)
	}
	coupledLine, err := plotter.NewLine(coupled)
	if err != nil {
		log.Fatalf("expplot: line: %v", err)
	}
	coupledLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(rotLine, coupledLine)
	p.Legend.Add("exp(tA)[0,0]", rotLine)
	p.Legend.Add("exp(tA)[2,1]", coupledLine)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, "expm.png"); err != nil {
		log.Fatalf("expplot: save: %v", err)
	}
	fmt.Println("wrote expm.png")
}
