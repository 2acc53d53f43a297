// Package qsphere is the public entry point for rendering interactive
// Q-Sphere visualizations of quantum state vectors.
//
//	sv := quantum.FromReal(1/math.Sqrt2, 0, 0, 1/math.Sqrt2)
//	res, err := qsphere.PlotInteractive(sv, false, "bell.html")
package qsphere

import (
	"context"

	"github.com/turtacn/qsphere/internal/application/visualization"
	"github.com/turtacn/qsphere/internal/domain/scene"
	"github.com/turtacn/qsphere/internal/infrastructure/browser"
	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/qsphere/internal/infrastructure/render/plotly"
	"github.com/turtacn/qsphere/pkg/types/quantum"
)

// Version of the qsphere module.
const Version = "0.1.0"

// DefaultOutputFile is written when PlotInteractive receives an empty path.
const DefaultOutputFile = visualization.DefaultOutputPath

// Result is the rendered figure and where it was written.
type Result struct {
	Scene      *scene.Scene
	OutputPath string
	Opened     bool
	Warnings   []string
}

// PlotInteractive renders state to outputFile, overwriting it, and opens it
// in the default browser when autoOpen is set.  A browser that cannot be
// launched is reported in Result.Warnings, not as an error.
func PlotInteractive(state quantum.StateSource, autoOpen bool, outputFile string) (*Result, error) {
	return PlotInteractiveContext(context.Background(), state, autoOpen, outputFile)
}

// PlotInteractiveContext is PlotInteractive with a caller supplied context.
func PlotInteractiveContext(ctx context.Context, state quantum.StateSource, autoOpen bool, outputFile string) (*Result, error) {
	return plot(ctx, newService(browser.NewSystem()), state, autoOpen, outputFile)
}

func newService(launcher browser.Launcher) visualization.Service {
	return visualization.NewService(
		plotly.NewRenderer(plotly.Options{Version: Version}),
		launcher,
		nil,
		nil,
		logging.Default(),
		visualization.Config{NormTolerance: 1e-6},
	)
}

func plot(ctx context.Context, svc visualization.Service, state quantum.StateSource, autoOpen bool, outputFile string) (*Result, error) {
	res, err := svc.Render(ctx, state, visualization.RenderOptions{
		AutoOpen:   autoOpen,
		OutputPath: outputFile,
		Source:     visualization.SourceAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Result{
		Scene:      res.Scene,
		OutputPath: res.OutputPath,
		Opened:     res.Opened,
		Warnings:   res.Warnings,
	}, nil
}

//Personal.AI order the ending
