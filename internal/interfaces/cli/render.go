package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/qsphere/internal/application/visualization"
	"github.com/turtacn/qsphere/internal/config"
	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/qsphere/internal/infrastructure/render/sceneio"
	"github.com/turtacn/qsphere/pkg/types/quantum"
)

// renderFlags are shared by render and watch.
type renderFlags struct {
	output      string
	noOpen      bool
	sceneOut    string
	sceneFormat string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "HTML output path (default: render.output_path)")
	fs.BoolVar(&f.noOpen, "no-open", false, "do not open the result in a browser")
	fs.StringVar(&f.sceneOut, "scene-out", "", "also write the neutral scene to this path")
	fs.StringVar(&f.sceneFormat, "scene-format", "", "scene encoding: "+strings.Join(sceneio.Formats(), ", "))
}

// options merges the flags over the render section of cfg.
func (f *renderFlags) options(cfg *config.Config, source string) visualization.RenderOptions {
	opts := visualization.RenderOptions{
		AutoOpen:   cfg.Render.AutoOpen && !f.noOpen,
		OutputPath: cfg.Render.OutputPath,
		SceneOut:   f.sceneOut,
		Source:     source,
	}
	if f.output != "" {
		opts.OutputPath = f.output
	}
	if f.sceneOut != "" {
		opts.SceneFormat = f.sceneFormat
		if opts.SceneFormat == "" {
			if _, ok := sceneio.FormatFromPath(f.sceneOut); !ok {
				opts.SceneFormat = cfg.Render.SceneFormat
			}
		}
	}
	return opts
}

// RenderReport is the printable outcome of a render.
type RenderReport struct {
	*visualization.RenderResult
	URL string `json:"url,omitempty"`
}

func newRenderReport(res *visualization.RenderResult) *RenderReport {
	r := &RenderReport{RenderResult: res}
	if res.Published != nil {
		r.URL = res.Published.URL
	}
	return r
}

func (r *RenderReport) String() string {
	s := r.Summary
	var sb strings.Builder
	fmt.Fprintf(&sb, "wrote %s (%d qubits, %d states, %d arrows, %d labels)", r.OutputPath, s.Qubits, s.States, s.Arrows, s.Labels)
	if r.ScenePath != "" {
		fmt.Fprintf(&sb, "\nscene %s", r.ScenePath)
	}
	if r.URL != "" {
		fmt.Fprintf(&sb, "\npublished %s", r.URL)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&sb, "\nwarning: %s", w)
	}
	return sb.String()
}

func (r *RenderReport) TableHeaders() []string {
	return []string{"OUTPUT", "QUBITS", "STATES", "ARROWS", "LABELS", "OPENED", "URL"}
}

func (r *RenderReport) TableRows() [][]string {
	s := r.Summary
	return [][]string{{
		r.OutputPath,
		strconv.Itoa(s.Qubits),
		strconv.Itoa(s.States),
		strconv.Itoa(s.Arrows),
		strconv.Itoa(s.Labels),
		strconv.FormatBool(r.Opened),
		r.URL,
	}}
}

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	var (
		flags   renderFlags
		preset  string
		publish bool
		sceneID string
	)

	cmd := &cobra.Command{
		Use:   "render [state-file|-]",
		Short: "Render a state vector to an interactive HTML Q-Sphere",
		Long: "Render reads a JSON state vector, either [[re, im], ...] or\n" +
			"{\"amplitudes\": [{\"re\": .., \"im\": ..}, ...]}, from a file or stdin (\"-\"),\n" +
			"or uses a named --state preset (" + strings.Join(quantum.PresetNames(), ", ") + ").",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			sv, err := loadState(path, preset, cmd.InOrStdin())
			if err != nil {
				return err
			}

			cfg := cliCtx.Config
			opts := flags.options(cfg, visualization.SourceCLI)
			opts.Publish = publish || cfg.Publish.Enabled
			opts.SceneID = sceneID

			svc, client, err := cliCtx.renderService(cmd.Context(), cfg, opts.Publish)
			if err != nil {
				return err
			}
			if client != nil {
				defer client.Close()
			}

			res, err := svc.Render(cmd.Context(), sv, opts)
			if err != nil {
				return err
			}
			cliCtx.Logger.Debug("render finished", logging.String(logging.FieldOutputPath, res.OutputPath))
			return PrintResult(cmd, newRenderReport(res))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&preset, "state", "s", "", "render a named preset instead of a file")
	cmd.Flags().BoolVar(&publish, "publish", false, "upload the document to the configured bucket")
	cmd.Flags().StringVar(&sceneID, "id", "", "scene ID (default: random UUID)")
	return cmd
}

//Personal.AI order the ending
