package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var modesFormat string

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the tracking mode catalog",
	Args:  cobra.NoArgs,
	RunE:  runModes,
}

func init() {
	modesCmd.Flags().StringVar(&modesFormat, "format", "table", "Output format: table, yaml")
}

type modeOutput struct {
	Mode        string   `yaml:"mode"`
	Label       string   `yaml:"label"`
	Description string   `yaml:"description,omitempty"`
	Steps       []string `yaml:"steps"`
}

func runModes(cmd *cobra.Command, args []string) error {
	flows := tracking.Default().Modes()

	switch modesFormat {
	case "yaml":
		out := make([]modeOutput, 0, len(flows))
		for _, f := range flows {
			steps := make([]string, 0, len(f.Steps))
			for _, k := range f.Steps {
				steps = append(steps, fmt.Sprintf("%s (%s)", k, f.Labels[k]))
			}
			out = append(out, modeOutput{Mode: f.Mode.String(), Label: f.Label, Description: f.Description, Steps: steps})
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(out)
	case "table":
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "MODE\tLABEL\tSTEPS")
		for _, f := range flows {
			steps := make([]string, 0, len(f.Steps))
			for _, k := range f.Steps {
				steps = append(steps, k.String())
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Mode, f.Label, strings.Join(steps, " > "))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q", modesFormat)
	}
}
