package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nutriscope/nutriscope/pkg/food"
)

func newRefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refs",
		Short: "Print the reference-intake table in effect",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefs()
		},
	}
	return cmd
}

func runRefs() error {
	cfg := loadConfig()
	refs, err := cfg.ReferenceIntakes()
	if err != nil {
		return fmt.Errorf("building reference intakes: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUTRIENT\tDAILY VALUE\tUNIT\tSUBSET")
	for _, n := range food.All() {
		subset := "encourage"
		if n.IsLimited() {
			subset = "limit"
		}
		fmt.Fprintf(tw, "%s\t%g\t%s\t%s\n", n, refs[n], n.Unit(), subset)
	}
	return tw.Flush()
}
