package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/internal/catalog"
	"github.com/pkordes/trip-planner/backend/internal/cli"
)

var planCmd = &cobra.Command{
	Use:   "plan FILE",
	Short: "Preview a TOML trip plan",
	Long:  "Build the trip described in FILE, then print its itinerary and budget summary.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	c, err := catalog.Load(flagCatalog)
	if err != nil {
		return err
	}
	p, err := cli.LoadPlan(args[0])
	if err != nil {
		return err
	}

	res, err := cli.NewRunner(c).Run(cmd.Context(), p)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("%s  %s  %s to %s",
		res.Trip.Name, res.Trip.Destination, res.Trip.StartDate, res.Trip.EndDate)))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderItinerary(res.Rows))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderBudget(res.Summary))
	return nil
}
