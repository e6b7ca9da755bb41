package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/internal/catalog"
	"github.com/pkordes/trip-planner/backend/internal/cli"
)

var (
	flagPrefs    []string
	flagQuery    string
	flagCategory string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List catalog activities for a set of preferences",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().StringSliceVar(&flagPrefs, "prefs", nil, "Preference ids, e.g. food,culture (defaults when empty)")
	catalogCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "Search name, description and location")
	catalogCmd.Flags().StringVar(&flagCategory, "category", catalog.AllCategories, "Only list this category")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	c, err := catalog.Load(flagCatalog)
	if err != nil {
		return err
	}

	for _, p := range flagPrefs {
		if !c.HasPreference(p) {
			return fmt.Errorf("unknown preference %q", p)
		}
	}

	activities := c.Defaults()
	title := "Suggested activities"
	if len(flagPrefs) > 0 {
		activities = c.ForPreferences(flagPrefs)
		title = "Activities for " + strings.Join(flagPrefs, ", ")
	}
	categories := catalog.Categories(activities)
	activities = catalog.Filter(activities, flagQuery, flagCategory)

	out := cmd.OutOrStdout()
	if len(activities) == 0 {
		fmt.Fprintln(out, "No matching activities.")
		return nil
	}
	fmt.Fprint(out, cli.RenderActivities(title, activities))
	fmt.Fprintf(out, "Categories: %s\n", strings.Join(categories, ", "))
	return nil
}
