package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oversys/Rusty-Words/pkg/router"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tVIEW\tTITLE\tNOTES")

			for _, def := range router.MustDefaultTable().Routes() {
				view, title, notes := string(def.View), def.Meta.Title, ""
				switch {
				case def.IsRedirect():
					view, title, notes = "-", "-", "redirect to "+def.Redirect
				case def.Props:
					notes = "props"
				}
				if title == "" {
					title = router.AppTitle
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", def.Path, view, title, notes)
			}

			return tw.Flush()
		},
	}
}
