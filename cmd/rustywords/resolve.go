package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oversys/Rusty-Words/pkg/router"
)

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve a path against the route table",
		Long: `Resolve a path the way the app does on navigation and print the
view, props, title and scroll position it produces.

Examples:
  rustywords resolve /word/42
  rustywords resolve /bogus/path`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := &router.DocumentTitle{}
			nav := router.NewNavigator(router.NewResolver(router.MustDefaultTable(), title))

			n, err := nav.Navigate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if n.RedirectedFrom != "" {
				fmt.Fprintf(out, "redirect: %s -> %s\n", n.RedirectedFrom, n.URL())
			}
			fmt.Fprintf(out, "path:     %s\n", n.URL())
			fmt.Fprintf(out, "view:     %s\n", n.Route.View)
			fmt.Fprintf(out, "props:    %s\n", formatProps(n.Props))
			fmt.Fprintf(out, "title:    %s\n", title.Title())
			fmt.Fprintf(out, "scroll:   top=%d\n", n.Scroll.Top)
			return nil
		},
	}
}

func formatProps(props map[string]string) string {
	if len(props) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + props[k]
	}
	return strings.Join(pairs, " ")
}
