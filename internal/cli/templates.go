package cli

import (
	"fmt"

	"nextchapter/internal/render"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the built-in resume templates",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Available templates:")
		for _, tmpl := range render.Catalog() {
			marker := " "
			if tmpl.ID == render.DefaultTemplateID {
				marker = "*"
			}
			fmt.Printf("  %s %-12s %s\n", marker, tmpl.ID, tmpl.Name)
		}
		fmt.Println("(* default)")
	},
}
