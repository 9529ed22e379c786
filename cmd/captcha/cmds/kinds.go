package cmds

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aixcyberchallenge/captcha-solver/tasks"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the task kinds and their required fields",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tTYPE\tPROXY\tWAIT\tREQUIRED")

		for _, k := range tasks.Kinds() {
			proxy := "no"
			switch {
			case k.ProxyRequired:
				proxy = "required"
			case k.SupportsProxy():
				proxy = "optional"
			}

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				k.Name, k.Type, proxy, k.InitialWait, strings.Join(k.RequiredFields(), ","))
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}
