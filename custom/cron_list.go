// Package custom holds site-specific extensions wired through the cmd, cron
// and api registries. The CLI binary imports it for its init side effects.
package custom

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"procure.GO/cmd"
	"procure.GO/cron"
)

func init() {
	cmd.Register(&cobra.Command{
		Use:   "cron:list",
		Short: "List the registered cron jobs and their schedules",
		Run: func(c *cobra.Command, args []string) {
			jobs := cron.Jobs()
			names := make([]string, 0, len(jobs))
			for name := range jobs {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(c.OutOrStdout(), "%-20s %s\n", name, jobs[name].Schedule())
			}
		},
	})
}
