package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/meletao/internal/auth"
)

func init() {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		Long:  "Show the current user, read from $" + auth.UserEnv + " as a name or a {\"firstName\": ...} object.",
		Run:   runWhoami,
	}

	RootCmd.AddCommand(cmd)
}

type whoamiResult struct {
	LoggedIn bool       `json:"logged_in"`
	User     *auth.User `json:"user"`
}

func runWhoami(cmd *cobra.Command, args []string) {
	res := whoamiResult{LoggedIn: auth.IsLoggedIn(), User: auth.CurrentUser()}
	output(cmd.OutOrStdout(), res, func(w io.Writer) {
		if res.User == nil {
			fmt.Fprintln(w, "Welcome.")
			return
		}
		fmt.Fprintf(w, "Welcome, %s.\n", res.User.FirstName)
	})
}
