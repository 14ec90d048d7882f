// Package cmd implements the CLI application to settle shared expenses.
package cmd

import "github.com/google/subcommands"

// Commands is the list of subcommands.
// A main package registers them on a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&settleCmd{},
	&balancesCmd{},
	&checkCmd{},
	&topicCmd{},
}
