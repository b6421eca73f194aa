package main

import (
	"github.com/urfave/cli/v3"
)

// getCommands returns every subcommand, tagged with its help category.
func getCommands(version string) []*cli.Command {
	groups := []struct {
		category string
		commands []*cli.Command
	}{
		{"system", getSystemCommands(version)},
		{"auth", getAuthCommands()},
	}

	var cmds []*cli.Command
	for _, group := range groups {
		for _, cmd := range group.commands {
			cmd.Category = group.category
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}
