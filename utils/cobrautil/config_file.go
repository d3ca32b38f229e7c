// Copyright 2023-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cobrautil

import (
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ConfigFileCommand returns a hidden command that prints a YAML config file template with all the flags of fs.
func ConfigFileCommand(fs *pflag.FlagSet, configFileFlagName string) *cobra.Command {
	return &cobra.Command{
		Use:    "config-file",
		Short:  "Print config file template",
		Args:   cobra.NoArgs,
		Hidden: true,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fs.VisitAll(func(f *pflag.Flag) {
				if f.Hidden || f.Name == configFileFlagName || f.Name == "help" {
					return
				}
				writeYAMLFlag(w, f, 80)
			})
		},
	}
}

func writeYAMLFlag(w io.Writer, f *pflag.Flag, wrapLimit uint) {
	_, usage := flagNameAndUsage(f)
	usage = wordwrap.WrapString(strings.TrimSpace(usage), wrapLimit-2)

	def := f.DefValue
	if def == "[]" {
		def = ""
	}
	if def != "" {
		def = " " + def
	}

	fmt.Fprintf(w, "# %s\n#\n#%s:%s\n\n", strings.ReplaceAll(usage, "\n", "\n# "), f.Name, def)
}

// AddConfigFileForEachCommand adds the config-file command to cmd and all its subcommands that have flags.
func AddConfigFileForEachCommand(cmd *cobra.Command, configFileFlagName string) {
	for _, c := range cmd.Commands() {
		AddConfigFileForEachCommand(c, configFileFlagName)
	}

	if cmd.IsAvailableCommand() && cmd.Flags().HasAvailableFlags() {
		cmd.AddCommand(ConfigFileCommand(cmd.Flags(), configFileFlagName))
	}
}
