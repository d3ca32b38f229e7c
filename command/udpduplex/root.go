// Copyright 2022-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package udpduplex

import (
	"github.com/saucelabs/udpduplex/bind"
	"github.com/saucelabs/udpduplex/command/run"
	"github.com/saucelabs/udpduplex/command/version"
	"github.com/saucelabs/udpduplex/utils/cobrautil"
	"github.com/spf13/cobra"
)

const (
	EnvPrefix          = "UDPDUPLEX"
	ConfigFileFlagName = "config-file"
)

// Command returns the root command, it runs the session directly:
//
//	udpduplex <local_port> <peer_ip> <peer_port> [flags]
func Command() *cobra.Command {
	cmd := run.Command()
	cmd.Use = "udpduplex <local_port> <peer_ip> <peer_port> [flags]"
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return cobrautil.BindAll(cmd, EnvPrefix, ConfigFileFlagName)
	}
	bind.ConfigFile(cmd.PersistentFlags(), new(string))

	cmd.AddCommand(version.Command())
	cobrautil.AddConfigFileForEachCommand(cmd, ConfigFileFlagName)

	bind.AutoMarkFlagFilename(cmd)
	cobrautil.SetFlagUsages(cmd, EnvPrefix, 80)
	cobrautil.WrapLong(cmd, 80)
	cobrautil.NoHelpSubcommand(cmd)

	return cmd
}
