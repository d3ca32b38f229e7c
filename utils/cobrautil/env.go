// Copyright 2023-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cobrautil

import (
	"strings"
)

func EnvName(envPrefix, flagName string) string {
	return strings.ToUpper(envPrefix) + "_" + strings.ToUpper(envReplacer.Replace(flagName))
}
