// Copyright 2022-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package udpduplex

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	cmd := Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "Version:\t devel\n") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestConfigFileCommand(t *testing.T) {
	cmd := Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config-file"})

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"#poll-interval: 10ms\n", "#read-buffer-size: 512\n", "#log-level: info\n"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q:\n%s", want, out.String())
		}
	}
	if strings.Contains(out.String(), "goleak") {
		t.Error("hidden flag in config file template")
	}
}

func TestEnvBinding(t *testing.T) {
	t.Setenv("UDPDUPLEX_LOG_LEVEL", "verbose")

	cmd := Command()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"0", "127.0.0.1", "9"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `unknown log level "verbose"`) {
		t.Errorf("unexpected error: %s", err)
	}
}

func TestHelpFlags(t *testing.T) {
	cmd := Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	help := out.String()

	for _, want := range []string{
		"      --log-file <path>\n        Path to the log file,",
		"      --read-buffer-size <bytes>\n        Size of the receive buffer.",
		"      --api-address <host:port>\n        The API server address",
		"(env UDPDUPLEX_POLL_INTERVAL)",
		"  -c, --config-file <path>\n",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help does not contain %q:\n%s", want, help)
		}
	}
	for _, bad := range []string{"path Path", "bytes Size", "host:port The", "goleak"} {
		if strings.Contains(help, bad) {
			t.Errorf("help contains %q:\n%s", bad, help)
		}
	}
}
