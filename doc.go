// Copyright 2022-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package udpduplex provides a bidirectional UDP session for checking connectivity between two hosts.
// A session binds a local UDP port, sends a counter-tagged greeting to a single peer once per second,
// and prints every datagram it receives.
// Two sessions configured as each other's peers form a ping-pong pair.
package udpduplex
