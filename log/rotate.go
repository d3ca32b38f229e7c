// Copyright 2022-2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// closeOldFileDelay gives in-flight writes to the old file time to finish after Reopen.
const closeOldFileDelay = 5 * time.Second

// RotatableFile is a log file that is reopened on SIGHUP, so that it works with logrotate.
type RotatableFile struct {
	f    atomic.Pointer[os.File]
	ch   chan os.Signal
	once sync.Once
}

func NewRotatableFile(f *os.File) *RotatableFile {
	w := &RotatableFile{
		ch: make(chan os.Signal, 1),
	}
	w.f.Store(f)
	signal.Notify(w.ch, syscall.SIGHUP)
	go w.reopenOnSignal()
	return w
}

func (w *RotatableFile) Write(p []byte) (n int, err error) {
	return w.f.Load().Write(p)
}

// Reopen opens the file by name again and swaps it in.
func (w *RotatableFile) Reopen() error {
	old := w.f.Load()
	nf, err := os.OpenFile(old.Name(), DefaultFileFlags, DefaultFileMode)
	if err != nil {
		return err
	}
	w.f.Store(nf)

	time.AfterFunc(closeOldFileDelay, func() {
		if err := old.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close old log file: %v\n", err)
		}
	})

	return nil
}

func (w *RotatableFile) Close() error {
	w.once.Do(func() {
		signal.Stop(w.ch)
		close(w.ch)
	})
	return w.f.Load().Close()
}

func (w *RotatableFile) reopenOnSignal() {
	for range w.ch {
		if err := w.Reopen(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to rotate log file: %v\n", err)
		}
	}
}
