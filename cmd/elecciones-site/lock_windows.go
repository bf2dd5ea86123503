//go:build windows
// +build windows

package main

import "os"

// No advisory locks on Windows; concurrent renders are not prevented.
func lock(f *os.File) error   { return nil }
func unlock(f *os.File) error { return nil }
