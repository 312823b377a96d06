//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the rolodex project using Mage.
//
// Usage:
//
//	mage build       Compile the rolodex binary to bin/
//	mage test:all    Run all tests
//	mage test:short  Run tests with -short
//	mage test:cover  Run tests and write coverage.out
//	mage lint        Run golangci-lint
//	mage vet         Run go vet
//	mage clean       Remove build artifacts
//	mage install     Install rolodex to GOPATH/bin
//	mage stats       Print Go lines of code
package main

import "fmt"

// logf prints a progress line prefixed with the target name.
func logf(format string, args ...any) {
	fmt.Printf("mage: "+format+"\n", args...)
}
