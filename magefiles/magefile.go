//go:build mage

// Package main provides build targets for the simplepool SDK using Mage.
//
// Usage:
//
//	mage build            Compile the simplepool CLI to bin/
//	mage test             Run unit tests
//	mage testIntegration  Run tests against live networks (RUN_INTEGRATION=1)
//	mage lint             Run golangci-lint
//	mage clean            Remove build artifacts
//	mage install          Install simplepool to GOPATH/bin
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "simplepool"
	binaryDir  = "bin"
	cmdDir     = "./cmd/simplepool"
)

// Build compiles the simplepool binary to bin/, stamping the git version.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	ldflags := "-X main.version=" + gitVersion()
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags, "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs unit tests with the race detector.
func Test() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// TestIntegration runs the tests gated on RUN_INTEGRATION.
func TestIntegration() error {
	return sh.RunWithV(map[string]string{"RUN_INTEGRATION": "1"}, binGo, "test", "-count=1", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}

func gitVersion() string {
	output, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || strings.TrimSpace(output) == "" {
		return "dev"
	}
	return strings.TrimSpace(output)
}
