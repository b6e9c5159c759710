//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds and runs the aviator program with aviator.toml when present.
func (Run) Aviator() error {
	mg.Deps(Build.Aviator)
	fmt.Println("Run aviator...")
	args := []string{}
	if fileExists("aviator.toml") {
		args = append(args, "-config", "aviator.toml")
	}
	_, err := executeCmd("bin/aviator", withArgs(args...), withStream())
	return err
}

// Runs a short headless drift analysis.
func (Run) SeaDrift() error {
	mg.Deps(Build.SeaDrift)
	_, err := executeCmd("bin/seadrift", withArgs("-seeds", "16", "-frames", "1200"), withStream())
	return err
}
