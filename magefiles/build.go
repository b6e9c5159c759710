//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the windowed aviator program into bin/.
func (Build) Aviator() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/aviator", "examples/aviator.go"), withStream())
	return err
}

// Builds the sea drift analyzer into bin/.
func (Build) SeaDrift() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/seadrift", "examples/seadrift.go"), withStream())
	return err
}
