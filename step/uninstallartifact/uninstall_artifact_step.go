package uninstallartifact

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/forgeqa/plugmatrix/runtime"
	"github.com/forgeqa/plugmatrix/step"
)

// UninstallArtifactStep removes the installed plugin package from the target
// interpreter. The clean flow runs it after the plugin binaries are removed,
// while the package is still importable for the plugin directory query.
type UninstallArtifactStep struct {
	step.BaseStep
	// Package is the importable name of the plugin package to uninstall.
	Package string
}

// NewUninstallArtifactStep creates the step for the given package name.
func NewUninstallArtifactStep(pkg string) *UninstallArtifactStep {
	return &UninstallArtifactStep{
		BaseStep: step.NewBaseStep("uninstall-artifact", "Uninstall the plugin package"),
		Package:  pkg,
	}
}

func (s *UninstallArtifactStep) Init(rt runtime.Runtime, log *logrus.Entry) error {
	if err := s.BaseStep.Init(rt, log); err != nil {
		return err
	}
	if s.Package == "" {
		return fmt.Errorf("package name cannot be empty for step %s", s.Name())
	}
	return nil
}

func (s *UninstallArtifactStep) Execute(rt runtime.Runtime, log *logrus.Entry) (string, bool, error) {
	log.Infof("Uninstalling package %s", s.Package)

	output, err := rt.GetToolchain().UninstallPackage(context.Background(), s.Package, rt.ExecOptions())
	if err != nil {
		return output, false, err
	}
	return output, true, nil
}

var _ step.Step = (*UninstallArtifactStep)(nil)
