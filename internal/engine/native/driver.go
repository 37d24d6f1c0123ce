package native

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
	"go.trai.ch/zerr"
)

// Driver runs bootstrap, configure and make install for a recipe.
type Driver struct {
	runner    ports.CommandRunner
	workspace ports.Workspace
	jobs      int
}

// NewDriver creates a new Driver handing jobs to make.
func NewDriver(runner ports.CommandRunner, workspace ports.Workspace, jobs int) *Driver {
	if jobs < 1 {
		jobs = 1
	}
	return &Driver{
		runner:    runner,
		workspace: workspace,
		jobs:      jobs,
	}
}

// Build configures the source tree in buildDir and installs it into installDir.
// The steps run strictly in order and the first failure aborts the build.
func (d *Driver) Build(
	ctx context.Context,
	tc domain.Toolchain,
	recipe Recipe,
	input domain.BuildInput,
	sourceDir, buildDir, installDir string,
) error {
	sourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrBootstrapFailed.Error()), "dir", sourceDir)
	}

	if recipe.Bootstrap != "" {
		err := d.runner.Run(ctx, &domain.Command{
			Name:        filepath.Join(sourceDir, recipe.Bootstrap),
			Dir:         sourceDir,
			Description: "./" + recipe.Bootstrap,
		})
		if err != nil {
			return stageError(err, domain.ErrBootstrapFailed, recipe, "bootstrap")
		}
	}

	if err := os.MkdirAll(buildDir, domain.DirPerm); err != nil {
		return stageError(err, domain.ErrConfigureFailed, recipe, "configure")
	}

	err = d.runner.Run(ctx, &domain.Command{
		Name:        filepath.Join(sourceDir, "configure"),
		Args:        recipe.Configure(tc, input, installDir),
		Dir:         buildDir,
		Description: "./configure",
	})
	if err != nil {
		return stageError(err, domain.ErrConfigureFailed, recipe, "configure")
	}

	return d.install(ctx, recipe, buildDir)
}

func (d *Driver) install(ctx context.Context, recipe Recipe, buildDir string) (err error) {
	cmd := &domain.Command{
		Name:        "make",
		Args:        []string{"install", "-j" + strconv.Itoa(d.jobs)},
		Dir:         buildDir,
		Description: "make install",
	}

	if len(recipe.Shadowed) > 0 {
		dir, release, shadowErr := d.workspace.ShadowCommands(recipe.Shadowed)
		if shadowErr != nil {
			return stageError(shadowErr, domain.ErrInstallFailed, recipe, "install")
		}
		defer func() {
			err = errors.Join(err, release())
		}()
		cmd.PathPrepend = []string{dir}
	}

	if runErr := d.runner.Run(ctx, cmd); runErr != nil {
		return stageError(runErr, domain.ErrInstallFailed, recipe, "install")
	}
	return nil
}

func stageError(err, sentinel error, recipe Recipe, stage string) error {
	wrapped := zerr.With(zerr.Wrap(err, sentinel.Error()), "stage", stage)
	return zerr.With(wrapped, "package", recipe.Name)
}
