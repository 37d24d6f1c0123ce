// Package imagegen compiles the generated objects linked next to the interpreter:
// the embedded filesystem image and the preset command line.
package imagegen

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	// FilesystemObjectName is the name the filesystem image object is linked under.
	FilesystemObjectName = "fs.o"
	// PresetArgsObjectName is the name the preset arguments object is linked under.
	PresetArgsObjectName = "preset_args.o"
)

var _ ports.ObjectGenerator = (*Generator)(nil)

// Generator implements ports.ObjectGenerator.
type Generator struct {
	runner ports.CommandRunner
	walker ports.TreeWalker
	hasher ports.Hasher
	logger ports.Logger
}

// NewGenerator creates a new Generator.
func NewGenerator(runner ports.CommandRunner, walker ports.TreeWalker, hasher ports.Hasher, logger ports.Logger) *Generator {
	return &Generator{
		runner: runner,
		walker: walker,
		hasher: hasher,
		logger: logger,
	}
}

// GenerateFilesystem embeds every file named by spec into one object.
// Directory mappings are walked recursively; a later mapping of the same
// guest path replaces the earlier one.
func (g *Generator) GenerateFilesystem(
	ctx context.Context, tc domain.Toolchain, workDir string, spec domain.VfsImageSpec,
) (domain.Object, error) {
	g.logger.Info("generating vfs image")

	files, err := g.collect(spec)
	if err != nil {
		return domain.Object{}, err
	}
	if err := readContents(ctx, files); err != nil {
		return domain.Object{}, err
	}

	digest := g.hasher.Digest(spec)
	g.logger.Debug(fmt.Sprintf("vfs image %s: %d mappings, %d files", digest, spec.Len(), len(files)))

	src := renderFilesystem(files)
	obj, err := g.compile(ctx, tc, workDir, "fs.c", src)
	if err != nil {
		return domain.Object{}, err
	}
	return domain.Object{Name: FilesystemObjectName, Bytes: obj, Source: src}, nil
}

// GeneratePresetArgs compiles an object that reports argv0 and args as the program arguments.
func (g *Generator) GeneratePresetArgs(
	ctx context.Context, tc domain.Toolchain, workDir, argv0 string, args []string,
) (domain.Object, error) {
	g.logger.Info("generating preset arguments data")

	src := renderPresetArgs(argv0, args)
	obj, err := g.compile(ctx, tc, workDir, "preset-args.c", src)
	if err != nil {
		return domain.Object{}, err
	}
	return domain.Object{Name: PresetArgsObjectName, Bytes: obj, Source: src}, nil
}

func (g *Generator) collect(spec domain.VfsImageSpec) ([]embeddedFile, error) {
	var files []embeddedFile
	index := make(map[string]int)

	add := func(guest, host string) {
		guest = path.Clean("/" + guest)
		if i, ok := index[guest]; ok {
			files[i].host = host
			return
		}
		index[guest] = len(files)
		files = append(files, embeddedFile{guest: guest, host: host})
	}

	for _, m := range spec.Mappings() {
		info, err := os.Stat(m.Host)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrImageGenerationFailed.Error()), "mapping", m.String())
		}
		if !info.IsDir() {
			add(m.Guest, m.Host)
			continue
		}

		for file, err := range g.walker.WalkFiles(m.Host) {
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrImageGenerationFailed.Error()), "mapping", m.String())
			}
			rel, err := filepath.Rel(m.Host, file)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrImageGenerationFailed.Error()), "path", file)
			}
			add(path.Join(m.Guest, filepath.ToSlash(rel)), file)
		}
	}
	return files, nil
}

// readContents loads the host files in parallel; results keep the order of files.
func readContents(ctx context.Context, files []embeddedFile) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(files[i].host)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrImageGenerationFailed.Error()), "path", files[i].host)
			}
			files[i].data = data
			return nil
		})
	}
	return g.Wait()
}

// compile runs clang on src inside dir and returns the object bytes.
// Both the source and the object stay in dir.
func (g *Generator) compile(ctx context.Context, tc domain.Toolchain, dir, srcName string, src []byte) ([]byte, error) {
	srcPath := filepath.Join(dir, srcName)
	if err := os.WriteFile(srcPath, src, domain.FilePerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrImageGenerationFailed.Error()), "path", srcPath)
	}

	objPath := filepath.Join(dir, strings.TrimSuffix(srcName, ".c")+".o")
	err := g.runner.Run(ctx, &domain.Command{
		Name:        tc.CC(),
		Args:        []string{"--target=wasm32-wasi", "--sysroot=" + tc.Sysroot(), "-c", srcPath, "-o", objPath},
		Dir:         dir,
		Description: "clang " + srcName,
	})
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrImageGenerationFailed.Error())
	}

	obj, err := os.ReadFile(objPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrImageGenerationFailed.Error()), "path", objPath)
	}
	return obj, nil
}
