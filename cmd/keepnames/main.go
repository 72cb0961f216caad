package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/alecthomas/errors"
	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"

	"github.com/alecthomas/keepnames/internal/flock"
	"github.com/alecthomas/keepnames/internal/keepfile"
	"github.com/alecthomas/keepnames/internal/keepnames"
	"github.com/alecthomas/keepnames/internal/logging"
	"github.com/alecthomas/keepnames/internal/manifest"
)

var cli struct {
	Version     kong.VersionFlag   `help:"Print the version and exit."`
	Config      kong.ConfigFlag    `help:"Load flags from this TOML file." placeholder:"FILE"`
	Chdir       kong.ChangeDirFlag `help:"Change to this directory before running." placeholder:"DIR" short:"C"`
	Output      string             `help:"Keep file to generate." default:"${output}" short:"o" type:"path"`
	RootType    string             `help:"Root of the class hierarchy, never walked as a superclass." default:"${root}"`
	List        bool               `help:"Print keep names to stdout instead of writing the keep file."`
	LockTimeout time.Duration      `help:"How long to wait for the lock on <output>.lock, which is removed after writing. Zero makes a single attempt." default:"0s"`
	Log         logging.Config     `embed:"" prefix:"log-"`
	Manifests   []string           `help:"Manifests describing the annotated classes." arg:"" type:"existingfile"`
}

func main() {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		version = info.Main.Version
	}
	kctx := kong.Parse(&cli,
		kong.Description("Generate ProGuard -keepnames rules for the classes reachable from a Dagger object graph."),
		kong.Configuration(kongtoml.Loader, "keepnames.toml"),
		kong.Vars{
			"version": version,
			"output":  keepfile.DefaultFilename,
			"root":    keepnames.DefaultRootType,
		},
	)
	logger := logging.New(cli.Log, os.Stderr)

	root, paths, err := manifestPaths(cli.Manifests)
	kctx.FatalIfErrorf(err)
	result, err := manifest.Load(os.DirFS(root), paths, manifest.WithRootType(cli.RootType))
	kctx.FatalIfErrorf(err)

	logger.Debug("Loaded manifests", "manifests", len(paths), "seeds", result.Seeds.Len())
	keep, err := keepnames.Collect(result.Graph, result.Seeds,
		keepnames.WithRootType(cli.RootType),
		keepnames.WithLogger(logger),
	)
	kctx.FatalIfErrorf(err)

	if cli.List {
		for _, name := range keep.Names() {
			fmt.Println(name)
		}
		return
	}

	err = writeKeepFile(context.Background(), logger, cli.Output, keep.Names(), cli.LockTimeout)
	kctx.FatalIfErrorf(err)
}

// writeKeepFile writes names to output while holding an exclusive lock on <output>.lock.
func writeKeepFile(ctx context.Context, logger *slog.Logger, output string, names []string, lockTimeout time.Duration) error {
	release, err := flock.Acquire(ctx, output+".lock", lockTimeout)
	if err != nil {
		return errors.WithStack(err)
	}
	defer release() //nolint:errcheck
	written, err := keepfile.Write(output, names)
	if err != nil {
		return errors.WithStack(err)
	}
	if written {
		logger.Info("Generated output file", "path", output, "names", len(names))
	} else {
		logger.Info("Nothing to keep, leaving existing output file untouched", "path", output)
	}
	return nil
}

// manifestPaths converts manifest paths into a filesystem root and slash-separated paths relative
// to it, as required by [io/fs]. All manifests must be on the same volume.
func manifestPaths(manifests []string) (root string, paths []string, err error) {
	root = "/"
	for i, path := range manifests {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", nil, errors.Errorf("%s: %w", path, err)
		}
		volume := filepath.VolumeName(abs)
		if i == 0 {
			root = volume + string(filepath.Separator)
		} else if volume+string(filepath.Separator) != root {
			return "", nil, errors.Errorf("%s: manifests must be on the same volume as %s", path, manifests[0])
		}
		paths = append(paths, strings.TrimPrefix(filepath.ToSlash(abs[len(volume):]), "/"))
	}
	return root, paths, nil
}
