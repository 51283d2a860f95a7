package pyenv

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/tycore-project/tycore/internal/diag"
)

// SitePackagesPaths is an ordered, deduplicated set of site-packages
// directories, matching the original source's SitePackagesPaths (an
// IndexSet): most environments have exactly one, but
// --system-site-packages venvs and uv ephemeral environments can extend
// a parent with a second.
type SitePackagesPaths struct {
	paths    []string
	seen     map[string]bool
	warnings error // non-fatal: some candidate lib dir was unreadable but others yielded paths
}

func newSitePackagesPaths() *SitePackagesPaths {
	return &SitePackagesPaths{seen: make(map[string]bool)}
}

// Warnings returns the combined non-fatal errors encountered while
// resolving this set (e.g. a `lib64` that exists but isn't readable),
// aggregated with multierr rather than discarded, so callers who want to
// surface them can without SitePackagesForPrefix itself having to fail.
func (s *SitePackagesPaths) Warnings() error { return s.warnings }

func (s *SitePackagesPaths) insert(path string) {
	if s.seen[path] {
		return
	}
	s.seen[path] = true
	s.paths = append(s.paths, path)
}

func (s *SitePackagesPaths) extend(other *SitePackagesPaths) {
	for _, p := range other.paths {
		s.insert(p)
	}
	s.warnings = multierr.Append(s.warnings, other.warnings)
}

// Paths returns the resolved site-packages directories in discovery
// order.
func (s *SitePackagesPaths) Paths() []string { return append([]string{}, s.paths...) }

// unixLibCandidates are the two library directory names a Unix venv's
// site-packages can live under (`lib`, and `lib64` on some distros for
// the 64-bit build).
var unixLibCandidates = []string{"lib", "lib64"}

// SitePackagesForPrefix resolves the site-packages director(y/ies) under
// sysPrefix. On Windows-style layouts the path is
// `<prefix>/Lib/site-packages`; on Unix it's
// `<prefix>/lib/pythonX.Y/site-packages`. The `pythonX.Y`/`pypyX.Y`
// directory name is never known up front here: both `lib` and `lib64`
// are always scanned concurrently via errgroup, and every
// `python*`/`pypy*` subdirectory found in either is kept.
func SitePackagesForPrefix(ctx context.Context, fs FileSystem, sysPrefix string, windows bool) (*SitePackagesPaths, error) {
	if windows {
		result := newSitePackagesPaths()
		result.insert(filepath.Join(sysPrefix, "Lib", "site-packages"))
		return result, nil
	}

	found := make([][]string, len(unixLibCandidates))
	readErrs := make([]error, len(unixLibCandidates))
	g, gctx := errgroup.WithContext(ctx)
	for i, libDir := range unixLibCandidates {
		i, libDir := i, libDir
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			dir := filepath.Join(sysPrefix, libDir)
			entries, err := fs.ReadDir(dir)
			if err != nil {
				// A missing candidate (the common case for `lib64` on most
				// distros) isn't fatal by itself; absence of every
				// candidate is handled below by the zero-candidates check.
				// The error is still kept (not silently dropped) so a
				// genuinely unexpected failure — e.g. a `lib64` that
				// exists but isn't readable — surfaces as a warning.
				readErrs[i] = err
				return nil
			}
			var versioned []string
			for _, e := range entries {
				if !e.IsDir() {
					continue
				}
				name := e.Name()
				if strings.HasPrefix(name, "python") || strings.HasPrefix(name, "pypy") {
					versioned = append(versioned, filepath.Join(dir, name, "site-packages"))
				}
			}
			found[i] = versioned
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &diag.CouldNotReadLibDirectoryError{Dir: sysPrefix, Cause: err}
	}

	result := newSitePackagesPaths()
	for _, candidates := range found {
		for _, c := range candidates {
			result.insert(c)
		}
	}
	if len(result.paths) == 0 {
		return nil, &diag.NoSitePackagesDirFoundError{SysPrefix: sysPrefix}
	}
	result.warnings = multierr.Combine(readErrs...)
	return result, nil
}

// ExpandSystemSitePackages appends the system interpreter's
// site-packages to result when cfg.IncludeSystemSitePackages is set,
// resolving the system prefix by following cfg.BaseExecutableHome up one
// level the way the original source's venv layout does (`home` points
// at the directory containing the base python executable, i.e.
// `<system-prefix>/bin`).
func ExpandSystemSitePackages(ctx context.Context, fs FileSystem, cfg *PyvenvCfg, windows bool, result *SitePackagesPaths) error {
	if !cfg.IncludeSystemSitePackages {
		return nil
	}
	systemPrefix := filepath.Dir(cfg.BaseExecutableHome)
	sys, err := SitePackagesForPrefix(ctx, fs, systemPrefix, windows)
	if err != nil {
		return err
	}
	result.extend(sys)
	return nil
}

// ResolveUVParentEnvironment follows cfg.ParentEnvironment recursively
// (a uv `--with` ephemeral environment can itself extend another venv)
// collecting every ancestor's site-packages paths, matching the original
// source's recursive parent-environment walk.
func ResolveUVParentEnvironment(ctx context.Context, fs FileSystem, cfg *PyvenvCfg, origin diag.Origin, windows bool, result *SitePackagesPaths) error {
	if cfg.ParentEnvironment == "" {
		return nil
	}
	parentCfg, err := ReadConfig(fs, cfg.ParentEnvironment, origin)
	if err != nil {
		return err
	}
	parentPaths, err := SitePackagesForPrefix(ctx, fs, cfg.ParentEnvironment, windows)
	if err != nil {
		return err
	}
	result.extend(parentPaths)
	if err := ExpandSystemSitePackages(ctx, fs, parentCfg, windows, result); err != nil {
		return err
	}
	return ResolveUVParentEnvironment(ctx, fs, parentCfg, origin, windows, result)
}
