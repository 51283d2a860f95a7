package pyenv

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/tycore-project/tycore/internal/diag"
)

// Environment is the resolved set of paths module resolution needs:
// where the standard library lives, and every site-packages directory
// to search (in priority order) for third-party packages.
type Environment struct {
	SysPrefix     string
	Stdlib        string
	SitePackages  []string
	CreatedWithUV bool

	// Warnings aggregates non-fatal issues encountered while resolving
	// SitePackages (e.g. an unreadable lib64 alongside a usable lib).
	// Discovery as a whole still succeeds; callers decide whether to
	// surface these.
	Warnings error
}

// Discover resolves an Environment starting from candidate, a path
// supplied via origin (a CLI flag, $VIRTUAL_ENV, a local .venv, a conda
// prefix, or the system interpreter) via an executable→prefix derivation
// pipeline: canonicalize candidate, derive sys.prefix
// from it, require and parse pyvenv.cfg when origin implies a venv,
// resolve site-packages (expanding --system-site-packages and uv parent
// environments), and locate the standard library under the resolved
// home.
func Discover(ctx context.Context, origin diag.Origin, candidate string, fs FileSystem) (*Environment, error) {
	canonical, err := fs.EvalSymlinks(candidate)
	if err != nil {
		return nil, &diag.CanonicalizationIoError{Path: candidate, Origin: origin, Cause: err}
	}

	info, err := fs.Stat(canonical)
	if err != nil {
		return nil, &diag.PathNotExecutableOrDirectoryError{Path: canonical, Origin: origin}
	}

	sysPrefix := canonical
	if !info.IsDir() {
		// candidate is an interpreter executable: sys.prefix is two
		// levels up from a Unix `<prefix>/bin/python3`, one level up from
		// a Windows `<prefix>/python.exe`.
		if runtime.GOOS == "windows" {
			sysPrefix = filepath.Dir(canonical)
		} else {
			sysPrefix = filepath.Dir(filepath.Dir(canonical))
		}
	}

	windows := runtime.GOOS == "windows"

	cfg, cfgErr := ReadConfig(fs, sysPrefix, origin)
	if cfgErr != nil {
		if _, isParseErr := cfgErr.(*diag.PyvenvCfgParseError); isParseErr {
			return nil, cfgErr
		}
		// No pyvenv.cfg at all: sysPrefix may be a plain system
		// interpreter install rather than a venv, which is only an error
		// when origin explicitly claimed to be pointing at a venv.
		if venvOrigin(origin) {
			return nil, cfgErr
		}
		cfg = &PyvenvCfg{}
	}

	sitePackages, err := SitePackagesForPrefix(ctx, fs, sysPrefix, windows)
	if err != nil {
		return nil, err
	}

	if err := ExpandSystemSitePackages(ctx, fs, cfg, windows, sitePackages); err != nil {
		return nil, err
	}
	if err := ResolveUVParentEnvironment(ctx, fs, cfg, origin, windows, sitePackages); err != nil {
		return nil, err
	}

	home := sysPrefix
	if cfg.BaseExecutableHome != "" {
		home = cfg.BaseExecutableHome
	}
	stdlib, err := findStdlib(fs, home, windows)
	if err != nil {
		return nil, err
	}

	return &Environment{
		SysPrefix:     sysPrefix,
		Stdlib:        stdlib,
		SitePackages:  sitePackages.Paths(),
		CreatedWithUV: cfg.CreatedWithUV,
		Warnings:      sitePackages.Warnings(),
	}, nil
}

func venvOrigin(o diag.Origin) bool {
	switch o {
	case diag.OriginEnvVar, diag.OriginLocalDotVenv, diag.OriginCLIFlag:
		return true
	default:
		return false
	}
}

// findStdlib locates the standard library directory for an interpreter
// whose base executable lives under home. On Unix this is a sibling
// `lib/pythonX.Y` of home's `bin`; on Windows it's `home/Lib`.
func findStdlib(fs FileSystem, home string, windows bool) (string, error) {
	if windows {
		candidate := filepath.Join(home, "Lib")
		if _, err := fs.Stat(candidate); err == nil {
			return candidate, nil
		}
		return "", &diag.NoStdlibFoundError{Home: home}
	}

	base := filepath.Dir(home) // home is typically `<prefix>/bin`
	for _, libDir := range unixLibCandidates {
		dir := filepath.Join(base, libDir)
		entries, err := fs.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() && (hasPrefix(e.Name(), "python") || hasPrefix(e.Name(), "pypy")) {
				return filepath.Join(dir, e.Name()), nil
			}
		}
	}
	return "", &diag.NoStdlibFoundError{Home: home}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
