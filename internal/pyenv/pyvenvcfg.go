package pyenv

import (
	"path/filepath"
	"strings"

	"github.com/tycore-project/tycore/internal/diag"
)

// PyvenvCfg is the parsed contents of a pyvenv.cfg file: the lenient
// key=value format CPython's site.py itself tolerates (lines without
// '=' are skipped outright, not errors), per the original source's
// PyvenvCfgParser.
type PyvenvCfg struct {
	BaseExecutableHome       string
	IncludeSystemSitePackages bool
	Version                  string
	Implementation           string
	CreatedWithUV            bool
	ParentEnvironment        string
}

// ParseConfig parses the contents of a pyvenv.cfg file found at path
// (used only for error messages). Grounded line-for-line on
// PyvenvCfgParser::parse_line in the original source: trim whitespace
// around key and value, skip lines with no '=', require a non-empty
// value and a non-empty key, and require a `home` key be present by the
// end of parsing.
func ParseConfig(path, contents string) (*PyvenvCfg, error) {
	cfg := &PyvenvCfg{}
	lines := strings.Split(contents, "\n")
	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimRight(raw, "\r")
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			// No '=' on this line: skip, same as CPython's site.py.
			continue
		}
		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])
		if value == "" {
			return nil, &diag.PyvenvCfgParseError{Path: path, Kind: diag.ParseErrEmptyKey, Line: lineNo}
		}
		switch key {
		case "":
			return nil, &diag.PyvenvCfgParseError{Path: path, Kind: diag.ParseErrEmptyKey, Line: lineNo}
		case "include-system-site-packages":
			cfg.IncludeSystemSitePackages = strings.EqualFold(value, "true")
		case "home":
			cfg.BaseExecutableHome = value
		case "version", "version_info":
			cfg.Version = value
		case "implementation":
			cfg.Implementation = strings.ToLower(value)
		case "uv":
			cfg.CreatedWithUV = true
		case "extends-environment":
			cfg.ParentEnvironment = value
		}
	}

	if cfg.BaseExecutableHome == "" {
		return nil, &diag.PyvenvCfgParseError{Path: path, Kind: diag.ParseErrNoHomeKey}
	}
	if !filepath.IsAbs(cfg.BaseExecutableHome) {
		return nil, &diag.PyvenvCfgParseError{Path: path, Kind: diag.ParseErrInvalidHomeValue}
	}
	return cfg, nil
}

// ReadConfig locates and parses sysPrefix's pyvenv.cfg via fs.
func ReadConfig(fs FileSystem, sysPrefix string, origin diag.Origin) (*PyvenvCfg, error) {
	path := filepath.Join(sysPrefix, "pyvenv.cfg")
	contents, err := fs.ReadFile(path)
	if err != nil {
		return nil, &diag.NoPyvenvCfgFileError{SysPrefix: sysPrefix, Origin: origin}
	}
	return ParseConfig(path, contents)
}
