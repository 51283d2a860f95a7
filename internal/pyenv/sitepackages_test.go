package pyenv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycore-project/tycore/internal/diag"
)

func TestSitePackagesForPrefixWindowsIsSingleFixedPath(t *testing.T) {
	fs := newFakeFileSystem()
	result, err := SitePackagesForPrefix(context.Background(), fs, `C:\venv`, true)
	require.NoError(t, err)
	assert.Equal(t, []string{`C:\venv\Lib\site-packages`}, result.Paths())
}

func TestSitePackagesForPrefixUnixScansLibAndLib64(t *testing.T) {
	fs := newFakeFileSystem()
	fs.addDir("/venv/lib", fakeDirEntry{name: "python3.12", isDir: true})
	result, err := SitePackagesForPrefix(context.Background(), fs, "/venv", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"/venv/lib/python3.12/site-packages"}, result.Paths())
}

func TestSitePackagesForPrefixNoCandidatesIsError(t *testing.T) {
	fs := newFakeFileSystem()
	_, err := SitePackagesForPrefix(context.Background(), fs, "/venv", false)
	require.Error(t, err)
	_, ok := err.(*diag.NoSitePackagesDirFoundError)
	assert.True(t, ok)
}

func TestSitePackagesForPrefixKeepsBothLibAndLib64(t *testing.T) {
	fs := newFakeFileSystem()
	fs.addDir("/venv/lib", fakeDirEntry{name: "python3.12", isDir: true})
	fs.addDir("/venv/lib64", fakeDirEntry{name: "python3.12", isDir: true})
	result, err := SitePackagesForPrefix(context.Background(), fs, "/venv", false)
	require.NoError(t, err)
	assert.Len(t, result.Paths(), 2)
}

func TestExpandSystemSitePackagesNoOpWhenNotRequested(t *testing.T) {
	fs := newFakeFileSystem()
	cfg := &PyvenvCfg{IncludeSystemSitePackages: false}
	result := newSitePackagesPaths()
	err := ExpandSystemSitePackages(context.Background(), fs, cfg, false, result)
	require.NoError(t, err)
	assert.Empty(t, result.Paths())
}

func TestExpandSystemSitePackagesAppendsSystemPaths(t *testing.T) {
	fs := newFakeFileSystem()
	fs.addDir("/usr/lib", fakeDirEntry{name: "python3.12", isDir: true})
	cfg := &PyvenvCfg{IncludeSystemSitePackages: true, BaseExecutableHome: "/usr/bin"}
	result := newSitePackagesPaths()
	result.insert("/venv/lib/python3.12/site-packages")
	err := ExpandSystemSitePackages(context.Background(), fs, cfg, false, result)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/venv/lib/python3.12/site-packages",
		"/usr/lib/python3.12/site-packages",
	}, result.Paths())
}

func TestResolveUVParentEnvironmentFollowsChain(t *testing.T) {
	fs := newFakeFileSystem()
	fs.addFile("/parent/pyvenv.cfg", "home = /usr/bin\n")
	fs.addDir("/parent/lib", fakeDirEntry{name: "python3.12", isDir: true})

	cfg := &PyvenvCfg{ParentEnvironment: "/parent"}
	result := newSitePackagesPaths()
	err := ResolveUVParentEnvironment(context.Background(), fs, cfg, diag.OriginCLIFlag, false, result)
	require.NoError(t, err)
	assert.Equal(t, []string{"/parent/lib/python3.12/site-packages"}, result.Paths())
}

func TestResolveUVParentEnvironmentNoOpWhenEmpty(t *testing.T) {
	fs := newFakeFileSystem()
	cfg := &PyvenvCfg{}
	result := newSitePackagesPaths()
	err := ResolveUVParentEnvironment(context.Background(), fs, cfg, diag.OriginCLIFlag, false, result)
	require.NoError(t, err)
	assert.Empty(t, result.Paths())
}
