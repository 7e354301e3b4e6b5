package sys_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msandiford/freemint/internal/testmint"
)

func TestAbResolvesToAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	got := testmint.New("#(ow,#(ab,.))").Result()
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, resolved, got)
}

func TestCtReturnsEmptyForMissingFile(t *testing.T) {
	assert.Equal(t, "", testmint.New("#(ow,#(ct,/no/such/file,))").Result())
}

func TestCtReturnsNonemptyTimestampForCurrentTime(t *testing.T) {
	got := testmint.New("#(ow,#(ct,,))").Result()
	assert.NotEmpty(t, got)
}

func TestFfListsMatchingBasenames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.dat"), nil, 0o644))

	pattern := filepath.Join(dir, "*.txt")
	script := fmt.Sprintf("#(ow,#(ff,%s, ))", pattern)
	got := testmint.New(script).Result()
	assert.Contains(t, got, "a.txt ")
	assert.Contains(t, got, "b.txt ")
	assert.NotContains(t, got, "c.dat")
}

func TestRnRenamesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "old.txt")
	dst := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(src, []byte("hi"), 0o644))

	script := fmt.Sprintf("#(ow,#(rn,%s,%s))", src, dst)
	assert.Equal(t, "", testmint.New(script).Result())
	_, err := os.Stat(dst)
	assert.NoError(t, err)
}

func TestRnReportsErrorOnMissingSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "nope.txt")
	dst := filepath.Join(dir, "new.txt")
	script := fmt.Sprintf("#(ow,#(rn,%s,%s))", src, dst)
	assert.NotEmpty(t, testmint.New(script).Result())
}

func TestDeRemovesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0o644))

	script := fmt.Sprintf("#(ow,#(de,%s))", path)
	assert.Equal(t, "", testmint.New(script).Result())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestEvPopulatesEnvForms(t *testing.T) {
	script := "#(ev)#(ow,#(gs,env.FULLPATH)x#(gs,env.GREETING))"
	got := testmint.NewWithEnv(script, []string{"/bin/freemint", "-x"}, []string{"GREETING=hi"})
	assert.Equal(t, "/bin/freemintxhi", got.Result())
}

func TestSystemVariables(t *testing.T) {
	assert.Equal(t, "440", testmint.New("#(ow,#(lv,bp))").Result())
	assert.Equal(t, "0", testmint.New("#(ow,#(lv,is))").Result())
	assert.NotEmpty(t, testmint.New("#(ow,#(lv,cd))").Result())
}

func TestSdVarFallsBackToDotWithoutTmpEnv(t *testing.T) {
	for _, name := range []string{"EMACSTMP", "TMP", "TEMP"} {
		old, ok := os.LookupEnv(name)
		os.Unsetenv(name)
		if ok {
			defer os.Setenv(name, old)
		}
	}
	assert.Equal(t, ".", testmint.New("#(ow,#(lv,sd))").Result())
}
