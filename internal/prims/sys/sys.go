// Package sys implements the operating-system-facing primitive family
// (ab, hl, ct, ff, rn, de, ev) and the bp/cd/cn/is/sd system variables.
package sys

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/ncruces/go-strftime"

	"github.com/msandiford/freemint/internal/interp"
	"github.com/msandiford/freemint/internal/mintarg"
	"github.com/msandiford/freemint/internal/mintstr"
)

// NewPrims returns the system primitive family, keyed by name. argv and
// envp feed the ev primitive's env.* form population.
func NewPrims(argv []string, envp []string) map[string]interp.Prim {
	return map[string]interp.Prim{
		"ab": abPrim{},
		"hl": hlPrim{},
		"ct": ctPrim{},
		"ff": ffPrim{},
		"rn": rnPrim{},
		"de": dePrim{},
		"ev": evPrim{argv: argv, envp: envp},
	}
}

// NewVars returns the bp/cd/cn/is/sd system variables, keyed by name.
func NewVars() map[string]interp.Var {
	return map[string]interp.Var{
		"bp": bpVar{},
		"cd": cdVar{},
		"cn": cnVar{},
		"is": isVar{},
		"sd": sdVar{},
	}
}

// abPrim implements #(ab,X): the absolute path for X, falling back to
// X unchanged if it cannot be resolved.
type abPrim struct{}

func (abPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	path := string(args.At(1).Value)
	if abs, err := filepath.Abs(path); err == nil {
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			m.ReturnString(isActive, []byte(resolved))
			return
		}
		m.ReturnString(isActive, []byte(abs))
		return
	}
	m.ReturnString(isActive, []byte(path))
}

// hlPrim implements #(hl,X): exits the process with code X (base 10,
// default 0). Never returns.
type hlPrim struct{}

func (hlPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	code := int32(0)
	if args.Len() >= 2 {
		code = mintstr.GetIntValue(args.At(1).Value, 10)
	}
	os.Exit(int(code))
}

const timeLayout = "%a %b %d %H:%M:%S %Y"

func formatSystemTime(t time.Time) string {
	return strftime.Format(timeLayout, t.Local())
}

// ctPrim implements #(ct,X,Y): the current time if X is empty, else
// the modification time of file X (if Y is non-empty, preceded by six
// binary attribute digits and followed by a space and the file size).
type ctPrim struct{}

func (ctPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	fileName := args.At(1).Value
	if len(fileName) == 0 {
		m.ReturnString(isActive, []byte(formatSystemTime(time.Now())))
		return
	}

	info, err := os.Stat(string(fileName))
	if err != nil {
		m.ReturnString(isActive, nil)
		return
	}

	extraInfo := args.Len() > 2 && len(args.At(2).Value) > 0
	if !extraInfo {
		m.ReturnString(isActive, []byte(formatSystemTime(info.ModTime())))
		return
	}

	isDir := info.IsDir()
	isFile := info.Mode().IsRegular()
	var attrs strings.Builder
	attrs.WriteByte('0') // bit 5: archive, unused
	attrs.WriteByte(boolDigit(isDir))
	attrs.WriteByte('0') // bit 3: volume label, unused
	attrs.WriteByte(boolDigit(!isDir && !isFile))
	attrs.WriteByte('0') // bit 1: hidden, unused
	attrs.WriteByte('0') // bit 0: read-only, unimplemented

	result := fmt.Sprintf("%s%s %d", attrs.String(), formatSystemTime(info.ModTime()), info.Size())
	m.ReturnString(isActive, []byte(result))
}

func boolDigit(b bool) byte {
	if b {
		return '1'
	}
	return '0'
}

// ffPrim implements #(ff,X,Y): the base names of every path matching
// glob pattern X, each followed by separator Y.
type ffPrim struct{}

func (ffPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	pattern := string(args.At(1).Value)
	separator := args.At(2).Value

	var result []byte
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		m.ReturnString(isActive, result)
		return
	}

	dir := filepath.Dir(pattern)
	entries, err := os.ReadDir(dir)
	if err != nil {
		m.ReturnString(isActive, result)
		return
	}
	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		if g.Match(full) || g.Match(e.Name()) {
			result = append(result, e.Name()...)
			result = append(result, separator...)
		}
	}
	m.ReturnString(isActive, result)
}

// rnPrim implements #(rn,X,Y): renames file X to Y, returning null on
// success or the error text on failure.
type rnPrim struct{}

func (rnPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	err := os.Rename(string(args.At(1).Value), string(args.At(2).Value))
	if err != nil {
		m.ReturnString(isActive, []byte(err.Error()))
		return
	}
	m.ReturnString(isActive, nil)
}

// dePrim implements #(de,X): deletes file X, returning null on success
// or the error text on failure.
type dePrim struct{}

func (dePrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	err := os.Remove(string(args.At(1).Value))
	if err != nil {
		m.ReturnString(isActive, []byte(err.Error()))
		return
	}
	m.ReturnString(isActive, nil)
}

// evPrim implements #(ev): populates env.* forms from the process
// environment and command line.
type evPrim struct {
	argv []string
	envp []string
}

func (p evPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	m.SetFormValue([]byte("env.SWITCHAR"), []byte("-"))
	m.SetFormValue([]byte("env.SCREEN"), nil)

	if len(p.argv) > 0 {
		m.SetFormValue([]byte("env.FULLPATH"), []byte(p.argv[0]))
		var runline []byte
		for _, a := range p.argv[1:] {
			runline = append(runline, a...)
			runline = append(runline, ' ')
		}
		m.SetFormValue([]byte("env.RUNLINE"), runline)
	}

	for _, kv := range p.envp {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		m.SetFormValue([]byte("env."+key), []byte(value))
	}

	m.ReturnNull(isActive)
}

// sdVar is the read-only swap/temp directory.
type sdVar struct{}

func (sdVar) GetVal(*interp.Interpreter) []byte {
	for _, name := range []string{"EMACSTMP", "TMP", "TEMP"} {
		if v, ok := os.LookupEnv(name); ok {
			return []byte(v)
		}
	}
	return []byte(".")
}

func (sdVar) SetVal(*interp.Interpreter, []byte) {}

// cdVar gets/sets the process current working directory.
type cdVar struct{}

func (cdVar) GetVal(*interp.Interpreter) []byte {
	path, err := os.Getwd()
	if err != nil {
		return []byte("./")
	}
	if len(path) > 1 && path[len(path)-1] != '/' {
		path += "/"
	}
	return []byte(path)
}

func (cdVar) SetVal(_ *interp.Interpreter, val []byte) {
	_ = os.Chdir(string(val))
}

// cnVar is the read-only host platform description.
type cnVar struct{}

func (cnVar) GetVal(*interp.Interpreter) []byte {
	if runtime.GOOS == "windows" {
		return []byte("Windows")
	}
	out, err := exec.Command("uname", "-sr").Output()
	if err != nil {
		return []byte("Unknown")
	}
	return []byte(strings.TrimSpace(string(out)))
}

func (cnVar) SetVal(*interp.Interpreter, []byte) {}

// isVar is the legacy "inhibit snow" flag, always 0.
type isVar struct{}

func (isVar) GetVal(*interp.Interpreter) []byte { return []byte("0") }
func (isVar) SetVal(*interp.Interpreter, []byte) {}

// bpVar is the default bell pitch in Hz.
type bpVar struct{}

func (bpVar) GetVal(*interp.Interpreter) []byte { return []byte("440") }
func (bpVar) SetVal(*interp.Interpreter, []byte) {}
