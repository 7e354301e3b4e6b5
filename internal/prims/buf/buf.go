// Package buf implements the buffer-manipulation primitive family (ba,
// is, pm, sm, sp, dm, rm, rc, mb, rf, wf, pb, st, lp, l?, tr, bi) and
// the cl/cs/mb/nl/pb/rs/tc buffer-bound variables.
package buf

import (
	"fmt"
	"os"

	"github.com/msandiford/freemint/internal/buffers"
	"github.com/msandiford/freemint/internal/interp"
	"github.com/msandiford/freemint/internal/mintarg"
	"github.com/msandiford/freemint/internal/mintstr"
)

// NewPrims returns the buffer primitive family, keyed by name, bound to
// the given buffer registry.
func NewPrims(reg *buffers.Registry) map[string]interp.Prim {
	return map[string]interp.Prim{
		"ba": baPrim{reg},
		"is": isPrim{reg},
		"pm": pmPrim{reg},
		"sm": smPrim{reg},
		"sp": spPrim{reg},
		"dm": dmPrim{reg},
		"rm": rmPrim{reg},
		"rc": rcPrim{reg},
		"mb": mbPrim{reg},
		"rf": rfPrim{reg},
		"wf": wfPrim{reg},
		"pb": pbPrim{reg},
		"st": stPrim{},
		"lp": lpPrim{reg},
		"l?": lkPrim{reg},
		"tr": trPrim{reg},
		"bi": biPrim{reg},
	}
}

// NewVars returns the buffer-bound variable family, keyed by name.
func NewVars(reg *buffers.Registry) map[string]interp.Var {
	return map[string]interp.Var{
		"cl": clVar{reg},
		"cs": csVar{reg},
		"mb": mbVar{reg},
		"nl": nlVar{reg},
		"pb": pbVar{reg},
		"rs": rsVar{reg},
		"tc": tcVar{reg},
	}
}

// baPrim implements #(ba,X,Y): buffer allocate/select.
type baPrim struct{ reg *buffers.Registry }

func (p baPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 2 {
		return
	}
	whattodo := mintstr.GetIntValue(args.At(1).Value, 10)

	var bufNum int
	switch {
	case whattodo == 0:
		bufNum = p.reg.NewBuffer()
	case whattodo < 0 || p.reg.SelectBuffer(int(whattodo)):
		bufNum = p.reg.Current().GetBufNumber()
	default:
		bufNum = 0
	}
	m.ReturnInteger(isActive, int32(bufNum), 10)
}

// isPrim implements #(is,X,Y): inserts X into the current buffer.
type isPrim struct{ reg *buffers.Registry }

func (p isPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 2 {
		return
	}
	success := p.reg.Current().InsertString(args.At(1).Value)
	if success && args.Len() > 2 {
		m.ReturnString(isActive, args.At(2).Value)
	} else if !success {
		m.ReturnNull(isActive)
	}
}

// pmPrim implements #(pm,X,Y): push/pop/create mark registers.
type pmPrim struct{ reg *buffers.Registry }

func (p pmPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 2 {
		return
	}
	whattodo := mintstr.GetIntValue(args.At(1).Value, 10)
	ok := p.reg.Current().PushTempMarks(int(whattodo))
	if ok {
		m.ReturnNull(isActive)
	} else if args.Len() > 2 {
		m.ReturnString(true, args.At(2).Value)
	}
}

// smPrim implements #(sm,X,Y): sets user mark X to resolved mark Y
// (default ".").
type smPrim struct{ reg *buffers.Registry }

func (p smPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 2 {
		return
	}
	userMark := args.At(1).Value
	if len(userMark) > 0 {
		mark := byte('.')
		if args.Len() > 2 && len(args.At(2).Value) > 0 {
			mark = args.At(2).Value[0]
		}
		buf := p.reg.Current()
		buf.SetMark(userMark[0], buf.GetMarkPosition(mark))
	}
	m.ReturnNull(isActive)
}

// spPrim implements #(sp,X): sets point by iteratively resolving each
// mark character in X.
type spPrim struct{ reg *buffers.Registry }

func (p spPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 2 {
		return
	}
	p.reg.Current().SetPointToMarks(args.At(1).Value)
	m.ReturnNull(isActive)
}

// dmPrim implements #(dm,X): deletes from point to each mark in X.
type dmPrim struct{ reg *buffers.Registry }

func (p dmPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 2 {
		return
	}
	p.reg.Current().DeleteToMarks(args.At(1).Value)
	m.ReturnNull(isActive)
}

// rmPrim implements #(rm,X,Y): reads from point to mark X.
type rmPrim struct{ reg *buffers.Registry }

func (p rmPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 2 {
		return
	}
	mark := args.At(1).Value
	if len(mark) > 0 {
		s := p.reg.Current().ReadToMark(mark[0])
		m.ReturnString(isActive, s)
	} else if args.Len() > 2 {
		m.ReturnString(true, args.At(2).Value)
	}
}

// rcPrim implements #(rc,X): the signed character count from point to
// mark X.
type rcPrim struct{ reg *buffers.Registry }

func (p rcPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 2 {
		return
	}
	mark := args.At(1).Value
	count := int32(0)
	if len(mark) > 0 {
		count = int32(p.reg.Current().CharsToMark(mark[0]))
	}
	m.ReturnInteger(isActive, count, 10)
}

// mbPrim implements #(mb,X,A,B): A if mark X is before point, else B.
type mbPrim struct{ reg *buffers.Registry }

func (p mbPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 2 {
		return
	}
	mark := args.At(1).Value
	before := false
	if len(mark) > 0 {
		before = p.reg.Current().MarkBeforePoint(mark[0])
	}
	var result []byte
	if before && args.Len() > 2 {
		result = args.At(2).Value
	} else if args.Len() > 3 {
		result = args.At(3).Value
	}
	m.ReturnString(isActive, result)
}

// rfPrim implements #(rf,X): reads file X into the current buffer.
type rfPrim struct{ reg *buffers.Registry }

func (p rfPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 2 {
		return
	}
	contents, err := os.ReadFile(string(args.At(1).Value))
	if err != nil {
		m.ReturnString(isActive, []byte(fmt.Sprintf("Error reading file: %s", err)))
		return
	}
	p.reg.Current().InsertString(contents)
	m.ReturnNull(isActive)
}

// wfPrim implements #(wf,X,Y): writes the whole buffer, from its start
// to mark ']', to file X.
type wfPrim struct{ reg *buffers.Registry }

func (p wfPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 2 {
		return
	}
	content := p.reg.Current().ReadToMarkFrom(']', 0)

	f, err := os.Create(string(args.At(1).Value))
	if err != nil {
		m.ReturnString(isActive, []byte(fmt.Sprintf("Error creating file: %s", err)))
		return
	}
	defer f.Close()

	if _, err := f.Write(content); err != nil {
		m.ReturnString(isActive, []byte(fmt.Sprintf("Error writing file: %s", err)))
		return
	}
	p.reg.Current().SetModified(false)
	m.ReturnNull(isActive)
}

// pbPrim implements #(pb): dumps the current buffer's contents to
// stderr, a debugging aid.
type pbPrim struct{ reg *buffers.Registry }

func (p pbPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	buf := p.reg.Current()
	fmt.Fprintf(os.Stderr, "Buffer number: %d\n", buf.GetBufNumber())
	fmt.Fprintln(os.Stderr, "===== CONTENTS =====")
	content := buf.Read(0, buf.Size())
	os.Stderr.Write(content)
	fmt.Fprintln(os.Stderr, "\n=== END CONTENTS ===")
	m.ReturnNull(isActive)
}

// stPrim implements #(st,X): syntax table, currently unimplemented
// upstream as well.
type stPrim struct{}

func (stPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	m.ReturnNull(isActive)
}

// lpPrim implements #(lp,X,Y,A,B): sets the shared search pattern.
type lpPrim struct{ reg *buffers.Registry }

func (p lpPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 5 {
		m.ReturnNull(isActive)
		return
	}
	pattern := args.At(1).Value
	errorStr := args.At(2).Value
	isPlain := len(args.At(3).Value) == 0
	foldCase := len(args.At(4).Value) > 0

	var ok bool
	if isPlain {
		ok = p.reg.SetSearchString(pattern, foldCase)
	} else {
		ok = p.reg.SetSearchRegex(pattern, foldCase)
	}
	if ok {
		m.ReturnNull(isActive)
	} else {
		m.ReturnString(true, errorStr)
	}
}

// lkPrim implements #(l?,A,B,C,D,X,Y): searches between marks A and B,
// writing the match bounds to marks C and D.
type lkPrim struct{ reg *buffers.Registry }

func (p lkPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 7 {
		m.ReturnNull(isActive)
		return
	}
	mark1 := firstOr(args.At(1).Value, '[')
	mark2 := firstOr(args.At(2).Value, ']')
	mark3 := firstOr(args.At(3).Value, 0)
	mark4 := firstOr(args.At(4).Value, 0)
	successStr := args.At(5).Value
	failureStr := args.At(6).Value

	found := p.reg.Search(mark1, mark2, mark3, mark4)
	if found {
		m.ReturnString(isActive, successStr)
	} else {
		m.ReturnString(isActive, failureStr)
	}
}

func firstOr(s []byte, def byte) byte {
	if len(s) == 0 {
		return def
	}
	return s[0]
}

// trPrim implements #(tr,X,Y): translates from point to mark X using
// Y as a from/to character map.
type trPrim struct{ reg *buffers.Registry }

func (p trPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 3 {
		return
	}
	mark := args.At(1).Value
	trstr := args.At(2).Value
	if len(mark) > 0 {
		p.reg.Current().Translate(mark[0], trstr)
	}
	m.ReturnNull(isActive)
}

// biPrim implements #(bi,X,Y,A,B): inserts buffer X's text up to mark
// Y into the current buffer.
type biPrim struct{ reg *buffers.Registry }

func (p biPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 5 {
		m.ReturnNull(isActive)
		return
	}
	bufNum := int(mintstr.GetIntValue(args.At(1).Value, 10))
	mark := args.At(2).Value
	successStr := args.At(3).Value

	success := false
	if len(mark) > 0 {
		curNum := p.reg.Current().GetBufNumber()
		if p.reg.SelectBuffer(bufNum) {
			text := p.reg.Current().ReadToMark(mark[0])
			p.reg.SelectBuffer(curNum)
			success = p.reg.Current().InsertString(text)
		}
	}

	if success {
		m.ReturnString(isActive, successStr)
	} else {
		m.ReturnNull(isActive)
	}
}

// clVar gets/sets the 1-based current line number.
type clVar struct{ reg *buffers.Registry }

func (v clVar) GetVal(*interp.Interpreter) []byte {
	return mintstr.AppendNum(nil, int32(v.reg.Current().GetPointLine()+1), 10)
}

func (v clVar) SetVal(_ *interp.Interpreter, val []byte) {
	lineNo := mintstr.GetIntValue(val, 10) - 1
	if lineNo < 0 {
		lineNo = 0
	}
	v.reg.Current().SetPointLine(int(lineNo))
}

// csVar gets/sets the 1-based current display column.
type csVar struct{ reg *buffers.Registry }

func (v csVar) GetVal(*interp.Interpreter) []byte {
	return mintstr.AppendNum(nil, int32(v.reg.Current().GetColumn()+1), 10)
}

func (v csVar) SetVal(_ *interp.Interpreter, val []byte) {
	colNo := mintstr.GetIntValue(val, 10)
	if colNo > 0 {
		v.reg.Current().SetColumn(int(colNo - 1))
	}
}

// mbVar gets/sets the modified(bit0)/write-protected(bit1) flags.
type mbVar struct{ reg *buffers.Registry }

func (v mbVar) GetVal(*interp.Interpreter) []byte {
	buf := v.reg.Current()
	flags := int32(0)
	if buf.IsModified() {
		flags |= 1
	}
	if buf.IsWriteProtected() {
		flags |= 2
	}
	return mintstr.AppendNum(nil, flags, 10)
}

func (v mbVar) SetVal(_ *interp.Interpreter, val []byte) {
	flags := mintstr.GetIntValue(val, 10)
	buf := v.reg.Current()
	buf.SetModified(flags&1 != 0)
	buf.SetWriteProtected(flags&2 != 0)
}

// nlVar is the read-only total line count.
type nlVar struct{ reg *buffers.Registry }

func (v nlVar) GetVal(*interp.Interpreter) []byte {
	return mintstr.AppendNum(nil, int32(v.reg.Current().CountNewlinesTotal()+1), 10)
}

func (nlVar) SetVal(*interp.Interpreter, []byte) {}

// pbVar is the read-only percentage of point through the buffer.
type pbVar struct{ reg *buffers.Registry }

func (v pbVar) GetVal(*interp.Interpreter) []byte {
	buf := v.reg.Current()
	pointLine := int32(buf.GetPointLine())
	newlines := int32(buf.CountNewlinesTotal())
	return mintstr.AppendNum(nil, (pointLine+1)*100/(newlines+1), 10)
}

func (pbVar) SetVal(*interp.Interpreter, []byte) {}

// rsVar gets/sets the point's row within the display window.
type rsVar struct{ reg *buffers.Registry }

func (v rsVar) GetVal(*interp.Interpreter) []byte {
	return mintstr.AppendNum(nil, int32(v.reg.Current().GetPointRow()), 10)
}

func (v rsVar) SetVal(_ *interp.Interpreter, val []byte) {
	v.reg.Current().SetPointRow(int(mintstr.GetIntValue(val, 10)))
}

// tcVar gets/sets the current buffer's tab width.
type tcVar struct{ reg *buffers.Registry }

func (v tcVar) GetVal(*interp.Interpreter) []byte {
	return mintstr.AppendNum(nil, int32(v.reg.Current().GetTabWidth()), 10)
}

func (v tcVar) SetVal(_ *interp.Interpreter, val []byte) {
	v.reg.Current().SetTabWidth(int(mintstr.GetIntValue(val, 10)))
}
