// Package lib implements the on-disk library save/load primitive
// family: sl, ll. Records are 20-byte little-endian headers
// (total_length, name_length, reserved, form_pos, data_length)
// followed by the name bytes and the form content.
package lib

import (
	"encoding/binary"
	"os"

	"github.com/pkg/errors"

	"github.com/msandiford/freemint/internal/interp"
	"github.com/msandiford/freemint/internal/mintarg"
)

const headerSize = 20

// New returns the library primitive family, keyed by name.
func New() map[string]interp.Prim {
	return map[string]interp.Prim{
		"sl": slPrim{},
		"ll": llPrim{},
	}
}

type header struct {
	totalLength uint32
	nameLength  uint32
	reserved    uint32
	formPos     uint32
	dataLength  uint32
}

func (h header) marshal() []byte {
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.totalLength)
	binary.LittleEndian.PutUint32(buf[4:8], h.nameLength)
	binary.LittleEndian.PutUint32(buf[8:12], h.reserved)
	binary.LittleEndian.PutUint32(buf[12:16], h.formPos)
	binary.LittleEndian.PutUint32(buf[16:20], h.dataLength)
	return buf
}

func unmarshalHeader(buf []byte) header {
	return header{
		totalLength: binary.LittleEndian.Uint32(buf[0:4]),
		nameLength:  binary.LittleEndian.Uint32(buf[4:8]),
		reserved:    binary.LittleEndian.Uint32(buf[8:12]),
		formPos:     binary.LittleEndian.Uint32(buf[12:16]),
		dataLength:  binary.LittleEndian.Uint32(buf[16:20]),
	}
}

// slPrim implements #(sl,X,Y1,...,Yn): saves forms Y1..Yn (those that
// exist; missing ones are silently skipped) to file X. On any I/O
// error it returns the error text and stops, leaving the file
// partially written.
type slPrim struct{}

func (slPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if err := saveLibrary(m, string(args.At(1).Value), args.Slice()[2:]); err != nil {
		m.ReturnString(isActive, []byte(err.Error()))
		return
	}
	m.ReturnNull(isActive)
}

func saveLibrary(m *interp.Interpreter, path string, names []mintarg.Arg) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "opening library file")
	}
	defer f.Close()

	for _, a := range names {
		if a.IsTerm() {
			continue
		}
		name := a.Value
		form := m.GetForm(name)
		if form == nil {
			continue
		}
		hdr := header{
			totalLength: uint32(headerSize + len(name) + len(form.Content)),
			nameLength:  uint32(len(name)),
			formPos:     form.GetPos(),
			dataLength:  uint32(len(form.Content)),
		}
		if _, err := f.Write(hdr.marshal()); err != nil {
			return errors.Wrap(err, "Write error")
		}
		if _, err := f.Write(name); err != nil {
			return errors.Wrap(err, "Write error")
		}
		if _, err := f.Write(form.Content); err != nil {
			return errors.Wrap(err, "Write error")
		}
	}
	return nil
}

// llPrim implements #(ll,X): loads every record from file X, setting
// each form's value and restoring its saved cursor position. A
// truncated tail record is silently ignored.
type llPrim struct{}

func (llPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	data, err := os.ReadFile(string(args.At(1).Value))
	if err != nil {
		m.ReturnString(isActive, []byte(errors.Wrap(err, "opening library file").Error()))
		return
	}

	offset := 0
	for offset+headerSize <= len(data) {
		hdr := unmarshalHeader(data[offset : offset+headerSize])
		offset += headerSize

		nameEnd := offset + int(hdr.nameLength)
		dataEnd := nameEnd + int(hdr.dataLength)
		if dataEnd > len(data) {
			break
		}

		name := data[offset:nameEnd]
		content := data[nameEnd:dataEnd]

		m.SetFormValue(name, content)
		m.SetFormPos(name, hdr.formPos)

		offset = dataEnd
	}
	m.ReturnNull(isActive)
}
