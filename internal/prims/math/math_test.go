package math_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msandiford/freemint/internal/testmint"
)

func TestBcPrim(t *testing.T) {
	assert.Equal(t, "64", testmint.New("#(ow,#(bc,@,a,d))").Result())
	assert.Equal(t, "64", testmint.New("#(ow,#(bc,@,c,d))").Result())
	assert.Equal(t, "100", testmint.New("#(ow,#(bc,@,c,o))").Result())
	assert.Equal(t, "40", testmint.New("#(ow,#(bc,@,c,h))").Result())
	assert.Equal(t, "1000000", testmint.New("#(ow,#(bc,@,c,b))").Result())
	assert.Equal(t, "A", testmint.New("#(ow,#(bc,65,d,a))").Result())
	assert.Equal(t, "A", testmint.New("#(ow,#(bc,65,d,c))").Result())
	assert.Equal(t, "101", testmint.New("#(ow,#(bc,65,d,o))").Result())
	assert.Equal(t, "41", testmint.New("#(ow,#(bc,65,d,h))").Result())
	assert.Equal(t, "1000001", testmint.New("#(ow,#(bc,65,d,b))").Result())
}

func TestArithmeticPrimsPreservePrefix(t *testing.T) {
	assert.Equal(t, "Prefix 15", testmint.New("#(ow,##(++,(Prefix 12),3))").Result())
	assert.Equal(t, "Prefix 9", testmint.New("#(ow,##(--,(Prefix 12),3))").Result())
	assert.Equal(t, "Prefix 36", testmint.New("#(ow,##(**,(Prefix 12),3))").Result())
	assert.Equal(t, "Prefix 4", testmint.New("#(ow,##(//,(Prefix 12),3))").Result())
	assert.Equal(t, "Prefix 1", testmint.New("#(ow,##(%%,(Prefix 13),3))").Result())
}

func TestDivModByZeroReturnsOperandUnchanged(t *testing.T) {
	assert.Equal(t, "12", testmint.New("#(ow,##(//,12,0))").Result())
	assert.Equal(t, "12", testmint.New("#(ow,##(%%,12,0))").Result())
}

func TestBitwiseOps(t *testing.T) {
	assert.Equal(t, "7", testmint.New("#(ow,##(||,5,3))").Result())
	assert.Equal(t, "1", testmint.New("#(ow,##(&&,5,3))").Result())
	assert.Equal(t, "6", testmint.New("#(ow,##(^^,5,3))").Result())
}

func TestGtPrim(t *testing.T) {
	assert.Equal(t, "OK", testmint.New("#(ow,#(g?,5,3,OK,BAD))").Result())
	assert.Equal(t, "OK", testmint.New("#(ow,#(g?,3,5,BAD,OK))").Result())
}
