package str_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msandiford/freemint/internal/testmint"
)

func TestEqAndNe(t *testing.T) {
	assert.Equal(t, "OK", testmint.New("#(ow,#(==,A,A,OK,BAD))").Result())
	assert.Equal(t, "OK", testmint.New("#(ow,#(==,A,B,BAD,OK))").Result())
	assert.Equal(t, "OK", testmint.New("#(ow,#(!=,A,A,BAD,OK))").Result())
	assert.Equal(t, "OK", testmint.New("#(ow,#(!=,A,B,OK,BAD))").Result())
}

func TestNc(t *testing.T) {
	assert.Equal(t, "5", testmint.New("#(ow,#(nc,hello))").Result())
	assert.Equal(t, "11", testmint.New("#(ow,#(nc,hello hello))").Result())
}

func TestAo(t *testing.T) {
	assert.Equal(t, "OK", testmint.New("#(ow,#(a?,A,A,OK,BAD))").Result())
	assert.Equal(t, "OK", testmint.New("#(ow,#(a?,A,B,OK,BAD))").Result())
	assert.Equal(t, "OK", testmint.New("#(ow,#(a?,AA,A,BAD,OK))").Result())
}

func TestSaSortsAndJoins(t *testing.T) {
	assert.Equal(t, "b,c,m,n,v,x,z", testmint.New("#(ow,##(sa,z,x,c,v,b,n,m))").Result())
}

func TestSiSubstitutesByByteValue(t *testing.T) {
	input := "#(ds,xlat,(z0123456789))" +
		"#(ow,##(si,xlat,(A\x01\x02\x03\x04\x05\x06\x07\x08\x09\x0aZ)))"
	assert.Equal(t, "A0123456789Z", testmint.New(input).Result())
}

func TestNl(t *testing.T) {
	assert.Equal(t, "\n", testmint.New("#(ow,##(nl))").Result())
}
