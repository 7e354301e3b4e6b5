package vars_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msandiford/freemint/internal/testmint"
)

func TestLvOfUnknownVariableIsNull(t *testing.T) {
	assert.Equal(t, "", testmint.New("#(ow,#(lv,nosuchvar))").Result())
}

func TestSvThenLvRoundTrips(t *testing.T) {
	assert.Equal(t, "42", testmint.New("#(sv,as,42)#(ow,#(lv,as))").Result())
}

func TestVnReportsVersion(t *testing.T) {
	assert.Equal(t, "2.0a", testmint.New("#(ow,#(lv,vn))").Result())
}

func TestSvWithTooFewArgsProducesNoResult(t *testing.T) {
	// sv with no arguments returns nothing at all, not
	// even an empty string, so it never reaches ow in the first place.
	assert.Equal(t, "BEFOREAFTER", testmint.New("#(ow,BEFORE#(sv)AFTER)").Result())
}
