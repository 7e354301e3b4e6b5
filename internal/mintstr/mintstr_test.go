package mintstr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendNum(t *testing.T) {
	assert.Equal(t, "100", string(AppendNum(nil, 100, 10)))
	assert.Equal(t, "-100", string(AppendNum(nil, -100, 10)))
	assert.Equal(t, "64", string(AppendNum(nil, 100, 16)))
	assert.Equal(t, "0", string(AppendNum(nil, 0, 10)))
	assert.Equal(t, "Prefix 15", string(AppendNum([]byte("Prefix "), 15, 10)))
}

func TestGetIntValue(t *testing.T) {
	assert.EqualValues(t, 100, GetIntValue([]byte("100"), 10))
	assert.EqualValues(t, -100, GetIntValue([]byte("-100"), 10))
	assert.EqualValues(t, 12, GetIntValue([]byte("Prefix 12"), 10))
	assert.EqualValues(t, 0xAB, GetIntValue([]byte("AB"), 16))
}

func TestGetIntPrefix(t *testing.T) {
	assert.Equal(t, "Prefix ", string(GetIntPrefix([]byte("Prefix 12"), 10)))
	assert.Equal(t, "Prefix ", string(GetIntPrefix([]byte("Prefix -12"), 10)))
	assert.Equal(t, "", string(GetIntPrefix([]byte("12"), 10)))
}
