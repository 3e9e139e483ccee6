package bacnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeTagOctet(t *testing.T) {
	assert.Equal(t, byte(0x0c), encodeTagOctet(0, tagClassContext, 4))
	assert.Equal(t, byte(0x1e), encodeTagOctet(1, tagClassContext, lengthOpening))
	assert.Equal(t, byte(0x1f), encodeTagOctet(1, tagClassContext, lengthClosing))
	assert.Equal(t, byte(0x09), encodeTagOctet(0, tagClassContext, 1))
}

func TestCtxHelpers(t *testing.T) {
	buf := ctxTag(nil, 0, 4)
	buf = ctxOpen(buf, 1)
	buf = ctxTag(buf, 0, 1)
	buf = ctxClose(buf, 1)
	assert.Equal(t, []byte{0x0c, 0x1e, 0x09, 0x1f}, buf)
}

func TestAppTag(t *testing.T) {
	buf := appTag(nil, appTagReal, 4)
	assert.Equal(t, []byte{byte(appTagReal<<4) | 4}, buf)
}
