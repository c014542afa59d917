package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextPayloadConventions(t *testing.T) {
	assert.Equal(t, uint16(0x1B), KeyContext(0x1B).U16(0))
	assert.Equal(t, uint16(2), ButtonContext(2).U16(0))

	move := MouseMoveContext(-5, 300)
	assert.Equal(t, int16(-5), move.I16(0))
	assert.Equal(t, int16(300), move.I16(1))

	size := ResizeContext(1920, 1080)
	assert.Equal(t, uint16(1920), size.U16(0))
	assert.Equal(t, uint16(1080), size.U16(1))

	assert.Equal(t, int8(-1), WheelContext(-1).I8(0))
}

func TestContextViewsShareBytes(t *testing.T) {
	var c Context
	c.SetU64(1, 0x0102030405060708)
	assert.Equal(t, uint32(0x05060708), c.U32(2))
	assert.Equal(t, uint16(0x0708), c.U16(4))
	assert.Equal(t, uint8(0x08), c.U8(8))

	c.SetF64(0, 2.5)
	assert.Equal(t, 2.5, c.F64(0))
	c.SetF32(3, -1.25)
	assert.Equal(t, float32(-1.25), c.F32(3))
	c.SetI32(2, -7)
	assert.Equal(t, int32(-7), c.I32(2))
	c.SetI64(1, -9)
	assert.Equal(t, int64(-9), c.I64(1))
}

func TestContextSlotOutOfRangePanics(t *testing.T) {
	var c Context
	assert.Panics(t, func() { c.U16(8) })
	assert.Panics(t, func() { c.SetU64(2, 1) })
}

func TestCodeNames(t *testing.T) {
	assert.Equal(t, "KEY_PRESSED", CodeKeyPressed.String())
	assert.Equal(t, "APP_0x0100", Code(0x100).String())
	assert.True(t, CodeResized.IsSystem())
	assert.False(t, Code(0x100).IsSystem())
	assert.True(t, Code(0x100).Valid(DefaultCapacity))
	assert.False(t, Code(DefaultCapacity).Valid(DefaultCapacity))
}
