package event

import (
	"encoding/binary"
	"math"
)

// ContextSize is the fixed payload size in bytes
const ContextSize = 16

// Context is a small copyable payload without a type tag
// Producer and consumer agree on the layout by event code; the accessors
// view the same bytes as 16x8, 8x16, 4x32 or 2x64 bit slots, little endian
type Context [ContextSize]byte

// KeyContext builds the KEY_PRESSED / KEY_RELEASED payload
func KeyContext(key uint16) Context {
	var c Context
	c.SetU16(0, key)
	return c
}

// ButtonContext builds the BUTTON_PRESSED / BUTTON_RELEASED payload
func ButtonContext(button uint16) Context {
	var c Context
	c.SetU16(0, button)
	return c
}

// MouseMoveContext builds the MOUSE_MOVED payload
func MouseMoveContext(x, y int16) Context {
	var c Context
	c.SetI16(0, x)
	c.SetI16(1, y)
	return c
}

// WheelContext builds the MOUSE_WHEEL payload
func WheelContext(delta int8) Context {
	var c Context
	c.SetI8(0, delta)
	return c
}

// ResizeContext builds the RESIZED payload
func ResizeContext(width, height uint16) Context {
	var c Context
	c.SetU16(0, width)
	c.SetU16(1, height)
	return c
}

// Typed little-endian views; i indexes in units of the field width
func (c Context) U8(i int) uint8           { return c[i] }
func (c *Context) SetU8(i int, v uint8)    { c[i] = v }
func (c Context) I8(i int) int8            { return int8(c[i]) }
func (c *Context) SetI8(i int, v int8)     { c[i] = byte(v) }
func (c Context) U16(i int) uint16         { return binary.LittleEndian.Uint16(c[i*2 : i*2+2]) }
func (c *Context) SetU16(i int, v uint16)  { binary.LittleEndian.PutUint16(c[i*2:i*2+2], v) }
func (c Context) I16(i int) int16          { return int16(c.U16(i)) }
func (c *Context) SetI16(i int, v int16)   { c.SetU16(i, uint16(v)) }
func (c Context) U32(i int) uint32         { return binary.LittleEndian.Uint32(c[i*4 : i*4+4]) }
func (c *Context) SetU32(i int, v uint32)  { binary.LittleEndian.PutUint32(c[i*4:i*4+4], v) }
func (c Context) I32(i int) int32          { return int32(c.U32(i)) }
func (c *Context) SetI32(i int, v int32)   { c.SetU32(i, uint32(v)) }
func (c Context) F32(i int) float32        { return math.Float32frombits(c.U32(i)) }
func (c *Context) SetF32(i int, v float32) { c.SetU32(i, math.Float32bits(v)) }
func (c Context) U64(i int) uint64         { return binary.LittleEndian.Uint64(c[i*8 : i*8+8]) }
func (c *Context) SetU64(i int, v uint64)  { binary.LittleEndian.PutUint64(c[i*8:i*8+8], v) }
func (c Context) I64(i int) int64          { return int64(c.U64(i)) }
func (c *Context) SetI64(i int, v int64)   { c.SetU64(i, uint64(v)) }
func (c Context) F64(i int) float64        { return math.Float64frombits(c.U64(i)) }
func (c *Context) SetF64(i int, v float64) { c.SetU64(i, math.Float64bits(v)) }
