// internal/frame/frame.go

// Package frame builds and parses Modbus RTU frames for the two function
// codes the gateway speaks: read holding registers (0x03) and write
// single register (0x06). Pure byte layout, no I/O.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Function codes.
const (
	FuncReadHolding = 0x03
	FuncWriteSingle = 0x06
)

// Decode failures. Both mean the response is corrupt data rather than an
// I/O error; the link stays open.
var (
	ErrTooShort = errors.New("frame: response too short")
	ErrCRC      = errors.New("frame: crc mismatch")
)

// ExceptionError is a well-formed slave response with the exception bit
// set in the function code.
type ExceptionError struct {
	Function byte
	Code     byte
}

func (e *ExceptionError) Error() string {
	return fmt.Sprintf("frame: modbus exception fc=0x%02x code=%d", e.Function, e.Code)
}

// Response is a parsed reply frame.
type Response struct {
	Slave    byte
	Function byte

	// Registers holds the decoded values for FC3, or the single echoed
	// value for FC6.
	Registers []uint16

	// Address is the echoed register address (FC6 only).
	Address uint16
}

// EncodeRead builds an FC3 request: slave, function, big-endian address,
// big-endian quantity, little-endian CRC.
func EncodeRead(slave byte, address, quantity uint16) []byte {
	req := make([]byte, 6, 8)
	req[0] = slave
	req[1] = FuncReadHolding
	binary.BigEndian.PutUint16(req[2:4], address)
	binary.BigEndian.PutUint16(req[4:6], quantity)
	return appendCRC(req)
}

// EncodeWrite builds an FC6 request with the value in place of the
// quantity.
func EncodeWrite(slave byte, address, value uint16) []byte {
	req := make([]byte, 6, 8)
	req[0] = slave
	req[1] = FuncWriteSingle
	binary.BigEndian.PutUint16(req[2:4], address)
	binary.BigEndian.PutUint16(req[4:6], value)
	return appendCRC(req)
}

// Decode parses a reply frame.
//
// Frames shorter than 3 bytes fail with ErrTooShort. A function code with
// the high bit set is an exception response and is returned as an
// *ExceptionError. Frames long enough to carry a CRC are verified; a
// mismatch fails with ErrCRC.
//
// For FC3 the third byte is a byte count N and the next N bytes are
// big-endian register values; a trailing odd byte is ignored. For FC6 the
// echoed address/value pair occupies bytes 3-6.
func Decode(f []byte) (Response, error) {
	if len(f) < 3 {
		return Response{}, ErrTooShort
	}

	res := Response{
		Slave:    f[0],
		Function: f[1],
	}

	if f[1]&0x80 != 0 {
		return res, &ExceptionError{Function: f[1], Code: f[2]}
	}

	if !checkCRC(f) {
		return Response{}, ErrCRC
	}

	switch f[1] {
	case FuncReadHolding:
		count := int(f[2])
		data := f[3:]
		if len(data) > 2 {
			data = data[:len(data)-2] // strip CRC
		}
		if count < len(data) {
			data = data[:count]
		}
		for i := 0; i+1 < len(data); i += 2 {
			res.Registers = append(res.Registers, binary.BigEndian.Uint16(data[i:i+2]))
		}

	case FuncWriteSingle:
		if len(f) < 6 {
			return Response{}, ErrTooShort
		}
		res.Address = binary.BigEndian.Uint16(f[2:4])
		res.Registers = []uint16{binary.BigEndian.Uint16(f[4:6])}
	}

	return res, nil
}
