// internal/frame/crc.go
package frame

// CRC16 computes the Modbus RTU checksum: polynomial 0xA001 (reversed
// CRC-16-ANSI), seed 0xFFFF. The result is appended to frames in
// little-endian order.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&0x0001 != 0 {
				crc = (crc >> 1) ^ 0xA001
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}

// appendCRC appends the little-endian CRC of frame to frame itself.
func appendCRC(f []byte) []byte {
	crc := CRC16(f)
	return append(f, byte(crc&0xFF), byte(crc>>8))
}

// checkCRC reports whether the trailing two bytes of f are a valid CRC
// over the rest of the frame. Frames shorter than 4 bytes cannot carry
// a CRC and fail the check.
func checkCRC(f []byte) bool {
	if len(f) < 4 {
		return false
	}
	want := uint16(f[len(f)-2]) | uint16(f[len(f)-1])<<8
	return CRC16(f[:len(f)-2]) == want
}
