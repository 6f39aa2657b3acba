package icon

// crcPolynomial is the reflected IEEE 802.3 polynomial used by PNG.
const crcPolynomial = 0xEDB88320

var crcTable = makeCRCTable()

func makeCRCTable() *[256]uint32 {
	t := new([256]uint32)
	for i := range t {
		c := uint32(i)
		for k := 0; k < 8; k++ {
			if c&1 == 1 {
				c = crcPolynomial ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		t[i] = c
	}
	return t
}

// updateCRC feeds p into a running, pre-inverted CRC register.
func updateCRC(crc uint32, p []byte) uint32 {
	for _, b := range p {
		crc = crcTable[byte(crc)^b] ^ (crc >> 8)
	}
	return crc
}

// chunkCRC returns the CRC32 of the tag bytes followed by the payload.
// The length field is never part of the checksum.
func chunkCRC(tag, payload []byte) uint32 {
	crc := updateCRC(0xFFFFFFFF, tag)
	crc = updateCRC(crc, payload)
	return crc ^ 0xFFFFFFFF
}
