package icon

import (
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRCTableMatchesIEEE(t *testing.T) {
	ieee := crc32.MakeTable(crc32.IEEE)
	for i := range crcTable {
		assert.Equal(t, ieee[i], crcTable[i], "table entry %d", i)
	}
}

func TestChunkCRC(t *testing.T) {
	tests := []struct {
		tag     string
		payload []byte
		want    uint32
	}{
		{"IEND", nil, 0xAE426082},
		{"IDAT", []byte("123456789"), crc32.ChecksumIEEE([]byte("IDAT123456789"))},
		{"IHDR", []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0}, 0x907753DE},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, chunkCRC([]byte(tt.tag), tt.payload))
		})
	}
}

func TestCRCCheckValue(t *testing.T) {
	// The standard CRC-32 check value for "123456789".
	got := updateCRC(0xFFFFFFFF, []byte("123456789")) ^ 0xFFFFFFFF
	assert.Equal(t, uint32(0xCBF43926), got)
}
