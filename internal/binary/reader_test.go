package binary

import (
	"bytes"
	"strings"
	"testing"
)

func newTestReader(data []byte) *SafeReader {
	return NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.bin")
}

func TestReadBigEndian(t *testing.T) {
	sr := newTestReader([]byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0})

	if v, err := Read[uint8](sr, 0, "u8"); err != nil || v != 0x12 {
		t.Errorf("uint8 = %#x, err = %v", v, err)
	}
	if v, err := Read[uint16](sr, 0, "u16"); err != nil || v != 0x1234 {
		t.Errorf("uint16 = %#x, err = %v", v, err)
	}
	if v, err := Read[uint32](sr, 0, "u32"); err != nil || v != 0x12345678 {
		t.Errorf("uint32 = %#x, err = %v", v, err)
	}
	if v, err := Read[uint64](sr, 0, "u64"); err != nil || v != 0x123456789ABCDEF0 {
		t.Errorf("uint64 = %#x, err = %v", v, err)
	}
}

func TestReadLittleEndian(t *testing.T) {
	sr := newTestReader([]byte{0x78, 0x56, 0x34, 0x12})

	if v, err := ReadLE[uint32](sr, 0, "u32"); err != nil || v != 0x12345678 {
		t.Errorf("uint32 = %#x, err = %v", v, err)
	}
	if v, err := ReadLE[uint16](sr, 0, "u16"); err != nil || v != 0x5678 {
		t.Errorf("uint16 = %#x, err = %v", v, err)
	}
}

func TestReadAtBounds(t *testing.T) {
	sr := newTestReader([]byte{1, 2, 3, 4})

	buf := make([]byte, 2)
	if err := sr.ReadAt(buf, 2, "tail"); err != nil {
		t.Errorf("in-bounds read failed: %v", err)
	}

	if err := sr.ReadAt(buf, 3, "overrun"); err == nil {
		t.Error("expected error for read past end")
	}
	if err := sr.ReadAt(buf, -1, "negative"); err == nil {
		t.Error("expected error for negative offset")
	}
	if err := sr.ReadAt(buf, 10, "beyond"); err == nil {
		t.Error("expected error for offset past end")
	}
}

func TestReadAtErrorContext(t *testing.T) {
	sr := newTestReader([]byte{1})

	err := sr.ReadAt(make([]byte, 4), 0, "block header")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "block header") {
		t.Errorf("error lacks context: %v", err)
	}
	if !strings.Contains(err.Error(), "test.bin") {
		t.Errorf("error lacks path: %v", err)
	}
}
