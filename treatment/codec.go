package treatment

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// RecordSize is the length of an encoded Record.
const RecordSize = 32

var ErrRecordSize = errors.New("treatment: record size mismatch")

// wireRecord is the on-disk layout: naturally aligned, little-endian,
// trailing pad to an 8 byte boundary.
type wireRecord struct {
	PreWeight      int32
	DryWeight      int32
	PostWeight     int32
	TreatmentTime  int16
	DeltaSelection int16
	Timestamp      int64
	IsComplete     bool
	_              [7]byte
}

func (r Record) MarshalBinary() ([]byte, error) {
	w := wireRecord{
		PreWeight:      r.PreWeight,
		DryWeight:      r.DryWeight,
		PostWeight:     r.PostWeight,
		TreatmentTime:  r.TreatmentTime,
		DeltaSelection: int16(r.DeltaSelection),
		Timestamp:      r.Timestamp,
		IsComplete:     r.IsComplete,
	}

	buf := bytes.NewBuffer(make([]byte, 0, RecordSize))
	if err := binary.Write(buf, binary.LittleEndian, &w); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Record) UnmarshalBinary(data []byte) error {
	if len(data) != RecordSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrRecordSize, len(data), RecordSize)
	}

	var w wireRecord
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &w); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}

	*r = Record{
		PreWeight:      w.PreWeight,
		DryWeight:      w.DryWeight,
		PostWeight:     w.PostWeight,
		TreatmentTime:  w.TreatmentTime,
		DeltaSelection: Delta(w.DeltaSelection),
		Timestamp:      w.Timestamp,
		IsComplete:     w.IsComplete,
	}
	return nil
}
