package durableq

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/funkygao/fuzzqueue/seedq"
)

func pickleSnapshot[T any](s snapshot[T], pickle func(T) ([]byte, error)) ([]byte, error) {
	var buf bytes.Buffer
	var hdr [12]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(len(s.Slots)))
	binary.BigEndian.PutUint32(hdr[4:8], uint32(s.Count))
	binary.BigEndian.PutUint32(hdr[8:12], uint32(s.Finger))
	buf.Write(hdr[:])
	for _, e := range s.Slots {
		b, err := pickle(e)
		if err != nil {
			return nil, err
		}
		var l [4]byte
		binary.BigEndian.PutUint32(l[:], uint32(len(b)))
		buf.Write(l[:])
		buf.Write(b)
	}
	return buf.Bytes(), nil
}

func unpickleSnapshot[T any](data []byte, unpickle func([]byte) (T, error)) (snapshot[T], error) {
	var s snapshot[T]
	if len(data) < 12 {
		return s, nil
	}
	numSlots := binary.BigEndian.Uint32(data[0:4])
	s.Count = int(binary.BigEndian.Uint32(data[4:8]))
	s.Finger = int(binary.BigEndian.Uint32(data[8:12]))
	data = data[12:]
	s.Slots = make([]T, 0, numSlots)
	for i := uint32(0); i < numSlots; i++ {
		l := binary.BigEndian.Uint32(data[:4])
		data = data[4:]
		e, err := unpickle(data[:l])
		if err != nil {
			return s, err
		}
		s.Slots = append(s.Slots, e)
		data = data[l:]
	}
	return s, nil
}

func saveSnapshot[T any](path string, snap snapshot[T], codec seedq.Codec[snapshot[T]]) error {
	b, err := codec.Pickle(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func loadSnapshot[T any](path string, codec seedq.Codec[snapshot[T]]) (snapshot[T], bool, error) {
	var zero snapshot[T]
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return zero, false, nil
		}
		return zero, false, err
	}
	snap, err := codec.UnPickle(b)
	if err != nil {
		return zero, false, err
	}
	return snap, true, nil
}
