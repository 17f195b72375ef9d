package pureue

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/funkygao/fuzzqueue/seedq"
)

// pickleElements frames a slice of per-element byte images as
// length-prefixed records so UnPickle can recover element boundaries.
func pickleElements[T any](elems []T, pickle func(T) ([]byte, error)) ([]byte, error) {
	var buf bytes.Buffer
	var lenHdr [4]byte
	binary.BigEndian.PutUint32(lenHdr[:], uint32(len(elems)))
	buf.Write(lenHdr[:])
	for _, e := range elems {
		b, err := pickle(e)
		if err != nil {
			return nil, err
		}
		var hdr [4]byte
		binary.BigEndian.PutUint32(hdr[:], uint32(len(b)))
		buf.Write(hdr[:])
		buf.Write(b)
	}
	return buf.Bytes(), nil
}

func unpickleElements[T any](data []byte, unpickle func([]byte) (T, error)) ([]T, error) {
	if len(data) < 4 {
		return nil, nil
	}
	n := binary.BigEndian.Uint32(data[:4])
	data = data[4:]
	elems := make([]T, 0, n)
	for i := uint32(0); i < n; i++ {
		l := binary.BigEndian.Uint32(data[:4])
		data = data[4:]
		e, err := unpickle(data[:l])
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		data = data[l:]
	}
	return elems, nil
}

func saveSnapshot[T any](path string, snap T, codec seedq.Codec[T]) error {
	b, err := codec.Pickle(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// loadSnapshot returns ok=false (not an error) when path does not exist,
// matching Load's "missing snapshot is an empty queue" contract.
func loadSnapshot[T any](path string, codec seedq.Codec[T]) (T, bool, error) {
	var zero T
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
