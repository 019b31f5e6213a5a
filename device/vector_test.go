package device

import (
	"reflect"
	"testing"

	"github.com/achilleasa/filmpass/kernel"
)

func TestVectorAlloc(t *testing.T) {
	v := NewVector[float32]("test")
	data := v.Alloc(128)

	if v.Size() != 128 || len(data) != 128 {
		t.Fatalf("expected vector size to be 128; got %d", v.Size())
	}
	if !v.IsModified() {
		t.Fatal("expected allocation to tag the vector as modified")
	}
	if v.DeviceSize() != 0 {
		t.Fatalf("expected no device data before copy; got %d elements", v.DeviceSize())
	}
}

func TestVectorResizePreservesPrefix(t *testing.T) {
	v := NewVector[int]("test")
	copy(v.Alloc(4), []int{1, 2, 3, 4})

	v.Resize(2)
	v.Resize(6)

	exp := []int{1, 2, 0, 0, 0, 0}
	if !reflect.DeepEqual(v.Data(), exp) {
		t.Fatalf("expected %v; got %v", exp, v.Data())
	}
}

func TestVectorReadWrite(t *testing.T) {
	v := NewVector[byte]("test")
	v.Alloc(128)

	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i)
	}

	if err := v.WriteData(data, 64); err != nil {
		t.Fatal(err)
	}
	if err := v.WriteData(data, 65); err == nil {
		t.Fatal("expected an error when writing past the end of the buffer")
	}

	v.CopyToDevice()
	if v.IsModified() {
		t.Fatal("expected copy to clear the modified flag")
	}

	dataOut := make([]byte, 64)
	if err := v.ReadData(64, dataOut); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(data, dataOut) {
		t.Fatal("read data does not match written data")
	}

	// Host edits are invisible to the device until the next copy.
	v.Data()[64] = 0xff
	v.TagModified()
	if v.DeviceData()[64] != 0 {
		t.Fatal("expected device copy to be unaffected by host edits")
	}
	v.CopyToDevice()
	if v.DeviceData()[64] != 0xff {
		t.Fatal("expected device copy to reflect host edits after copy")
	}

	if err := v.ReadData(100, dataOut); err == nil {
		t.Fatal("expected an error when reading past the end of the buffer")
	}
}

func TestVectorFree(t *testing.T) {
	v := NewVector[float32]("test")
	v.Alloc(8)
	v.CopyToDevice()
	v.Free()

	if v.Size() != 0 || v.DeviceSize() != 0 {
		t.Fatalf("expected empty vector after free; got host %d device %d", v.Size(), v.DeviceSize())
	}
}

func TestSceneCopyData(t *testing.T) {
	s := NewScene()
	if got := s.DeviceData().Film.PassCombined; got != kernel.PassUnused {
		t.Fatalf("expected unused combined offset before first copy; got %d", got)
	}

	s.Data.Film.PassCombined = 0
	s.Data.Film.PassStride = 4
	if got := s.DeviceData().Film.PassStride; got != 0 {
		t.Fatalf("expected device stride to stay 0 until copy; got %d", got)
	}

	s.CopyData()
	if got := s.DeviceData().Film; got.PassCombined != 0 || got.PassStride != 4 {
		t.Fatalf("expected device data to match host data; got %+v", got)
	}
}
