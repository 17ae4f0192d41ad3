package checkpointer

import (
	"bytes"
	"encoding/gob"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	ts "github.com/BrendonShi/wordle-ai-agent/timestep"
)

// gobCounter is a Serializable whose encoded form is its current count
type gobCounter struct {
	count int
}

func (g *gobCounter) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g.count); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *gobCounter) GobDecode(in []byte) error {
	return gob.NewDecoder(bytes.NewReader(in)).Decode(&g.count)
}

func TestNStepCheckpointsAtInterval(t *testing.T) {
	dir := t.TempDir()
	object := &gobCounter{}
	checkpointer := NewNStep(2, object, FileTimer(
		filepath.Join(dir, "object"), ".bin"))

	step := ts.New(ts.Mid, 0, 1, mat.NewVecDense(1, nil), 0)
	for i := 0; i < 5; i++ {
		if err := checkpointer.Checkpoint(step); err != nil {
			t.Fatalf("checkpoint %v failed: %v", i, err)
		}
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("could not read checkpoint directory: %v", err)
	}
	// 5 steps at an interval of 2 leaves 2 checkpoints
	if len(files) != 2 {
		t.Fatalf("wrote %v checkpoints, want 2", len(files))
	}
}

func TestNStepCheckpointRestore(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "object.bin")
	object := &gobCounter{count: 7}
	checkpointer := NewNStep(1, object, func() string { return filename })

	step := ts.New(ts.Mid, 0, 1, mat.NewVecDense(1, nil), 0)
	if err := checkpointer.Checkpoint(step); err != nil {
		t.Fatalf("checkpoint failed: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("could not open checkpoint file: %v", err)
	}
	defer file.Close()

	var data []byte
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		t.Fatalf("could not read checkpoint file: %v", err)
	}

	restored := &gobCounter{}
	if err := restored.GobDecode(data); err != nil {
		t.Fatalf("could not decode checkpointed object: %v", err)
	}
	if restored.count != 7 {
		t.Errorf("restored count = %v, want 7", restored.count)
	}
}
