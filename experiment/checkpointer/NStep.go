package checkpointer

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/BrendonShi/wordle-ai-agent/timestep"
)

// nStep implements checkpointing every N tracked steps
type nStep struct {
	interval int
	steps    int
	object   Serializable // Object to save

	// filename returns the string filename of the file to save the
	// object in.
	//
	// If each serialized object should be saved in a separate file with
	// each file having an incremented number as a suffix (e.g.
	// file1.bin, file2.bin, ..., fileK.bin), then simply use the
	// static function FilenameEnumerator, which will return a function
	// that will enumerate filenames.
	//
	// Otherwise, if each serialized object should be saved in a
	// separate file, but the filename does not matter, use the
	// static function FileTimer to generate the required naming
	// function. For example:
	//
	// n := NewNStep(10, object, FileTimer("filename", ".bin"))
	filename func() string
}

// NewNStep returns a checkpointer that checkpoints every n steps.
// Steps are counted across episodes: every call to Checkpoint counts
// as one step regardless of the episodic step number of its argument.
func NewNStep(n int, object Serializable,
	filename func() string) Checkpointer {
	return &nStep{
		interval: n,
		object:   object,
		filename: filename,
	}
}

// Checkpoint serializes the Checkpointer's tracked object to disk if
// the checkpoint interval has been reached
func (n *nStep) Checkpoint(t ts.TimeStep) error {
	n.steps++
	if n.steps%n.interval != 0 {
		return nil
	}

	data, err := n.object.GobEncode()
	if err != nil {
		return fmt.Errorf("checkpoint: could not encode object: %v", err)
	}

	file, err := os.Create(n.filename())
	if err != nil {
		return fmt.Errorf("checkpoint: could not create checkpoint "+
			"file: %v", err)
	}
	defer file.Close()

	enc := gob.NewEncoder(file)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("checkpoint: could not write object: %v", err)
	}
	return nil
}
