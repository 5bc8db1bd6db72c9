package testutils

import (
	"fmt"
	"sync"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"
)

// ScriptedRoller is a dice.Roller that returns queued faces in order.
// It fails when the script runs out or a face is larger than the die.
type ScriptedRoller struct {
	mu     sync.Mutex
	faces  []int
	rolled []string
}

var _ toolkitdice.Roller = (*ScriptedRoller)(nil)

// NewScriptedRoller queues faces
func NewScriptedRoller(faces ...int) *ScriptedRoller {
	return &ScriptedRoller{faces: faces}
}

// Queue appends more faces
func (r *ScriptedRoller) Queue(faces ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faces = append(r.faces, faces...)
}

// Roll returns the next face
func (r *ScriptedRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next(size)
}

// RollN returns the next count faces
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.next(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Remaining reports how many faces are still queued
func (r *ScriptedRoller) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.faces)
}

// Rolled lists the dice requested so far as "dN"
func (r *ScriptedRoller) Rolled() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.rolled...)
}

func (r *ScriptedRoller) next(size int) (int, error) {
	if len(r.faces) == 0 {
		return 0, fmt.Errorf("scripted roller exhausted rolling d%d", size)
	}
	v := r.faces[0]
	if v < 1 || v > size {
		return 0, fmt.Errorf("scripted face %d does not fit a d%d", v, size)
	}
	r.faces = r.faces[1:]
	r.rolled = append(r.rolled, fmt.Sprintf("d%d", size))
	return v, nil
}
