package render

import (
	"encoding/binary"
	"hash/fnv"
)

// vehicleModels are the 3D models available to the perspective backend.
var vehicleModels = []string{"sedan", "hatchback", "suv", "van", "box-truck"}

// ModelAssigner picks a 3D model per trajectory, deterministically: the same
// trajectory identifier and seed always map to the same model, making
// perspective rendering reproducible across runs and adapter rebuilds.
type ModelAssigner struct {
	seed uint64
}

// NewModelAssigner creates an assigner for the given seed.
func NewModelAssigner(seed uint64) *ModelAssigner {
	return &ModelAssigner{seed: seed}
}

// ModelFor returns the model name for a trajectory identifier.
func (a *ModelAssigner) ModelFor(trajectoryID string) string {
	h := fnv.New64a()
	var seed [8]byte
	binary.LittleEndian.PutUint64(seed[:], a.seed)
	h.Write(seed[:])
	h.Write([]byte(trajectoryID))
	return vehicleModels[h.Sum64()%uint64(len(vehicleModels))]
}
