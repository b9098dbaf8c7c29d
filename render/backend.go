package render

import "time"

// View is the initial camera framing handed to a backend on construction.
type View struct {
	Center [2]float64 // lon, lat
	Zoom   float64
}

// Handle identifies one constructed backend surface. Its concrete type
// belongs to the backend.
type Handle any

// Backend is the contract any rendering engine must satisfy. The core never
// inspects backend-internal representations; layers cross the boundary as
// opaque geometry+style bundles.
//
// RegisterFrameHook is optional: engines without a per-frame callback return
// a nil cancel function and the hosting layer drives rendering from a
// wall-clock tick source instead.
type Backend interface {
	Construct(view View) (Handle, error)
	SetLayers(h Handle, layers []Layer) error
	Destroy(h Handle)
	RegisterFrameHook(h Handle, fn func(now time.Time)) (cancel func())
}
