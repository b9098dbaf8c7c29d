/*
Package render turns the data model into backend layer lists and owns the
lifecycle of the active rendering backend.

Backends are opaque engines satisfying the Backend contract: construct a
surface, accept layer lists, tear down, and optionally expose a per-frame
hook. Exactly one backend is live at a time; switching view modes is a
transactional teardown and rebuild, serialized so two backends are never
simultaneously live.

Layer derivation is pure: the same playback time, dataset and closed-edge
set always produce the same layer list, whichever backend consumes it. The
two view modes may differ in how a vehicle is drawn (flat icon vs a 3D model
picked deterministically per vehicle) but never in which vehicles or
geometry appear.
*/
package render
