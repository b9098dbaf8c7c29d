/*
Package network derives renderable road geometry from a raw network GeoJSON
feature collection.

The raw collection is the net2geojson export of a simulation network: lane
features carry a LineString centerline plus id, allow, width and tunnel
properties; junction features carry a point ring (or an already-closed
polygon). Derivation selects lanes traversable by the configured highlight
classes, buffers each centerline by half its width into a filled polygon,
closes junction rings, and emits a directional arrow marker at the end of
every selected lane.

Derive is a pure transformation: identical input always yields identical
output, and the result is cached by the caller and never mutated in place.
Malformed features are skipped with a diagnostic; they never abort the whole
derivation.
*/
package network
