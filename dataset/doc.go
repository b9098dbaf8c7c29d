/*
Package dataset owns the currently selected trip and network data.

Store is an explicit, passed-around context object: components read immutable
snapshots from it instead of sharing ambient mutable state. Setting a new
network re-derives the cached geometry exactly once; setting either input
bumps a generation counter so consumers can detect dataset changes and reset
playback.

Load reads the trip and network files concurrently. Watcher optionally
watches both files and reloads the store when they change on disk.
*/
package dataset
