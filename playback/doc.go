/*
Package playback drives the shared playback time for trajectory rendering.

The clock advances a current-time value by measured wall-clock deltas scaled
by a speed multiplier, wrapping past the maximum bound back to the minimum
(playback is cyclic). Scheduling is abstracted behind TickSource so the clock
behaves identically whether ticks come from a per-frame rendering hook, a
wall-clock ticker, or a test driving time by hand.

The clock is the only writer of the playback state while running; direct
scrubbing and tick advancement are mutually exclusive. Stopping the clock
deterministically cancels ticking: no tick callback runs after Stop returns.
*/
package playback
