/*
Package domain contains the core domain models for the transition failure matrix.

It defines the fundamental records of the system: the TransitionEvent, the
aggregated TransitionStats, and the derived reporting shapes (Hotspot,
Regression, Summary). This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - TransitionEvent: One observed movement between two named states, tagged success or failure.
  - TransitionStats: Success/failure/duration aggregates for a single "from → to" pair.
  - Hotspot: A pair whose failure count crossed a reporting threshold.
  - Regression: A pair whose failure rate increased versus a recorded baseline.
*/
package domain
