/*
Package ports defines the driven ports (interfaces) for the tfm tracker.

These interfaces decouple the aggregation core from external implementations,
allowing baselines to be persisted to various storage backends (local files,
Redis) without the core knowing about them.

# Key Interfaces

  - BaselineStore: Responsible for persisting and loading named rate baselines.
*/
package ports
