// Package notifications delivers analysis run events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and degrades to a no-op when no topic is set. Each terminal
// run produces at most one event; the on_success and on_failure switches
// suppress either side.
package notifications
