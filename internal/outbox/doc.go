// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

/*
Package outbox keeps committed activity events on disk until they reach the
message broker.

Mutations hand their events to a badger-backed Store, which implements
events.Emitter. A Relay, run under the supervisor, drains pending entries in
write order, publishes them at a bounded rate and deletes each entry once the
broker has accepted it. A failed publish ends the drain and leaves the entry
for the next tick; entries that keep failing are dropped after
RelayConfig.MaxAttempts.

	store, err := outbox.Open(outbox.Config{Path: cfg.Events.OutboxPath})
	relay := outbox.NewRelay(store, publisher, outbox.DefaultRelayConfig())
	tree.AddDataService(relay)
*/
package outbox
