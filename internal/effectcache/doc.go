// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package effectcache owns parsed effects for the lifetime of a composition
// context.
//
// # Concurrency Model
//
// The cache map is guarded by an RWMutex and loads are coordinated with
// singleflight keyed by the source identity:
//   - A hit takes only the read lock.
//   - Concurrent misses for the same identity share one read+parse.
//   - Misses for different identities proceed in parallel.
//
// Failed loads are not cached, so a later call retries. Entries are never
// evicted; memory grows with the number of distinct sources, not with the
// number of compositions.
package effectcache
