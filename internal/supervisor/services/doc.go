// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

// Package services adapts careermatch components to suture.Service so the
// supervisor tree can start, restart and stop them.
//
//   - HTTPServerService: runs the API server, shutting it down gracefully
//     when the tree stops.
//   - CacheSweepService: periodically purges expired KNN result cache
//     entries from the configured backend.
//
// Every service returns ctx.Err() on cancellation and implements
// fmt.Stringer so supervisor events name it.
package services
