// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

/*
Package supervisor runs the long-lived services of careermatch under a
suture v4 supervisor tree.

	RootSupervisor ("careermatch")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheSweepService (if CACHE_SWEEP_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A sweep that keeps failing is restarted with backoff inside its own layer
and never takes the HTTP server down with it.

Supervisor events (restarts, backoff, stop timeouts) are logged through
sutureslog using the slog bridge from the logging package:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)

Serve returns when ctx is canceled, after every service has stopped or the
shutdown timeout has elapsed. UnstoppedServiceReport lists services that did
not stop in time.
*/
package supervisor
