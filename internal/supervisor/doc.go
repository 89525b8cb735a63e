// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

/*
Package supervisor runs Murmur's long-lived services under a suture v4 tree.

Services are grouped into three layers so that a crash in one does not take
down the others:

	RootSupervisor ("murmur")
	├── DataSupervisor ("data-layer")
	│   └── outbox relay (events enabled)
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventsService: NATS server, publisher, activity consumer (events enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A service that returns from Serve before its context is canceled is
restarted with backoff. Once failures exceed FailureThreshold (decaying at
FailureDecay per second) the supervisor waits FailureBackoff before trying
again.

Supervisor events are logged through sutureslog into the zerolog logger via
logging.NewSlogLogger.

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(relay)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)

Services that miss ShutdownTimeout are listed by UnstoppedServiceReport.
*/
package supervisor
