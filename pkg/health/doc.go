// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] answers 200 with an empty body as long as the process
// serves requests. [ReadinessHandler] runs a set of named [Checks] in
// parallel under a shared timeout and answers 200 or 503.
//
//	r.Get("/health_check", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	}, health.WithLogger(log)))
//
// Readiness responses are plain text ("OK" / "Service Unavailable") unless
// the client sends Accept: application/json or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "postgres": {"status": "unhealthy", "error": "connection refused"}
//	  }
//	}
package health
