// Package health provides liveness and readiness HTTP handlers.
//
// Readiness runs a set of named checks concurrently under a shared timeout:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"output_dir":   health.DirWritable("generated_certificates"),
//		"default_font": health.FileExists("fonts/arial.ttf"),
//	}))
//
// Responses are plain text unless the client asks for JSON with an Accept
// header or ?format=json.
package health
