package server

import (
	"net/http"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/health"
)

func (s *Server) routes() {
	r := s.router
	r.Use(requestID, s.accessLog, s.recoverer)

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(s.deps.Checks, health.WithLogger(s.log)))

	r.Get("/templates", s.wrap(s.listTemplates))
	r.Post("/templates", s.wrap(s.uploadTemplate))
	r.Get("/fonts", s.wrap(s.listFonts))

	r.Post("/batches", s.wrap(s.createBatch))
	r.Get("/preview", s.wrap(s.downloadPreview))

	r.Get("/history", s.wrap(s.listHistory))
	r.Delete("/history", s.wrap(s.deleteHistory))

	r.NotFound(s.wrap(func(http.ResponseWriter, *http.Request) error {
		return errNotFound
	}))
	r.MethodNotAllowed(s.wrap(func(http.ResponseWriter, *http.Request) error {
		return errMethodNotAllowed
	}))
}
