package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// requestObserver es el contrato mínimo que necesita el middleware de métricas.
// Lo implementa *metrics.Registry.
type requestObserver interface {
	ObserveHTTP(method, route string, status int)
}

// ObserveRequests devuelve un middleware que registra cada petición atendida
// (método, patrón de ruta y status) y la deja en el log a nivel debug.
// La etiqueta de ruta es el patrón registrado, no la URL.
func ObserveRequests(obs requestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := c.Route().Path
		if obs != nil {
			obs.ObserveHTTP(c.Method(), route, status)
		}
		log.Debug().
			Str("method", c.Method()).
			Str("route", route).
			Int("status", status).
			Dur("duracion", time.Since(start)).
			Msg("petición atendida")
		return err
	}
}
