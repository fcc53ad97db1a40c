package http

import (
	"bytes"
	"errors"
	nethttp "net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/report"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/service"
)

// NewApp builds a fiber app that encodes JSON with go-json and turns handler
// panics into 500 responses.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "sustainability-api",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})
	app.Use(fiberrecover.New())
	return app
}

func Register(app *fiber.App, svcs *service.Services, metrics nethttp.Handler) {
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	if metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics))
	}

	g := app.Group("/")
	g.Get("sustainability/context", func(c *fiber.Ctx) error {
		snap, err := svcs.Context.Snapshot(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(snap)
	})
	g.Get("resources", func(c *fiber.Ctx) error {
		items, err := svcs.Repos.ListResources(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(items)
	})
	g.Get("consumers", func(c *fiber.Ctx) error {
		items, err := svcs.Repos.ListConsumers(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(items)
	})
	g.Get("consumers/:id/report", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid consumer id"})
		}
		rep, err := svcs.Usage.ConsumerReport(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(rep)
	})
	g.Post("consumers/:id/usage", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid consumer id"})
		}
		var body struct {
			Resource string  `json:"resource"`
			Amount   float64 `json:"amount"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
		}
		if err := svcs.Usage.Use(c.UserContext(), id, body.Resource, body.Amount); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	g.Get("report", func(c *fiber.Ctx) error {
		resources, err := svcs.Context.Resources(c.UserContext())
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := report.WriteText(&buf, resources, svcs.Context.Threshold()); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Send(buf.Bytes())
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		status = fe.Code
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrNonPositiveAmount),
		errors.Is(err, domain.ErrNotAssigned),
		errors.Is(err, domain.ErrInsufficient):
		status = fiber.StatusBadRequest
	}
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
