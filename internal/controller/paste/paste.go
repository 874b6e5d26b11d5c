package paste

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	pasteService "github.com/tegaidogun/pastedump/internal/service/paste"
	searchService "github.com/tegaidogun/pastedump/internal/service/search"
)

type Controller interface {
	Index(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error

	View(ctx *fiber.Ctx) error
	Raw(ctx *fiber.Ctx) error

	Search(ctx *fiber.Ctx) error

	NotFound(ctx *fiber.Ctx) error
}

type concreteController struct {
	pasteService  pasteService.Service
	searchService searchService.Service
}

func New(pasteService pasteService.Service, searchService searchService.Service) Controller {
	return &concreteController{pasteService, searchService}
}

func (c *concreteController) Index(ctx *fiber.Ctx) error {
	pastes, err := c.pasteService.ListRecent()
	if err != nil {
		slog.Error("internal error", "err", err)
		return ctx.SendStatus(fiber.StatusInternalServerError)
	}

	return ctx.Render("index", fiber.Map{
		"Pastes": pastes,
	})
}

func (c *concreteController) Create(ctx *fiber.Ctx) error {
	paste, err := c.pasteService.Create(
		ctx.FormValue("title"),
		ctx.FormValue("content"),
		ctx.FormValue("expires_in"),
	)
	if err != nil {
		if errors.Is(err, pasteService.ErrMissingContent) {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		slog.Error("internal error", "err", err)
		return ctx.SendStatus(fiber.StatusInternalServerError)
	}

	return ctx.Redirect("/paste/"+paste.ID, fiber.StatusFound)
}

func (c *concreteController) View(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	paste, err := c.pasteService.GetForView(id)
	if err != nil {
		if errors.Is(err, pasteService.ErrNotFound) {
			return c.NotFound(ctx)
		}

		slog.Error("internal error", "err", err)
		return ctx.SendStatus(fiber.StatusInternalServerError)
	}

	expiresAt := ""
	if at, ok := paste.ExpiresAt(); ok {
		expiresAt = at.Format(time.DateTime)
	}

	return ctx.Render("paste", fiber.Map{
		"Paste":     paste,
		"Views":     paste.ViewCount(),
		"ExpiresAt": expiresAt,
	})
}

func (c *concreteController) Raw(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	content, err := c.pasteService.GetRaw(id)
	if err != nil {
		if errors.Is(err, pasteService.ErrNotFound) {
			return c.NotFound(ctx)
		}

		slog.Error("internal error", "err", err)
		return ctx.SendStatus(fiber.StatusInternalServerError)
	}

	ctx.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return ctx.SendString(content)
}

func (c *concreteController) Search(ctx *fiber.Ctx) error {
	result, err := c.searchService.Search(ctx.Query("q"))
	if err != nil {
		slog.Error("internal error", "err", err)
		return ctx.SendStatus(fiber.StatusInternalServerError)
	}

	return ctx.Render("search", fiber.Map{
		"Query":   result.Query,
		"Message": result.Message,
		"Pastes":  result.Pastes,
	})
}

func (c *concreteController) NotFound(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusNotFound).Render("404", fiber.Map{})
}
