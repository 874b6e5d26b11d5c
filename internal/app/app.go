package app

import (
	"context"
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/tegaidogun/pastedump/internal/controller/paste"
)

//go:embed views
var viewsFS embed.FS

type App struct {
	pasteController paste.Controller
	options         Options
}

type Options struct {
	BodyLimit uint
}

func New(pasteController paste.Controller, opts Options) *App {
	return &App{pasteController, opts}
}

func (a *App) router() (*fiber.App, error) {
	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, err
	}

	f := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             int(a.options.BodyLimit),
		Views:                 html.NewFileSystem(http.FS(views), ".html"),
	})

	f.Get("/", a.pasteController.Index)
	f.Post("/paste", a.pasteController.Create)
	f.Get("/paste/:id", a.pasteController.View)
	f.Get("/paste/:id/raw", a.pasteController.Raw)
	f.Get("/search", a.pasteController.Search)

	f.Use(a.pasteController.NotFound)

	return f, nil
}

func (a *App) Listen(addr string, ctx context.Context) error {
	f, err := a.router()
	if err != nil {
		return err
	}

	errch := make(chan error)

	go func() {
		errch <- f.Listen(addr)
	}()

	select {
	case <-ctx.Done():
		return f.Shutdown()
	case err := <-errch:
		if err != nil {
			return err
		}
	}

	return nil
}
