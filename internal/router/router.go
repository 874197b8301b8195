package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/divij2510/PurpleProse/internal/posts"
	"github.com/divij2510/PurpleProse/internal/users"
)

type Router struct {
	UsersHandler *users.Handler
	PostsHandler *posts.Handler
	AuthMW       fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	app.Post("/api/auth/signup", r.UsersHandler.Signup)
	app.Post("/api/auth/login", r.UsersHandler.Login)
	app.Post("/api/auth/google", r.UsersHandler.GoogleLogin)

	app.Post("/api/posts", r.AuthMW, r.PostsHandler.Create)
	app.Get("/api/posts", r.PostsHandler.List)
	app.Get("/api/posts/:id", r.PostsHandler.Get)
	app.Put("/api/posts/:id", r.AuthMW, r.PostsHandler.Update)
	app.Delete("/api/posts/:id", r.AuthMW, r.PostsHandler.Delete)

	app.Get("/api/users/me", r.AuthMW, r.UsersHandler.Me)
}
