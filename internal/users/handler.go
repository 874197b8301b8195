package users

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/divij2510/PurpleProse/internal/audit"
	"github.com/divij2510/PurpleProse/internal/auth"
	"github.com/divij2510/PurpleProse/internal/domain"
)

// PostLister lists a user's own posts for the profile endpoint.
type PostLister interface {
	ListByAuthor(ctx context.Context, userID int64) ([]domain.Post, error)
}

type Handler struct {
	Service *Service
	Posts   PostLister
	Audit   *pgxpool.Pool
}

func NewHandler(service *Service, posts PostLister, auditPool *pgxpool.Pool) *Handler {
	return &Handler{Service: service, Posts: posts, Audit: auditPool}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleRequest struct {
	TokenID string `json:"tokenId"`
}

type authResponse struct {
	Token string `json:"token"`
}

func (h *Handler) Signup(c *fiber.Ctx) error {
	var body signupRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if body.Name == "" || body.Email == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name, email and password required")
	}

	ctx := userContext(c)
	user, token, err := h.Service.Signup(ctx, body.Name, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return fiber.NewError(fiber.StatusBadRequest, "user already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not create user")
	}

	audit.Record(ctx, h.Audit, audit.Entry{UserID: user.ID, Action: "signup", EntityType: "user", IP: c.IP()})
	return c.JSON(authResponse{Token: token})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	ctx := userContext(c)
	user, token, err := h.Service.Login(ctx, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not log in")
	}

	audit.Record(ctx, h.Audit, audit.Entry{UserID: user.ID, Action: "login", EntityType: "user", IP: c.IP()})
	return c.JSON(authResponse{Token: token})
}

func (h *Handler) GoogleLogin(c *fiber.Ctx) error {
	var body googleRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if body.TokenID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "tokenId required")
	}

	ctx := userContext(c)
	user, token, err := h.Service.GoogleLogin(ctx, body.TokenID)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidAssertion) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid google token")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not log in")
	}

	audit.Record(ctx, h.Audit, audit.Entry{UserID: user.ID, Action: "google_login", EntityType: "user", IP: c.IP()})
	return c.JSON(authResponse{Token: token})
}

// Me returns the caller's profile and posts, newest first.
func (h *Handler) Me(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	ctx := userContext(c)
	user, err := h.Service.Store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not load profile")
	}

	posts, err := h.Posts.ListByAuthor(ctx, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load posts")
	}

	return c.JSON(fiber.Map{"user": user, "posts": posts})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
