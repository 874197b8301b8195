package posts

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/divij2510/PurpleProse/internal/audit"
	"github.com/divij2510/PurpleProse/internal/auth"
	"github.com/divij2510/PurpleProse/internal/domain"
	"github.com/divij2510/PurpleProse/internal/storage"
)

// Store is the post store the handler runs against.
type Store interface {
	Create(ctx context.Context, p domain.Post) (domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	ListByAuthor(ctx context.Context, userID int64) ([]domain.Post, error)
	Get(ctx context.Context, id int64) (domain.Post, error)
	Update(ctx context.Context, p domain.Post) (domain.Post, error)
	Delete(ctx context.Context, id int64) error
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type Handler struct {
	Store         Store
	Uploader      Uploader
	MaxImageBytes int64
	Audit         *pgxpool.Pool
}

func NewHandler(store Store, uploader Uploader, maxImageBytes int64, auditPool *pgxpool.Pool) *Handler {
	return &Handler{Store: store, Uploader: uploader, MaxImageBytes: maxImageBytes, Audit: auditPool}
}

// postInput is the normalized request body for create and update. Requests
// arrive either as JSON (tags as a native array) or as multipart form data
// (tags as a JSON-encoded string field, image as a file part).
type postInput struct {
	Title   *string
	Content *string
	Tags    []string
	Image   *multipart.FileHeader
}

type postRequest struct {
	Title   *string         `json:"title"`
	Content *string         `json:"content"`
	Tags    json.RawMessage `json:"tags"`
}

func parsePostInput(c *fiber.Ctx) (postInput, error) {
	var in postInput

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if v := c.FormValue("title"); v != "" {
			in.Title = &v
		}
		if v := c.FormValue("content"); v != "" {
			in.Content = &v
		}
		in.Tags = NormalizeTags([]byte(c.FormValue("tags")))
		if file, err := c.FormFile("image"); err == nil {
			in.Image = file
		}
		return in, nil
	}

	var body postRequest
	if err := c.BodyParser(&body); err != nil {
		return postInput{}, fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	in.Title = body.Title
	in.Content = body.Content
	in.Tags = NormalizeTags(body.Tags)
	return in, nil
}

// uploadImage validates the attachment and uploads it, returning the public
// URL. It runs before any store write so a failed upload never leaves a post
// row behind.
func (h *Handler) uploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if err := storage.ValidateImage(contentType, file.Size, h.MaxImageBytes); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	f, err := file.Open()
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "unreadable image")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "unreadable image")
	}

	if h.Uploader == nil {
		return "", fiber.NewError(fiber.StatusBadGateway, "image upload failed")
	}
	url, err := h.Uploader.Upload(ctx, storage.NewKey(contentType), contentType, data)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadGateway, "image upload failed")
	}
	return url, nil
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	in, err := parsePostInput(c)
	if err != nil {
		return err
	}
	if in.Title == nil || in.Content == nil {
		return fiber.NewError(fiber.StatusBadRequest, "title and content required")
	}

	ctx := userContext(c)
	post := domain.Post{
		Title:   *in.Title,
		Content: *in.Content,
		Tags:    in.Tags,
		UserID:  userID,
	}

	if in.Image != nil {
		url, err := h.uploadImage(ctx, in.Image)
		if err != nil {
			return err
		}
		post.ImageURL = &url
	}

	created, err := h.Store.Create(ctx, post)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create post")
	}

	audit.Record(ctx, h.Audit, audit.Entry{UserID: userID, Action: "post_create", EntityType: "post", EntityID: &created.ID, IP: c.IP()})
	return c.JSON(created)
}

func (h *Handler) List(c *fiber.Ctx) error {
	out, err := h.Store.List(userContext(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load posts")
	}
	return c.JSON(out)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	post, err := h.Store.Get(userContext(c), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "post not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not load post")
	}
	return c.JSON(post)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx := userContext(c)
	post, err := h.Store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "post not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not load post")
	}
	if post.UserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "forbidden")
	}

	in, err := parsePostInput(c)
	if err != nil {
		return err
	}
	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	post.Tags = in.Tags

	if in.Image != nil {
		url, err := h.uploadImage(ctx, in.Image)
		if err != nil {
			return err
		}
		post.ImageURL = &url
	}

	updated, err := h.Store.Update(ctx, post)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "post not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not update post")
	}

	audit.Record(ctx, h.Audit, audit.Entry{UserID: userID, Action: "post_update", EntityType: "post", EntityID: &updated.ID, IP: c.IP()})
	return c.JSON(updated)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx := userContext(c)
	post, err := h.Store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "post not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not load post")
	}
	if post.UserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "forbidden")
	}

	if err := h.Store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "post not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete post")
	}

	audit.Record(ctx, h.Audit, audit.Entry{UserID: userID, Action: "post_delete", EntityType: "post", EntityID: &id, IP: c.IP()})
	return c.JSON(fiber.Map{"message": "post deleted"})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid post id")
	}
	return id, nil
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
