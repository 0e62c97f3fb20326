package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"achievement-review-system/middleware"
	"achievement-review-system/models"
	"achievement-review-system/services"
	"achievement-review-system/utils"
)

func SetupAchievementRoutes(
	app *fiber.App,
	achievements *services.AchievementService,
	analytics *services.AnalyticsService,
	tokens *utils.TokenManager,
	users services.UserStore,
) {
	api := app.Group("/api/achievements", middleware.AuthRequired(tokens, users))

	// Admins may manage their own submissions too, so the owner routes admit
	// both roles; ownership itself is enforced inside the service.
	ownerOnly := middleware.RoleRequired(models.RoleStudent, models.RoleAdmin)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)

	api.Post("/", ownerOnly, func(c *fiber.Ctx) error {
		in := services.SubmitInput{
			Title:       c.FormValue("title"),
			Category:    c.FormValue("category"),
			Description: c.FormValue("description"),
			Date:        c.FormValue("date"),
		}

		if fileHeader, err := c.FormFile("certificate"); err == nil {
			upload, file, err := openUpload(fileHeader)
			if err != nil {
				return writeError(c, err)
			}
			defer file.Close()
			in.File = upload
		}

		achievement, err := achievements.Submit(c.UserContext(), middleware.CurrentUser(c).ID, in)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(achievement)
	})

	api.Get("/me", ownerOnly, func(c *fiber.Ctx) error {
		items, err := achievements.ListOwned(c.UserContext(), middleware.CurrentUser(c).ID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(items)
	})

	api.Put("/:id", ownerOnly, func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "multipart form required"})
		}

		// Only keys present in the form end up in the patch; an empty value
		// for a present key still overwrites.
		patch := services.Patch{
			Title:       formField(form, "title"),
			Category:    formField(form, "category"),
			Description: formField(form, "description"),
			Date:        formField(form, "date"),
		}

		var upload *services.Upload
		if files := form.File["certificate"]; len(files) > 0 {
			u, file, err := openUpload(files[0])
			if err != nil {
				return writeError(c, err)
			}
			defer file.Close()
			upload = u
		}

		achievement, err := achievements.Edit(c.UserContext(), middleware.CurrentUser(c).ID, c.Params("id"), patch, upload)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(achievement)
	})

	api.Delete("/:id", ownerOnly, func(c *fiber.Ctx) error {
		if err := achievements.Delete(c.UserContext(), middleware.CurrentUser(c).ID, c.Params("id")); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	api.Get("/", adminOnly, func(c *fiber.Ctx) error {
		filter := services.AchievementFilter{
			Category: models.Category(c.Query("category")),
			Status:   models.Status(c.Query("status")),
		}
		items, err := achievements.AdminList(c.UserContext(), filter)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(items)
	})

	api.Post("/:id/review", adminOnly, func(c *fiber.Ctx) error {
		var req models.ReviewRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validateBody(&req); err != nil {
			return writeError(c, err)
		}

		achievement, err := achievements.Review(c.UserContext(), c.Params("id"), req.Action, req.Comment)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(achievement)
	})

	api.Get("/stats/analytics", adminOnly, func(c *fiber.Ctx) error {
		overview, err := analytics.Overview(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(overview)
	})
}

// openUpload adapts a multipart file header into the service's Upload. The
// caller owns closing the returned file.
func openUpload(fileHeader *multipart.FileHeader) (*services.Upload, multipart.File, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}
	return &services.Upload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     file,
	}, file, nil
}

func formField(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
