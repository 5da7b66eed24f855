package handlers

import (
	"errors"
	"mime/multipart"
	"strconv"

	"estate-hub/internal/dto"
	"estate-hub/internal/repository"
	"estate-hub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PropertyHandler struct {
	propertyService *service.PropertyService
	logger          *zap.Logger
}

func NewPropertyHandler(propertyService *service.PropertyService, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		logger:          logger,
	}
}

// List godoc
// @Summary List properties
// @Description List all properties, optionally filtered
// @Tags properties
// @Produce json
// @Param type query string false "Property type"
// @Param listingType query string false "Listing type (sale or rent)"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minBedrooms query int false "Minimum bedrooms"
// @Param minBathrooms query int false "Minimum bathrooms"
// @Param minArea query number false "Minimum area"
// @Param location query string false "Location substring"
// @Success 200 {array} dto.PropertyResponse
// @Router /properties [get]
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	filter := repository.PropertyFilter{
		Type:         c.Query("type"),
		ListingType:  c.Query("listingType"),
		MinPrice:     c.QueryFloat("minPrice"),
		MaxPrice:     c.QueryFloat("maxPrice"),
		MinBedrooms:  c.QueryInt("minBedrooms"),
		MinBathrooms: c.QueryInt("minBathrooms"),
		MinArea:      c.QueryFloat("minArea"),
		Location:     c.Query("location"),
	}

	properties, err := h.propertyService.List(c.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list properties", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch properties",
		})
	}

	return c.JSON(properties)
}

// Get godoc
// @Summary Get a property
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} dto.PropertyResponse
// @Failure 404 {object} map[string]string
// @Router /properties/{id} [get]
func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property ID"})
	}

	property, err := h.propertyService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
		}
		h.logger.Error("Failed to fetch property", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	return c.JSON(property)
}

// Create godoc
// @Summary Create a property
// @Description Create a listing from multipart form data with up to 10 images
// @Tags properties
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Success 201 {object} dto.PropertyResponse
// @Failure 400 {object} map[string]string
// @Router /properties [post]
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	input := parsePropertyForm(c)
	if input.Title == "" || input.Location == "" || input.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title, location and a positive price are required",
		})
	}

	property, err := h.propertyService.Create(c.Context(), userID, input, formFiles(c, "images"))
	if err != nil {
		if status, msg, ok := uploadErrorStatus(err); ok {
			return c.Status(status).JSON(fiber.Map{"error": msg})
		}
		h.logger.Error("Failed to create property", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(property)
}

// Update godoc
// @Summary Update a property
// @Description Update a listing; only the owner may update it
// @Tags properties
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param id path string true "Property ID"
// @Success 200 {object} dto.PropertyResponse
// @Failure 403 {object} map[string]string
// @Router /properties/{id} [put]
func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property ID"})
	}

	input := parsePropertyForm(c)
	existingImages := c.FormValue("existingImages")

	property, err := h.propertyService.Update(c.Context(), userID, propertyID, input, existingImages, formFiles(c, "newImages"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPropertyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
		case errors.Is(err, service.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only edit your own properties"})
		}
		if status, msg, ok := uploadErrorStatus(err); ok {
			return c.Status(status).JSON(fiber.Map{"error": msg})
		}
		h.logger.Error("Failed to update property", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(property)
}

// Delete godoc
// @Summary Delete a property
// @Description Delete a listing; owners delete their own, admins any
// @Tags properties
// @Produce json
// @Security Bearer
// @Param id path string true "Property ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /properties/{id} [delete]
func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property ID"})
	}

	if err := h.propertyService.Delete(c.Context(), userID, getUserRole(c), propertyID); err != nil {
		switch {
		case errors.Is(err, service.ErrPropertyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
		case errors.Is(err, service.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only delete your own properties"})
		}
		h.logger.Error("Failed to delete property", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	return c.JSON(fiber.Map{"message": "Property deleted successfully"})
}

// AddComment godoc
// @Summary Comment on a property
// @Tags properties
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Property ID"
// @Param request body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.PropertyResponse
// @Router /properties/{id}/comments [post]
func (h *PropertyHandler) AddComment(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property ID"})
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	property, err := h.propertyService.AddComment(c.Context(), userID, propertyID, &req)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
		}
		h.logger.Error("Failed to add comment", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(property)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Delete a comment; authors delete their own, admins any
// @Tags properties
// @Produce json
// @Security Bearer
// @Param id path string true "Property ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} dto.PropertyResponse
// @Failure 403 {object} map[string]string
// @Router /properties/{id}/comments/{commentId} [delete]
func (h *PropertyHandler) DeleteComment(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property ID"})
	}
	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid comment ID"})
	}

	property, err := h.propertyService.DeleteComment(c.Context(), userID, getUserRole(c), propertyID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Comment not found"})
		case errors.Is(err, service.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only delete your own comments"})
		}
		h.logger.Error("Failed to delete comment", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	return c.JSON(property)
}

func parsePropertyForm(c *fiber.Ctx) service.PropertyInput {
	price, _ := strconv.ParseFloat(c.FormValue("price"), 64)
	area, _ := strconv.ParseFloat(c.FormValue("area"), 64)
	bedrooms, _ := strconv.Atoi(c.FormValue("bedrooms"))
	bathrooms, _ := strconv.Atoi(c.FormValue("bathrooms"))

	return service.PropertyInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       price,
		Location:    c.FormValue("location"),
		Bedrooms:    bedrooms,
		Bathrooms:   bathrooms,
		Area:        area,
		Type:        c.FormValue("type"),
		ListingType: c.FormValue("listingType"),
		Features:    c.FormValue("features"),
	}
}

// formFiles reads uploaded files from the named multipart field: "images"
// on create, "newImages" on update.
func formFiles(c *fiber.Ctx, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}

func uploadErrorStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, service.ErrTooManyImages):
		return fiber.StatusBadRequest, "Too many images, maximum is 10", true
	case errors.Is(err, service.ErrImageTooLarge):
		return fiber.StatusBadRequest, "Image exceeds the 5MB size limit", true
	case errors.Is(err, service.ErrUnsupportedFile):
		return fiber.StatusBadRequest, "Only jpg, jpeg, png and webp images are allowed", true
	}
	return 0, "", false
}
