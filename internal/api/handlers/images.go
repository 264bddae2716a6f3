package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"dealer-backend/internal/services"
	"dealer-backend/pkg/storage"
	"dealer-backend/pkg/utils"
)

// ImageHandler moves vehicle photos between the admin screen and the object
// store, keeping the listing's image list in step.
type ImageHandler struct {
	vehicleService *services.VehicleService
	store          storage.ObjectStore
}

func NewImageHandler(vehicleService *services.VehicleService, store storage.ObjectStore) *ImageHandler {
	return &ImageHandler{
		vehicleService: vehicleService,
		store:          store,
	}
}

// UploadImages accepts one or more multipart files under the "images" field,
// stores each one and appends the resulting public URLs to the vehicle.
func (h *ImageHandler) UploadImages(c *gin.Context) {
	vehicleID := c.Param("id")
	if vehicleID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Vehicle ID is required", nil)
		return
	}

	// Fail before any upload when the vehicle does not exist.
	if _, err := h.vehicleService.GetVehicleByID(c.Request.Context(), vehicleID); err != nil {
		respondServiceError(c, "Failed to resolve vehicle", err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "No image files supplied", nil)
		return
	}

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		contentType := fileHeader.Header.Get("Content-Type")
		if err := storage.ValidateImage(contentType, fileHeader.Size); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Rejected image "+fileHeader.Filename, err)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Unreadable image "+fileHeader.Filename, err)
			return
		}
		data, err := io.ReadAll(io.LimitReader(file, storage.MaxImageSize+1))
		file.Close()
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Unreadable image "+fileHeader.Filename, err)
			return
		}
		if int64(len(data)) > storage.MaxImageSize {
			utils.ErrorResponse(c, http.StatusBadRequest, "Rejected image "+fileHeader.Filename, storage.ErrImageTooLarge)
			return
		}

		key := storage.ObjectKey(vehicleID, contentType)
		publicURL, err := h.store.Upload(c.Request.Context(), key, contentType, data)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadGateway, "Image upload failed", err)
			return
		}
		urls = append(urls, publicURL)
	}

	vehicle, err := h.vehicleService.AddVehicleImages(c.Request.Context(), vehicleID, urls)
	if err != nil {
		respondServiceError(c, "Failed to attach images", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Images uploaded successfully", vehicle)
}

type removeImageRequest struct {
	URL string `json:"url" binding:"required"`
}

// RemoveImage detaches an image from the vehicle. The stored object is
// deleted in the background.
func (h *ImageHandler) RemoveImage(c *gin.Context) {
	vehicleID := c.Param("id")
	if vehicleID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Vehicle ID is required", nil)
		return
	}

	var req removeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	vehicle, err := h.vehicleService.RemoveVehicleImage(c.Request.Context(), vehicleID, req.URL)
	if err != nil {
		respondServiceError(c, "Failed to remove image", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Image removed successfully", vehicle)
}
