package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"dealer-backend/internal/errs"
	"dealer-backend/internal/models"
	"dealer-backend/internal/query"
	"dealer-backend/internal/repository"
)

const (
	minYear        = 1900
	vinRandLength  = 6
	vinRandCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ImageCleaner receives image URLs whose records are gone. Implementations
// must never block and never report failure to the caller.
type ImageCleaner interface {
	Enqueue(imageURLs []string)
}

// VehicleService is the single point of contact between the API surface and
// the persisted vehicle collection. It owns the shaping contract: what a
// candidate record must look like before it reaches the store.
type VehicleService struct {
	vehicleRepo *repository.VehicleRepository
	cleaner     ImageCleaner
	log         *zap.Logger
}

func NewVehicleService(vehicleRepo *repository.VehicleRepository, log *zap.Logger) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		log:         log,
	}
}

// SetImageCleaner wires the best-effort janitor used after deletes.
func (s *VehicleService) SetImageCleaner(cleaner ImageCleaner) {
	s.cleaner = cleaner
}

// CreateVehicleRequest is a candidate record without identifier or
// timestamps. Optional fields left empty are dropped before the insert so
// the store applies its own defaults.
type CreateVehicleRequest struct {
	Make          string   `json:"make"`
	Model         string   `json:"model"`
	Year          int      `json:"year"`
	Price         int64    `json:"price"`
	Mileage       int64    `json:"mileage"`
	FuelType      string   `json:"fuel_type,omitempty"`
	Transmission  string   `json:"transmission,omitempty"`
	Drivetrain    string   `json:"drivetrain,omitempty"`
	ExteriorColor string   `json:"exterior_color,omitempty"`
	InteriorColor string   `json:"interior_color,omitempty"`
	Images        []string `json:"images,omitempty"`
	Features      []string `json:"features,omitempty"`
	Engine        string   `json:"engine,omitempty"`
	Seating       int      `json:"seating,omitempty"`
	Doors         int      `json:"doors,omitempty"`
	BodyStyle     string   `json:"body_style,omitempty"`
	Description   string   `json:"description,omitempty"`
	VIN           string   `json:"vin,omitempty"`
	Status        string   `json:"status,omitempty"`
}

// UpdateVehicleRequest is a partial record. A nil pointer means "leave the
// field alone"; a pointer to an empty value means "clear the column". The
// distinction is load-bearing, which is why every field is a pointer.
type UpdateVehicleRequest struct {
	Make          *string   `json:"make"`
	Model         *string   `json:"model"`
	Year          *int      `json:"year"`
	Price         *int64    `json:"price"`
	Mileage       *int64    `json:"mileage"`
	FuelType      *string   `json:"fuel_type"`
	Transmission  *string   `json:"transmission"`
	Drivetrain    *string   `json:"drivetrain"`
	ExteriorColor *string   `json:"exterior_color"`
	InteriorColor *string   `json:"interior_color"`
	Images        *[]string `json:"images"`
	Features      *[]string `json:"features"`
	Engine        *string   `json:"engine"`
	Seating       *int      `json:"seating"`
	Doors         *int      `json:"doors"`
	BodyStyle     *string   `json:"body_style"`
	Description   *string   `json:"description"`
	VIN           *string   `json:"vin"`
	Status        *string   `json:"status"`
}

// GalleryResult is what the browsing view renders: the filtered ordering plus
// the facet options derived from the full collection.
type GalleryResult struct {
	Vehicles []models.Vehicle `json:"vehicles"`
	Facets   query.Facets     `json:"facets"`
	Total    int              `json:"total"`
}

// GetAllVehicles loads the full collection. Read failures degrade to an
// empty collection so browsing never hard-fails; write paths stay loud.
func (s *VehicleService) GetAllVehicles(ctx context.Context) []models.Vehicle {
	vehicles, err := s.vehicleRepo.FindAll(ctx)
	if err != nil {
		s.log.Warn("vehicle list fetch failed, serving empty collection", zap.Error(err))
		return []models.Vehicle{}
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	return vehicles
}

// Gallery runs the query pipeline over a fresh snapshot of the collection.
func (s *VehicleService) Gallery(ctx context.Context, criteria query.Criteria) GalleryResult {
	vehicles := s.GetAllVehicles(ctx)
	filtered := query.Apply(vehicles, criteria)
	return GalleryResult{
		Vehicles: filtered,
		Facets:   query.DeriveFacets(vehicles),
		Total:    len(filtered),
	}
}

func (s *VehicleService) GetVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	return s.vehicleRepo.FindByID(ctx, id)
}

// SearchVehicles applies the free-text predicate over a fresh list.
func (s *VehicleService) SearchVehicles(ctx context.Context, term string) []models.Vehicle {
	vehicles := s.GetAllVehicles(ctx)
	if term == "" {
		return vehicles
	}
	matched := make([]models.Vehicle, 0, len(vehicles))
	criteria := query.Criteria{Term: term}
	for _, v := range vehicles {
		if query.Matches(v, criteria) {
			matched = append(matched, v)
		}
	}
	return matched
}

// CreateVehicle validates and shapes the candidate, then inserts it.
func (s *VehicleService) CreateVehicle(ctx context.Context, req *CreateVehicleRequest) (*models.Vehicle, error) {
	vehicle, err := shapeCreate(req)
	if err != nil {
		return nil, err
	}

	created, err := s.vehicleRepo.Create(ctx, vehicle)
	if err != nil {
		return nil, err
	}

	s.log.Info("vehicle created",
		zap.String("id", created.ID),
		zap.String("make", created.Make),
		zap.String("model", created.Model))
	return created, nil
}

// UpdateVehicle applies a partial update. Only fields present in req touch
// the store; present-but-empty optional fields clear their column.
func (s *VehicleService) UpdateVehicle(ctx context.Context, id string, req *UpdateVehicleRequest) (*models.Vehicle, error) {
	updates, err := shapeUpdate(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.vehicleRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.log.Info("vehicle updated", zap.String("id", id))
	return updated, nil
}

// DeleteVehicle removes the record, then hands its images to the janitor.
// Cleanup failures can never fail the delete.
func (s *VehicleService) DeleteVehicle(ctx context.Context, id string) error {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.cleaner != nil && len(vehicle.Images) > 0 {
		s.cleaner.Enqueue(vehicle.Images)
	}

	s.log.Info("vehicle deleted", zap.String("id", id))
	return nil
}

// AddVehicleImages appends freshly stored image URLs to a listing.
func (s *VehicleService) AddVehicleImages(ctx context.Context, id string, urls []string) (*models.Vehicle, error) {
	cleaned := filterBlank(urls)
	if len(cleaned) == 0 {
		return nil, errs.NewValidation("images", "no image URLs supplied")
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	images := append(append([]string{}, vehicle.Images...), cleaned...)
	updated, err := s.vehicleRepo.Update(ctx, id, map[string]interface{}{"images": marshalStringList(images)})
	if err != nil {
		return nil, err
	}

	s.log.Info("vehicle images added", zap.String("id", id), zap.Int("count", len(cleaned)))
	return updated, nil
}

// RemoveVehicleImage detaches an image URL from a listing, then hands the
// stored object to the janitor. The record update is authoritative; the
// object removal is best effort.
func (s *VehicleService) RemoveVehicleImage(ctx context.Context, id, imageURL string) (*models.Vehicle, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, errs.NewValidation("url", "must not be empty")
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	images := make([]string, 0, len(vehicle.Images))
	found := false
	for _, img := range vehicle.Images {
		if img == imageURL {
			found = true
			continue
		}
		images = append(images, img)
	}
	if !found {
		return nil, errs.NewValidation("url", "image is not attached to this vehicle")
	}

	updated, err := s.vehicleRepo.Update(ctx, id, map[string]interface{}{"images": marshalStringList(images)})
	if err != nil {
		return nil, err
	}

	if s.cleaner != nil {
		s.cleaner.Enqueue([]string{imageURL})
	}

	s.log.Info("vehicle image removed", zap.String("id", id))
	return updated, nil
}

// GetInventoryStats derives the aggregate view from a fresh snapshot.
func (s *VehicleService) GetInventoryStats(ctx context.Context) models.InventoryStats {
	vehicles := s.GetAllVehicles(ctx)

	stats := models.InventoryStats{Total: len(vehicles)}
	for _, v := range vehicles {
		switch v.Status {
		case models.StatusAvailable:
			stats.Available++
		case models.StatusSold:
			stats.Sold++
		case models.StatusPending:
			stats.Pending++
		}
		stats.TotalValue += v.Price
	}
	return stats
}

// shapeCreate turns a candidate into a persistable record or reports the
// first validation failure.
func shapeCreate(req *CreateVehicleRequest) (*models.Vehicle, error) {
	makeName := strings.TrimSpace(req.Make)
	modelName := strings.TrimSpace(req.Model)

	if makeName == "" {
		return nil, errs.NewValidation("make", "must not be empty")
	}
	if modelName == "" {
		return nil, errs.NewValidation("model", "must not be empty")
	}
	if req.Price <= 0 {
		return nil, errs.NewValidation("price", "must be greater than zero")
	}
	if err := validateYear(req.Year); err != nil {
		return nil, err
	}
	if req.Mileage < 0 {
		return nil, errs.NewValidation("mileage", "must not be negative")
	}

	vehicle := &models.Vehicle{
		Make:     makeName,
		Model:    modelName,
		Year:     req.Year,
		Price:    req.Price,
		Mileage:  req.Mileage,
		Images:   filterBlank(req.Images),
		Features: filterBlank(req.Features),
		Status:   models.StatusAvailable,
	}

	if req.Status != "" {
		status := models.VehicleStatus(req.Status)
		if !status.Valid() {
			return nil, errs.NewValidation("status", "must be available, sold or pending")
		}
		vehicle.Status = status
	}

	// Optional enum fields are dropped when empty and rejected when not in
	// their closed set.
	if ft := strings.TrimSpace(req.FuelType); ft != "" {
		fuel := models.FuelType(ft)
		if !fuel.Valid() {
			return nil, errs.NewValidation("fuel_type", "unrecognized fuel type")
		}
		vehicle.FuelType = &fuel
	}
	if tr := strings.TrimSpace(req.Transmission); tr != "" {
		transmission := models.Transmission(tr)
		if !transmission.Valid() {
			return nil, errs.NewValidation("transmission", "unrecognized transmission")
		}
		vehicle.Transmission = &transmission
	}
	if dt := strings.TrimSpace(req.Drivetrain); dt != "" {
		drivetrain := models.Drivetrain(dt)
		if !drivetrain.Valid() {
			return nil, errs.NewValidation("drivetrain", "unrecognized drivetrain")
		}
		vehicle.Drivetrain = &drivetrain
	}

	vehicle.ExteriorColor = optionalString(req.ExteriorColor)
	vehicle.InteriorColor = optionalString(req.InteriorColor)
	vehicle.Engine = optionalString(req.Engine)
	vehicle.BodyStyle = optionalString(req.BodyStyle)
	vehicle.Description = optionalString(req.Description)

	if req.Seating != 0 {
		if req.Seating < 1 || req.Seating > 8 {
			return nil, errs.NewValidation("seating", "must be between 1 and 8")
		}
		seating := req.Seating
		vehicle.Seating = &seating
	}
	if req.Doors != 0 {
		if req.Doors < 2 || req.Doors > 5 {
			return nil, errs.NewValidation("doors", "must be between 2 and 5")
		}
		doors := req.Doors
		vehicle.Doors = &doors
	}

	vehicle.VIN = strings.TrimSpace(req.VIN)
	if vehicle.VIN == "" {
		vehicle.VIN = generateVIN()
	}

	return vehicle, nil
}

// shapeUpdate builds the column map for a partial update. Keys absent from
// the request never appear in the map; present-but-empty optional fields map
// to nil, which the store writes as NULL.
func shapeUpdate(req *UpdateVehicleRequest) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if req.Make != nil {
		trimmed := strings.TrimSpace(*req.Make)
		if trimmed == "" {
			return nil, errs.NewValidation("make", "must not be empty")
		}
		updates["make"] = trimmed
	}
	if req.Model != nil {
		trimmed := strings.TrimSpace(*req.Model)
		if trimmed == "" {
			return nil, errs.NewValidation("model", "must not be empty")
		}
		updates["model"] = trimmed
	}
	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		updates["year"] = *req.Year
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, errs.NewValidation("price", "must be greater than zero")
		}
		updates["price"] = *req.Price
	}
	if req.Mileage != nil {
		if *req.Mileage < 0 {
			return nil, errs.NewValidation("mileage", "must not be negative")
		}
		updates["mileage"] = *req.Mileage
	}
	if req.Status != nil {
		status := models.VehicleStatus(*req.Status)
		if !status.Valid() {
			return nil, errs.NewValidation("status", "must be available, sold or pending")
		}
		updates["status"] = status
	}

	if req.FuelType != nil {
		if trimmed := strings.TrimSpace(*req.FuelType); trimmed != "" {
			fuel := models.FuelType(trimmed)
			if !fuel.Valid() {
				return nil, errs.NewValidation("fuel_type", "unrecognized fuel type")
			}
			updates["fuel_type"] = fuel
		} else {
			updates["fuel_type"] = nil
		}
	}
	if req.Transmission != nil {
		if trimmed := strings.TrimSpace(*req.Transmission); trimmed != "" {
			transmission := models.Transmission(trimmed)
			if !transmission.Valid() {
				return nil, errs.NewValidation("transmission", "unrecognized transmission")
			}
			updates["transmission"] = transmission
		} else {
			updates["transmission"] = nil
		}
	}
	if req.Drivetrain != nil {
		if trimmed := strings.TrimSpace(*req.Drivetrain); trimmed != "" {
			drivetrain := models.Drivetrain(trimmed)
			if !drivetrain.Valid() {
				return nil, errs.NewValidation("drivetrain", "unrecognized drivetrain")
			}
			updates["drivetrain"] = drivetrain
		} else {
			updates["drivetrain"] = nil
		}
	}

	setOptionalString(updates, "exterior_color", req.ExteriorColor)
	setOptionalString(updates, "interior_color", req.InteriorColor)
	setOptionalString(updates, "engine", req.Engine)
	setOptionalString(updates, "body_style", req.BodyStyle)
	setOptionalString(updates, "description", req.Description)

	// VIN is a plain column, so clearing means empty string, not NULL.
	if req.VIN != nil {
		updates["vin"] = strings.TrimSpace(*req.VIN)
	}

	if req.Seating != nil {
		if *req.Seating == 0 {
			updates["seating"] = nil
		} else if *req.Seating < 1 || *req.Seating > 8 {
			return nil, errs.NewValidation("seating", "must be between 1 and 8")
		} else {
			updates["seating"] = *req.Seating
		}
	}
	if req.Doors != nil {
		if *req.Doors == 0 {
			updates["doors"] = nil
		} else if *req.Doors < 2 || *req.Doors > 5 {
			return nil, errs.NewValidation("doors", "must be between 2 and 5")
		} else {
			updates["doors"] = *req.Doors
		}
	}

	if req.Images != nil {
		updates["images"] = marshalStringList(filterBlank(*req.Images))
	}
	if req.Features != nil {
		updates["features"] = marshalStringList(filterBlank(*req.Features))
	}

	return updates, nil
}

func validateYear(year int) error {
	maxYear := time.Now().Year() + 1
	if year < minYear || year > maxYear {
		return errs.NewValidation("year", fmt.Sprintf("must be between %d and %d", minYear, maxYear))
	}
	return nil
}

// marshalStringList encodes a list for a column update. Map-based updates
// skip gorm's field serializers, so list columns must arrive as JSON text.
func marshalStringList(values []string) string {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// filterBlank drops blank and whitespace-only entries, trimming the rest.
func filterBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// optionalString trims s and returns nil when nothing is left, so empty
// optionals are dropped rather than persisted as empty strings.
func optionalString(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// setOptionalString records a present optional field: trimmed value, or NULL
// when the caller supplied an explicitly empty one.
func setOptionalString(updates map[string]interface{}, column string, value *string) {
	if value == nil {
		return
	}
	if trimmed := strings.TrimSpace(*value); trimmed != "" {
		updates[column] = trimmed
	} else {
		updates[column] = nil
	}
}

// generateVIN builds the synthetic AUTO<timestamp><random6> VIN the store
// assigns when a listing arrives without one.
func generateVIN() string {
	suffix := make([]byte, vinRandLength)
	for i := range suffix {
		suffix[i] = vinRandCharset[rand.IntN(len(vinRandCharset))]
	}
	return fmt.Sprintf("AUTO%d%s", time.Now().UnixMilli(), suffix)
}
