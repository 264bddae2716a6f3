package models

import (
	"time"
)

// FuelType is the closed set of accepted fuel types.
type FuelType string

const (
	FuelGasoline FuelType = "Gasoline"
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelGasoline, FuelDiesel, FuelElectric, FuelHybrid:
		return true
	}
	return false
}

// Transmission is the closed set of accepted transmissions.
type Transmission string

const (
	TransmissionManual    Transmission = "Manual"
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionCVT       Transmission = "CVT"
)

func (t Transmission) Valid() bool {
	switch t {
	case TransmissionManual, TransmissionAutomatic, TransmissionCVT:
		return true
	}
	return false
}

// Drivetrain is the closed set of accepted drivetrains.
type Drivetrain string

const (
	DrivetrainFWD Drivetrain = "FWD"
	DrivetrainRWD Drivetrain = "RWD"
	DrivetrainAWD Drivetrain = "AWD"
	Drivetrain4WD Drivetrain = "4WD"
)

func (d Drivetrain) Valid() bool {
	switch d {
	case DrivetrainFWD, DrivetrainRWD, DrivetrainAWD, Drivetrain4WD:
		return true
	}
	return false
}

// VehicleStatus is the lifecycle status of a listed vehicle.
type VehicleStatus string

const (
	StatusAvailable VehicleStatus = "available"
	StatusSold      VehicleStatus = "sold"
	StatusPending   VehicleStatus = "pending"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusPending:
		return true
	}
	return false
}

// Vehicle is a row of the vehicles table. make, model, year, price, mileage
// and status are always present on a persisted record; the remaining columns
// are nullable and stay NULL rather than holding empty-string placeholders.
// Images and features never contain blank entries; the first image is the
// primary one.
type Vehicle struct {
	ID            string        `json:"id" gorm:"primaryKey;size:36"`
	Make          string        `json:"make" gorm:"not null;size:100;index"`
	Model         string        `json:"model" gorm:"not null;size:100"`
	Year          int           `json:"year" gorm:"not null"`
	Price         int64         `json:"price" gorm:"not null"`
	Mileage       int64         `json:"mileage" gorm:"not null;default:0"`
	FuelType      *FuelType     `json:"fuel_type,omitempty" gorm:"size:20"`
	Transmission  *Transmission `json:"transmission,omitempty" gorm:"size:20"`
	Drivetrain    *Drivetrain   `json:"drivetrain,omitempty" gorm:"size:10"`
	ExteriorColor *string       `json:"exterior_color,omitempty" gorm:"size:50"`
	InteriorColor *string       `json:"interior_color,omitempty" gorm:"size:50"`
	Images        []string      `json:"images" gorm:"serializer:json"`
	Features      []string      `json:"features" gorm:"serializer:json"`
	Engine        *string       `json:"engine,omitempty" gorm:"size:100"`
	Seating       *int          `json:"seating,omitempty"`
	Doors         *int          `json:"doors,omitempty"`
	BodyStyle     *string       `json:"body_style,omitempty" gorm:"size:50"`
	Description   *string       `json:"description,omitempty" gorm:"type:text"`
	VIN           string        `json:"vin" gorm:"size:64"`
	Status        VehicleStatus `json:"status" gorm:"not null;size:20;default:'available';index"`
	CreatedAt     time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// InventoryStats is the aggregate view the admin dashboard reads.
type InventoryStats struct {
	Total      int   `json:"total"`
	Available  int   `json:"available"`
	Sold       int   `json:"sold"`
	Pending    int   `json:"pending"`
	TotalValue int64 `json:"total_value"`
}
