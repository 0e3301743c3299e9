package model

import "time"

/* ==========================
   Bus & BusStop
========================== */

// BusModel: posisi live (lat/lng/last_updated) nullable sampai laporan
// pertama dari driver. Update posisi last-write-wins.
type BusModel struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	BusNumber        string     `gorm:"size:20;unique;not null" json:"bus_number"`
	RouteDescription *string    `json:"route_description,omitempty"`
	IsActive         bool       `gorm:"not null;default:true" json:"is_active"`
	CurrentLat       *float64   `json:"current_lat,omitempty"`
	CurrentLng       *float64   `json:"current_lng,omitempty"`
	LastUpdated      *time.Time `json:"last_updated,omitempty"`
	DriverID         *uint      `json:"driver_id,omitempty"`
}

func (BusModel) TableName() string {
	return "buses"
}

// BusStopModel: urutan stop unik per bus. is_crossed di-set manual/eksternal,
// tidak ada endpoint mutasinya di core ini.
type BusStopModel struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	BusID     uint    `gorm:"not null;uniqueIndex:uq_bus_stop_order" json:"bus_id"`
	StopName  string  `gorm:"size:100;not null" json:"stop_name"`
	StopOrder int     `gorm:"not null;uniqueIndex:uq_bus_stop_order" json:"stop_order"`
	Lat       float64 `gorm:"not null" json:"lat"`
	Lng       float64 `gorm:"not null" json:"lng"`
	IsCrossed bool    `gorm:"not null;default:false" json:"is_crossed"`
}

func (BusStopModel) TableName() string {
	return "bus_stops"
}

/* ==========================
   Driver & BusManager
========================== */

type DriverModel struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Name              string  `gorm:"size:100;not null" json:"name"`
	Email             *string `gorm:"size:100;unique" json:"email,omitempty"`
	PasswordHash      string  `gorm:"size:255;not null" json:"-"`
	AssignedBusID     *uint   `json:"assigned_bus_id,omitempty"`
	IsSharingLocation bool    `gorm:"not null;default:false" json:"is_sharing_location"`
}

func (DriverModel) TableName() string {
	return "drivers"
}

type BusManagerModel struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"size:100;not null" json:"name"`
	Email        string  `gorm:"size:100;unique;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	Phone        *string `gorm:"size:20" json:"phone,omitempty"`
}

func (BusManagerModel) TableName() string {
	return "bus_managers"
}
