package shop

import "time"

type CreateShopRequest struct {
	Code            string   `json:"code" binding:"required,max=50"`
	Name            string   `json:"name" binding:"required,max=255"`
	Address         *string  `json:"address"`
	Latitude        *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude       *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	GeofenceRadiusM *float64 `json:"geofence_radius_m" binding:"omitempty,gt=0,lte=5000"`
}

type UpdateShopRequest struct {
	Name            *string  `json:"name" binding:"omitempty,max=255"`
	Address         *string  `json:"address"`
	Latitude        *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude       *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	GeofenceRadiusM *float64 `json:"geofence_radius_m" binding:"omitempty,gt=0,lte=5000"`
}

type AssignRepRequest struct {
	CompanyUserID string `json:"company_user_id" binding:"required,uuid"`
}

type ShopResponse struct {
	ID                 string     `json:"id"`
	Code               string     `json:"code"`
	Name               string     `json:"name"`
	Address            *string    `json:"address"`
	Latitude           float64    `json:"latitude"`
	Longitude          float64    `json:"longitude"`
	GeofenceRadiusM    float64    `json:"geofence_radius_m"`
	LocationVerifiedAt *time.Time `json:"location_verified_at"`
	CreatedAt          time.Time  `json:"created_at"`
}

func toShopResponse(s *Shop) ShopResponse {
	return ShopResponse{
		ID:                 s.ID.String(),
		Code:               s.Code,
		Name:               s.Name,
		Address:            s.Address,
		Latitude:           s.Latitude,
		Longitude:          s.Longitude,
		GeofenceRadiusM:    s.GeofenceRadiusM,
		LocationVerifiedAt: s.LocationVerifiedAt,
		CreatedAt:          s.CreatedAt,
	}
}
