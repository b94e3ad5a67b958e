package attendance

import "time"

type ClockInRequest struct {
	ShopID    *string  `json:"shop_id" binding:"omitempty,uuid"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Notes     *string  `json:"notes"`
}

type ClockOutRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Notes     *string  `json:"notes"`
}

type LogResponse struct {
	ID               string     `json:"id"`
	CompanyUserID    string     `json:"company_user_id"`
	ShopID           *string    `json:"shop_id"`
	ClockInAt        time.Time  `json:"clock_in_at"`
	ClockOutAt       *time.Time `json:"clock_out_at"`
	GeofenceVerified bool       `json:"geofence_verified"`
	Notes            *string    `json:"notes"`
}

func toLogResponse(l *Log) LogResponse {
	resp := LogResponse{
		ID:               l.ID.String(),
		CompanyUserID:    l.CompanyUserID.String(),
		ClockInAt:        l.ClockInAt,
		ClockOutAt:       l.ClockOutAt,
		GeofenceVerified: l.GeofenceVerified,
		Notes:            l.Notes,
	}
	if l.ShopID != nil {
		id := l.ShopID.String()
		resp.ShopID = &id
	}
	return resp
}
