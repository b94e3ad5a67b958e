package visit

import "time"

type StartVisitRequest struct {
	ShopID    string   `json:"shop_id" binding:"required,uuid"`
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	Notes     *string  `json:"notes"`
}

type VisitResponse struct {
	ID               string     `json:"id"`
	ShopID           string     `json:"shop_id"`
	CompanyUserID    string     `json:"company_user_id"`
	StartedAt        time.Time  `json:"started_at"`
	EndedAt          *time.Time `json:"ended_at"`
	GeofenceVerified bool       `json:"geofence_verified"`
	Notes            *string    `json:"notes"`
}

func toVisitResponse(v *Visit) VisitResponse {
	return VisitResponse{
		ID:               v.ID.String(),
		ShopID:           v.ShopID.String(),
		CompanyUserID:    v.CompanyUserID.String(),
		StartedAt:        v.StartedAt,
		EndedAt:          v.EndedAt,
		GeofenceVerified: v.GeofenceVerified,
		Notes:            v.Notes,
	}
}
