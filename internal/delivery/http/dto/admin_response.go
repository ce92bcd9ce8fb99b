package dto

import "craftlink/internal/repository"

type OverviewResponse struct {
	Users    int64 `json:"users"`
	JobPosts int64 `json:"job_posts"`
	Bookings int64 `json:"bookings"`
	Ratings  int64 `json:"ratings"`
}

func NewOverviewResponse(o repository.Overview) OverviewResponse {
	return OverviewResponse{
		Users:    o.Users,
		JobPosts: o.JobPosts,
		Bookings: o.Bookings,
		Ratings:  o.Ratings,
	}
}
