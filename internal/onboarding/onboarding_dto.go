package onboarding

import (
	"go-vacation/internal/period"
	"go-vacation/internal/shared/dateutil"
)

type PeriodBalance struct {
	PeriodID      string `json:"period_id" binding:"required,uuid"`
	AvailableDays *int   `json:"available_days" binding:"required,min=0,max=30"`
}

// CompleteRequest carries the balance each period had before the
// employee started using the system.
type CompleteRequest struct {
	Balances []PeriodBalance `json:"balances" binding:"dive"`
}

type PeriodResponse struct {
	ID            string `json:"id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	EntitledDays  int    `json:"entitled_days"`
	AvailableDays int    `json:"available_days"`
	Status        string `json:"status"`
}

type StatusResponse struct {
	Completed bool             `json:"completed"`
	Periods   []PeriodResponse `json:"periods"`
}

func mapPeriods(periods []period.Period) []PeriodResponse {
	resp := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		resp[i] = PeriodResponse{
			ID:            p.ID.String(),
			StartDate:     dateutil.Format(p.StartDate),
			EndDate:       dateutil.Format(p.EndDate),
			EntitledDays:  p.EntitledDays,
			AvailableDays: p.AvailableDays,
			Status:        string(p.Status),
		}
	}
	return resp
}
