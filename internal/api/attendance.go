package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/protomem/hr-console/internal/model"
)

type AttendanceAPI struct {
	Logger *slog.Logger
	*Client
}

func NewAttendanceAPI(logger *slog.Logger, client *Client) *AttendanceAPI {
	return &AttendanceAPI{
		Logger: logger.With("api", "attendance"),
		Client: client,
	}
}

// AttendanceDraft is the request body for logging or correcting an
// attendance record. Check-in and check-out times are optional.
type AttendanceDraft struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	CheckIn    string `json:"checkIn,omitempty"`
	CheckOut   string `json:"checkOut,omitempty"`
}

func (a *AttendanceAPI) List(ctx context.Context) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	if _, err := a.doJSON(ctx, http.MethodGet, "/api/attendance/", true, nil, &records); err != nil {
		return nil, err
	}

	a.Logger.Debug("listed attendance records", "count", len(records))

	return records, nil
}

func (a *AttendanceAPI) Create(ctx context.Context, draft AttendanceDraft) (string, error) {
	return a.doJSON(ctx, http.MethodPost, "/api/attendance/", true, draft, nil)
}

func (a *AttendanceAPI) Update(ctx context.Context, id model.ID, draft AttendanceDraft) (string, error) {
	return a.doJSON(ctx, http.MethodPut, "/api/attendance/"+id, true, draft, nil)
}

func (a *AttendanceAPI) Delete(ctx context.Context, id model.ID) (string, error) {
	return a.doJSON(ctx, http.MethodDelete, "/api/attendance/"+id, true, nil, nil)
}
