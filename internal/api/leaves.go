package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/protomem/hr-console/internal/model"
)

type LeavesAPI struct {
	Logger *slog.Logger
	*Client
}

func NewLeavesAPI(logger *slog.Logger, client *Client) *LeavesAPI {
	return &LeavesAPI{
		Logger: logger.With("api", "leaves"),
		Client: client,
	}
}

// LeaveDraft is the request body for applying for or editing a leave
// request. The date range is passed through as entered; the service owns
// any range validation.
type LeaveDraft struct {
	EmployeeID string `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
}

func (a *LeavesAPI) List(ctx context.Context) ([]model.LeaveRequest, error) {
	var leaves []model.LeaveRequest
	if _, err := a.doJSON(ctx, http.MethodGet, "/api/leaves/", true, nil, &leaves); err != nil {
		return nil, err
	}

	a.Logger.Debug("listed leave requests", "count", len(leaves))

	return leaves, nil
}

func (a *LeavesAPI) Create(ctx context.Context, draft LeaveDraft) (string, error) {
	return a.doJSON(ctx, http.MethodPost, "/api/leaves/", true, draft, nil)
}

func (a *LeavesAPI) Update(ctx context.Context, id model.ID, draft LeaveDraft) (string, error) {
	return a.doJSON(ctx, http.MethodPut, "/api/leaves/"+id, true, draft, nil)
}

func (a *LeavesAPI) Delete(ctx context.Context, id model.ID) (string, error) {
	return a.doJSON(ctx, http.MethodDelete, "/api/leaves/"+id, true, nil, nil)
}
