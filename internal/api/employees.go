package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/protomem/hr-console/internal/model"
)

type EmployeesAPI struct {
	Logger *slog.Logger
	*Client
}

func NewEmployeesAPI(logger *slog.Logger, client *Client) *EmployeesAPI {
	return &EmployeesAPI{
		Logger: logger.With("api", "employees"),
		Client: client,
	}
}

// EmployeeDraft is the request body for creating or updating an employee.
type EmployeeDraft struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

func (a *EmployeesAPI) List(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if _, err := a.doJSON(ctx, http.MethodGet, "/api/employees/", true, nil, &employees); err != nil {
		return nil, err
	}

	a.Logger.Debug("listed employees", "count", len(employees))

	return employees, nil
}

// Create registers a new employee. The service exposes employee creation
// under a /register sub-path.
func (a *EmployeesAPI) Create(ctx context.Context, draft EmployeeDraft) (string, error) {
	return a.doJSON(ctx, http.MethodPost, "/api/employees/register", true, draft, nil)
}

func (a *EmployeesAPI) Update(ctx context.Context, id model.ID, draft EmployeeDraft) (string, error) {
	return a.doJSON(ctx, http.MethodPut, "/api/employees/"+id, true, draft, nil)
}

func (a *EmployeesAPI) Delete(ctx context.Context, id model.ID) (string, error) {
	return a.doJSON(ctx, http.MethodDelete, "/api/employees/"+id, true, nil, nil)
}
