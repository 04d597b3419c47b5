package main

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/protomem/hr-console/internal/api"
	"github.com/protomem/hr-console/internal/manager"
	"github.com/protomem/hr-console/internal/model"
)

type column[R any] struct {
	header string
	cell   func(R) string
}

// extraAction is a screen-specific operation on a picked record, beyond the
// shared add/edit/delete set. Candidates use it for hire and resume
// download.
type extraAction[R any] struct {
	key   string
	label string
	run   func(ctx context.Context, rec R)
}

// resourceScreen wires one Resource Manager instance to the terminal:
// a table of the (filtered) collection, a search box and the mutation menu.
type resourceScreen[R, D any] struct {
	app     *application
	m       *manager.Manager[R, D]
	title   string
	columns []column[R]
	id      func(R) model.ID

	// form collects a draft, pre-filled from existing when editing.
	// ok=false means the user cancelled.
	form func(ctx context.Context, existing *R) (draft D, ok bool)

	extra []extraAction[R]
}

func (s *resourceScreen[R, D]) show(ctx context.Context) string {
	s.m.Refresh(ctx)

	search := ""
	for {
		if !s.app.session.Authenticated() {
			return screenLogin
		}

		visible := s.m.Search(search)
		s.render(search, visible)

		choice := s.app.term.Prompt("option", "")
		switch choice {
		case "a":
			if draft, ok := s.form(ctx, nil); ok {
				s.m.Create(ctx, draft)
			}
		case "e":
			if rec, ok := s.pick(visible); ok {
				if draft, ok := s.form(ctx, &rec); ok {
					s.m.Update(ctx, s.id(rec), draft)
				}
			}
		case "d":
			if rec, ok := s.pick(visible); ok {
				s.m.Delete(ctx, s.id(rec))
			}
		case "s":
			search = s.app.term.Prompt("Search by name", search)
		case "c":
			search = ""
		case "r":
			s.m.Refresh(ctx)
		case "b":
			return screenDashboard
		case "q":
			return screenQuit
		default:
			if s.app.term.EOF() {
				return screenQuit
			}
			if action, ok := s.extraFor(choice); ok {
				if rec, picked := s.pick(visible); picked {
					action.run(ctx, rec)
				}
			}
		}
	}
}

func (s *resourceScreen[R, D]) render(search string, visible []R) {
	s.app.term.printf("\n==== %s ====\n", s.title)
	if search != "" {
		s.app.term.printf("filter: %q\n", search)
	}

	headers := make([]string, 0, len(s.columns)+1)
	headers = append(headers, "#")
	for _, col := range s.columns {
		headers = append(headers, col.header)
	}

	rows := make([][]string, 0, len(visible))
	for i, rec := range visible {
		row := make([]string, 0, len(s.columns)+1)
		row = append(row, strconv.Itoa(i+1))
		for _, col := range s.columns {
			row = append(row, col.cell(rec))
		}
		rows = append(rows, row)
	}

	s.app.term.Table(headers, rows)

	s.app.term.printf(" a) Add  e) Edit  d) Delete  s) Search  c) Clear filter  r) Refresh\n")
	for _, action := range s.extra {
		s.app.term.printf(" %s) %s\n", action.key, action.label)
	}
	s.app.term.printf(" b) Back  q) Quit\n")
}

func (s *resourceScreen[R, D]) pick(visible []R) (R, bool) {
	var zero R

	if len(visible) == 0 {
		s.app.term.Error("No records to act on.")
		return zero, false
	}

	value := s.app.term.Prompt("record #", "")
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > len(visible) {
		s.app.term.Error("No such record.")
		return zero, false
	}

	return visible[n-1], true
}

func (s *resourceScreen[R, D]) extraFor(key string) (extraAction[R], bool) {
	for _, action := range s.extra {
		if action.key == key {
			return action, true
		}
	}
	return extraAction[R]{}, false
}

func (app *application) showEmployees(ctx context.Context) string {
	screen := &resourceScreen[model.Employee, api.EmployeeDraft]{
		app:   app,
		title: "Employee Management",
		m: manager.New[model.Employee, api.EmployeeDraft](app.logger, app.employees, app.term, manager.Config[model.Employee, api.EmployeeDraft]{
			Resource:       "employee",
			Name:           func(e model.Employee) string { return e.Name },
			Validate:       validateEmployeeDraft,
			OnUnauthorized: app.forceLogout,
		}),
		columns: []column[model.Employee]{
			{"Name", func(e model.Employee) string { return e.Name }},
			{"Email", func(e model.Employee) string { return e.Email }},
			{"Phone", func(e model.Employee) string { return e.Phone }},
			{"Department", func(e model.Employee) string { return e.Department }},
			{"Role", func(e model.Employee) string { return e.Role }},
		},
		id:   func(e model.Employee) model.ID { return e.ID },
		form: app.employeeForm,
	}

	return screen.show(ctx)
}

func (app *application) employeeForm(_ context.Context, existing *model.Employee) (api.EmployeeDraft, bool) {
	var draft api.EmployeeDraft
	if existing != nil {
		draft = api.EmployeeDraft{
			Name:       existing.Name,
			Email:      existing.Email,
			Phone:      existing.Phone,
			Department: existing.Department,
			Role:       existing.Role,
		}
	}

	draft.Name = app.term.Prompt("Name", draft.Name)
	draft.Email = app.term.Prompt("Email", draft.Email)
	draft.Phone = app.term.Prompt("Phone", draft.Phone)
	draft.Department = app.term.Choose("Department", model.Departments(), draft.Department)
	draft.Role = app.term.Choose("Role", model.Roles(), draft.Role)

	return draft, !app.term.EOF()
}

func (app *application) showCandidates(ctx context.Context) string {
	m := manager.New[model.Candidate, api.CandidateDraft](app.logger, app.candidates, app.term, manager.Config[model.Candidate, api.CandidateDraft]{
		Resource:       "candidate",
		Name:           func(c model.Candidate) string { return c.Name },
		Validate:       validateCandidateDraft,
		OnUnauthorized: app.forceLogout,
	})

	screen := &resourceScreen[model.Candidate, api.CandidateDraft]{
		app:   app,
		title: "Candidate Management",
		m:     m,
		columns: []column[model.Candidate]{
			{"Name", func(c model.Candidate) string { return c.Name }},
			{"Email", func(c model.Candidate) string { return c.Email }},
			{"Phone", func(c model.Candidate) string { return c.Phone }},
			{"Resume", func(c model.Candidate) string {
				if c.Resume == "" {
					return "No File"
				}
				return c.Resume
			}},
		},
		id:   func(c model.Candidate) model.ID { return c.ID },
		form: app.candidateForm,
		extra: []extraAction[model.Candidate]{
			{key: "h", label: "Hire", run: func(ctx context.Context, rec model.Candidate) {
				app.hireCandidate(ctx, rec, m)
			}},
			{key: "v", label: "Download resume", run: app.downloadResume},
		},
	}

	return screen.show(ctx)
}

func (app *application) candidateForm(_ context.Context, existing *model.Candidate) (api.CandidateDraft, bool) {
	var draft api.CandidateDraft
	if existing != nil {
		// The resume is re-attached only when a new file is named.
		draft = api.CandidateDraft{
			Name:  existing.Name,
			Email: existing.Email,
			Phone: existing.Phone,
		}
	}

	draft.Name = app.term.Prompt("Name", draft.Name)
	draft.Email = app.term.Prompt("Email", draft.Email)
	draft.Phone = app.term.Prompt("Phone", draft.Phone)
	draft.ResumePath = app.term.Prompt("Resume file path (optional)", "")

	return draft, !app.term.EOF()
}

// hireCandidate runs the candidate-to-employee transition: a small
// role+department form, a confirmation, one move request and a list refresh.
// The refreshed list is the only evidence the hire took effect.
func (app *application) hireCandidate(ctx context.Context, rec model.Candidate, m *manager.Manager[model.Candidate, api.CandidateDraft]) {
	req := api.HireRequest{
		Role:       app.term.Choose("Role", model.Roles(), ""),
		Department: app.term.Choose("Department", model.Departments(), ""),
	}

	if req.Role == "" || req.Department == "" {
		app.term.Error("Role and department are required!")
		return
	}

	if !app.term.Confirm("Hire " + rec.Name + " as " + req.Role + " in " + req.Department + "?") {
		return
	}

	message, err := app.candidates.Hire(ctx, rec.ID, req)
	if err != nil {
		if api.IsUnauthorized(err) {
			app.forceLogout(api.Message(err))
			return
		}
		app.term.Error(api.Message(err))
		return
	}

	if message == "" {
		message = "Candidate hired."
	}
	app.term.Notify(message)

	m.Refresh(ctx)
}

func (app *application) downloadResume(ctx context.Context, rec model.Candidate) {
	if rec.Resume == "" {
		app.term.Error("No resume available for download.")
		return
	}

	data, err := app.candidates.DownloadResume(ctx, rec.Resume)
	if err != nil {
		if api.IsUnauthorized(err) {
			app.forceLogout(api.Message(err))
			return
		}
		app.term.Error("Failed to download resume.")
		return
	}

	path := filepath.Join(app.config.downloadDir, filepath.Base(rec.Resume))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		app.logger.Warn("failed to save resume", "path", path, "error", err)
		app.term.Error("Failed to download resume.")
		return
	}

	app.term.Notify("Saved " + path)
}

func (app *application) showAttendance(ctx context.Context) string {
	screen := &resourceScreen[model.AttendanceRecord, api.AttendanceDraft]{
		app:   app,
		title: "Attendance Management",
		m: manager.New[model.AttendanceRecord, api.AttendanceDraft](app.logger, app.attendance, app.term, manager.Config[model.AttendanceRecord, api.AttendanceDraft]{
			Resource:       "attendance record",
			Name:           func(a model.AttendanceRecord) string { return a.Employee.Name },
			Validate:       validateAttendanceDraft,
			OnUnauthorized: app.forceLogout,
		}),
		columns: []column[model.AttendanceRecord]{
			{"Employee", func(a model.AttendanceRecord) string { return orNA(a.Employee.Name) }},
			{"Date", func(a model.AttendanceRecord) string { return a.Date }},
			{"Status", func(a model.AttendanceRecord) string { return a.Status }},
			{"Check In", func(a model.AttendanceRecord) string { return a.CheckIn }},
			{"Check Out", func(a model.AttendanceRecord) string { return a.CheckOut }},
		},
		id:   func(a model.AttendanceRecord) model.ID { return a.ID },
		form: app.attendanceForm,
	}

	return screen.show(ctx)
}

func (app *application) attendanceForm(ctx context.Context, existing *model.AttendanceRecord) (api.AttendanceDraft, bool) {
	var draft api.AttendanceDraft
	if existing != nil {
		draft = api.AttendanceDraft{
			EmployeeID: existing.Employee.ID,
			Date:       existing.Date,
			Status:     existing.Status,
			CheckIn:    existing.CheckIn,
			CheckOut:   existing.CheckOut,
		}
	}

	var current model.EmployeeRef
	if existing != nil {
		current = existing.Employee
	}

	employeeID, ok := app.pickEmployee(ctx, current)
	if !ok {
		return draft, false
	}
	draft.EmployeeID = employeeID

	draft.Date = app.term.Prompt("Date (YYYY-MM-DD)", draft.Date)
	draft.Status = app.term.Choose("Status", model.AttendanceStatuses(), draft.Status)
	draft.CheckIn = app.term.Prompt("Check-in time (optional)", draft.CheckIn)
	draft.CheckOut = app.term.Prompt("Check-out time (optional)", draft.CheckOut)

	return draft, !app.term.EOF()
}

func (app *application) showLeaves(ctx context.Context) string {
	screen := &resourceScreen[model.LeaveRequest, api.LeaveDraft]{
		app:   app,
		title: "Leave Management",
		m: manager.New[model.LeaveRequest, api.LeaveDraft](app.logger, app.leaves, app.term, manager.Config[model.LeaveRequest, api.LeaveDraft]{
			Resource:       "leave request",
			Name:           func(l model.LeaveRequest) string { return l.Employee.Name },
			Validate:       validateLeaveDraft,
			OnUnauthorized: app.forceLogout,
		}),
		columns: []column[model.LeaveRequest]{
			{"Employee", func(l model.LeaveRequest) string { return orNA(l.Employee.Name) }},
			{"Start Date", func(l model.LeaveRequest) string { return l.StartDate }},
			{"End Date", func(l model.LeaveRequest) string { return l.EndDate }},
			{"Reason", func(l model.LeaveRequest) string { return l.Reason }},
			{"Status", func(l model.LeaveRequest) string { return l.Status }},
		},
		id:   func(l model.LeaveRequest) model.ID { return l.ID },
		form: app.leaveForm,
	}

	return screen.show(ctx)
}

func (app *application) leaveForm(ctx context.Context, existing *model.LeaveRequest) (api.LeaveDraft, bool) {
	draft := api.LeaveDraft{Status: model.LeavePending}
	if existing != nil {
		draft = api.LeaveDraft{
			EmployeeID: existing.Employee.ID,
			StartDate:  existing.StartDate,
			EndDate:    existing.EndDate,
			Reason:     existing.Reason,
			Status:     existing.Status,
		}
	}

	// The employee on a leave request is fixed once filed.
	if existing == nil {
		employeeID, ok := app.pickEmployee(ctx, model.EmployeeRef{})
		if !ok {
			return draft, false
		}
		draft.EmployeeID = employeeID
	}

	draft.StartDate = app.term.Prompt("Start date (YYYY-MM-DD)", draft.StartDate)
	draft.EndDate = app.term.Prompt("End date (YYYY-MM-DD)", draft.EndDate)
	draft.Reason = app.term.Prompt("Reason", draft.Reason)
	draft.Status = app.term.Choose("Status", model.LeaveStatuses(), draft.Status)

	return draft, !app.term.EOF()
}

// pickEmployee fetches the employee list and asks the user to choose one,
// mirroring the employee dropdowns of the attendance and leave forms.
func (app *application) pickEmployee(ctx context.Context, current model.EmployeeRef) (model.ID, bool) {
	employees, err := app.employees.List(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			app.forceLogout(api.Message(err))
			return "", false
		}
		app.term.Error(api.Message(err))
		return "", false
	}

	if len(employees) == 0 {
		app.term.Error("No employees to choose from.")
		return "", false
	}

	names := make([]string, 0, len(employees))
	for _, emp := range employees {
		names = append(names, emp.Name)
	}

	chosen := app.term.Choose("Employee", names, current.Name)
	for _, emp := range employees {
		if emp.Name == chosen {
			return emp.ID, true
		}
	}

	if current.ID != "" && chosen == current.Name {
		return current.ID, true
	}

	app.term.Error("No such employee.")
	return "", false
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
