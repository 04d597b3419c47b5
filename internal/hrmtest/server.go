// Package hrmtest provides an in-memory stand-in for the HRM service so the
// client packages can be tested against real HTTP round trips.
package hrmtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/protomem/hr-console/internal/model"
)

const (
	// DefaultToken is the bearer token the fake service accepts.
	DefaultToken = "test-token"

	// Default login credentials.
	DefaultEmail    = "admin@example.com"
	DefaultPassword = "secret"
)

// RequestLog captures one observed request for assertions.
type RequestLog struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

// Server fakes the HRM REST service. The zero values of its collections are
// usable; tests seed them directly before issuing calls.
type Server struct {
	*httptest.Server

	mux sync.Mutex

	Employees  []model.Employee
	Candidates []model.Candidate
	Attendance []model.AttendanceRecord
	Leaves     []model.LeaveRequest

	// Uploads maps stored resume filenames to their content.
	Uploads map[string][]byte

	// FailStatus, when non-zero, makes every protected endpoint answer
	// with this status and FailMessage.
	FailStatus  int
	FailMessage string

	requests []RequestLog
	seq      int
}

func NewServer() *Server {
	s := &Server{Uploads: map[string][]byte{}}

	mux := chi.NewRouter()
	mux.Use(s.logRequest)

	mux.Post("/api/auth/login", s.handleLogin)
	mux.Post("/api/auth/register", s.handleRegister)

	mux.Group(func(mux chi.Router) {
		mux.Use(s.requireToken)

		mux.Get("/api/employees/", s.handleListEmployees)
		mux.Post("/api/employees/register", s.handleCreateEmployee)
		mux.Put("/api/employees/{id}", s.handleUpdateEmployee)
		mux.Delete("/api/employees/{id}", s.handleDeleteEmployee)

		mux.Get("/api/candidates/", s.handleListCandidates)
		mux.Post("/api/candidates/", s.handleCreateCandidate)
		mux.Put("/api/candidates/{id}", s.handleUpdateCandidate)
		mux.Delete("/api/candidates/{id}", s.handleDeleteCandidate)
		mux.Post("/api/candidates/move/{id}", s.handleHireCandidate)
		mux.Get("/uploads/{filename}", s.handleDownload)

		mux.Get("/api/attendance/", s.handleListAttendance)
		mux.Post("/api/attendance/", s.handleCreateAttendance)
		mux.Put("/api/attendance/{id}", s.handleUpdateAttendance)
		mux.Delete("/api/attendance/{id}", s.handleDeleteAttendance)

		mux.Get("/api/leaves/", s.handleListLeaves)
		mux.Post("/api/leaves/", s.handleCreateLeave)
		mux.Put("/api/leaves/{id}", s.handleUpdateLeave)
		mux.Delete("/api/leaves/{id}", s.handleDeleteLeave)
	})

	s.Server = httptest.NewServer(mux)

	return s
}

// Requests returns every request observed so far.
func (s *Server) Requests() []RequestLog {
	s.mux.Lock()
	defer s.mux.Unlock()

	out := make([]RequestLog, len(s.requests))
	copy(out, s.requests)
	return out
}

// ResetRequests clears the request log between test phases.
func (s *Server) ResetRequests() {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.requests = nil
}

// CountRequests counts observed requests matching method and path.
func (s *Server) CountRequests(method, path string) int {
	count := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			count++
		}
	}
	return count
}

func (s *Server) nextID(prefix string) model.ID {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mux.Lock()
		s.requests = append(s.requests, RequestLog{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-Id"),
		})
		s.mux.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.FailStatus != 0 {
			message := s.FailMessage
			if message == "" {
				message = "forced failure"
			}
			writeJSON(w, s.FailStatus, map[string]string{"message": message})
			return
		}

		if r.Header.Get("Authorization") != "Bearer "+DefaultToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Session expired. Please login again."})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	if creds.Email != DefaultEmail || creds.Password != DefaultPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":    model.User{ID: "u-1", Name: "Admin", Email: DefaultEmail, Role: "admin"},
		"token":   DefaultToken,
		"message": "Login successful",
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Registration successful"})
}

func (s *Server) handleListEmployees(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Employees)
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var emp model.Employee
	if err := json.NewDecoder(r.Body).Decode(&emp); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	emp.ID = s.nextID("emp")
	s.Employees = append(s.Employees, emp)

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Employee added successfully"})
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for i := range s.Employees {
		if s.Employees[i].ID == id {
			var emp model.Employee
			if err := json.NewDecoder(r.Body).Decode(&emp); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
				return
			}
			emp.ID = id
			s.Employees[i] = emp
			writeJSON(w, http.StatusOK, map[string]string{"message": "Employee updated successfully"})
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Employee not found"})
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for i := range s.Employees {
		if s.Employees[i].ID == id {
			s.Employees = append(s.Employees[:i], s.Employees[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Employee deleted successfully"})
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Employee not found"})
}

func (s *Server) handleListCandidates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Candidates)
}

func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	cand, status, err := s.candidateFromForm(r)
	if err != nil {
		writeJSON(w, status, map[string]string{"message": err.Error()})
		return
	}

	cand.ID = s.nextID("cand")
	s.Candidates = append(s.Candidates, cand)

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Candidate added successfully"})
}

func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for i := range s.Candidates {
		if s.Candidates[i].ID == id {
			cand, status, err := s.candidateFromForm(r)
			if err != nil {
				writeJSON(w, status, map[string]string{"message": err.Error()})
				return
			}
			cand.ID = id
			if cand.Resume == "" {
				cand.Resume = s.Candidates[i].Resume
			}
			s.Candidates[i] = cand
			writeJSON(w, http.StatusOK, map[string]string{"message": "Candidate updated successfully"})
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Candidate not found"})
}

func (s *Server) candidateFromForm(r *http.Request) (model.Candidate, int, error) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		return model.Candidate{}, http.StatusBadRequest, fmt.Errorf("invalid multipart form")
	}

	cand := model.Candidate{
		Name:  r.FormValue("name"),
		Email: r.FormValue("email"),
		Phone: r.FormValue("phone"),
	}

	file, header, err := r.FormFile("resume")
	if err == nil {
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return model.Candidate{}, http.StatusInternalServerError, fmt.Errorf("failed to store resume")
		}

		cand.Resume = header.Filename
		s.Uploads[header.Filename] = data
	}

	return cand, 0, nil
}

func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for i := range s.Candidates {
		if s.Candidates[i].ID == id {
			s.Candidates = append(s.Candidates[:i], s.Candidates[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Candidate deleted successfully"})
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Candidate not found"})
}

func (s *Server) handleHireCandidate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role       string `json:"role"`
		Department string `json:"department"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}
	if req.Role == "" || req.Department == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Role and department are required"})
		return
	}

	id := chi.URLParam(r, "id")
	for i := range s.Candidates {
		if s.Candidates[i].ID == id {
			cand := s.Candidates[i]
			s.Candidates = append(s.Candidates[:i], s.Candidates[i+1:]...)
			s.Employees = append(s.Employees, model.Employee{
				ID:         s.nextID("emp"),
				Name:       cand.Name,
				Email:      cand.Email,
				Phone:      cand.Phone,
				Department: req.Department,
				Role:       req.Role,
			})
			writeJSON(w, http.StatusOK, map[string]string{"message": "Candidate hired successfully"})
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Candidate not found"})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	data, ok := s.Uploads[filename]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "File not found"})
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleListAttendance(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Attendance)
}

func (s *Server) handleCreateAttendance(w http.ResponseWriter, r *http.Request) {
	var draft struct {
		EmployeeID string `json:"employeeId"`
		Date       string `json:"date"`
		Status     string `json:"status"`
		CheckIn    string `json:"checkIn"`
		CheckOut   string `json:"checkOut"`
	}
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	s.Attendance = append(s.Attendance, model.AttendanceRecord{
		ID:       s.nextID("att"),
		Employee: s.employeeRef(draft.EmployeeID),
		Date:     draft.Date,
		Status:   draft.Status,
		CheckIn:  draft.CheckIn,
		CheckOut: draft.CheckOut,
	})

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Attendance recorded successfully"})
}

func (s *Server) handleUpdateAttendance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for i := range s.Attendance {
		if s.Attendance[i].ID == id {
			var draft struct {
				EmployeeID string `json:"employeeId"`
				Date       string `json:"date"`
				Status     string `json:"status"`
				CheckIn    string `json:"checkIn"`
				CheckOut   string `json:"checkOut"`
			}
			if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
				return
			}
			s.Attendance[i] = model.AttendanceRecord{
				ID:       id,
				Employee: s.employeeRef(draft.EmployeeID),
				Date:     draft.Date,
				Status:   draft.Status,
				CheckIn:  draft.CheckIn,
				CheckOut: draft.CheckOut,
			}
			writeJSON(w, http.StatusOK, map[string]string{"message": "Attendance updated successfully"})
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Attendance record not found"})
}

func (s *Server) handleDeleteAttendance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for i := range s.Attendance {
		if s.Attendance[i].ID == id {
			s.Attendance = append(s.Attendance[:i], s.Attendance[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Attendance deleted successfully"})
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Attendance record not found"})
}

func (s *Server) handleListLeaves(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Leaves)
}

func (s *Server) handleCreateLeave(w http.ResponseWriter, r *http.Request) {
	var draft struct {
		EmployeeID string `json:"employeeId"`
		StartDate  string `json:"startDate"`
		EndDate    string `json:"endDate"`
		Reason     string `json:"reason"`
		Status     string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	status := draft.Status
	if status == "" {
		status = model.LeavePending
	}

	s.Leaves = append(s.Leaves, model.LeaveRequest{
		ID:        s.nextID("leave"),
		Employee:  s.employeeRef(draft.EmployeeID),
		StartDate: draft.StartDate,
		EndDate:   draft.EndDate,
		Reason:    draft.Reason,
		Status:    status,
	})

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Leave request submitted successfully"})
}

func (s *Server) handleUpdateLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for i := range s.Leaves {
		if s.Leaves[i].ID == id {
			var draft struct {
				EmployeeID string `json:"employeeId"`
				StartDate  string `json:"startDate"`
				EndDate    string `json:"endDate"`
				Reason     string `json:"reason"`
				Status     string `json:"status"`
			}
			if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
				return
			}
			s.Leaves[i] = model.LeaveRequest{
				ID:        id,
				Employee:  s.employeeRef(draft.EmployeeID),
				StartDate: draft.StartDate,
				EndDate:   draft.EndDate,
				Reason:    draft.Reason,
				Status:    draft.Status,
			}
			writeJSON(w, http.StatusOK, map[string]string{"message": "Leave request updated successfully"})
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Leave request not found"})
}

func (s *Server) handleDeleteLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for i := range s.Leaves {
		if s.Leaves[i].ID == id {
			s.Leaves = append(s.Leaves[:i], s.Leaves[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Leave request deleted successfully"})
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Leave request not found"})
}

func (s *Server) employeeRef(id model.ID) model.EmployeeRef {
	for _, emp := range s.Employees {
		if emp.ID == id {
			return model.EmployeeRef{ID: emp.ID, Name: emp.Name}
		}
	}
	return model.EmployeeRef{ID: id}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
