package model

// ID is an opaque record identifier issued by the HRM service.
type ID = string

type User struct {
	ID    ID     `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Employee struct {
	ID         ID     `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

type Candidate struct {
	ID    ID     `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	// Resume holds the stored filename of the uploaded resume, if any.
	Resume string `json:"resume,omitempty"`
}

// EmployeeRef is the embedded employee summary the service joins into
// attendance and leave records.
type EmployeeRef struct {
	ID   ID     `json:"_id"`
	Name string `json:"name"`
}

type AttendanceRecord struct {
	ID       ID          `json:"_id"`
	Employee EmployeeRef `json:"employee"`
	Date     string      `json:"date"`
	Status   string      `json:"status"`
	CheckIn  string      `json:"checkIn,omitempty"`
	CheckOut string      `json:"checkOut,omitempty"`
}

type LeaveRequest struct {
	ID        ID          `json:"_id"`
	Employee  EmployeeRef `json:"employee"`
	StartDate string      `json:"startDate"`
	EndDate   string      `json:"endDate"`
	Reason    string      `json:"reason"`
	Status    string      `json:"status"`
}

// Attendance statuses.
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceLeave   = "Leave"
)

// Leave request statuses.
const (
	LeavePending  = "Pending"
	LeaveApproved = "Approved"
	LeaveRejected = "Rejected"
)

// Departments lists the departments offered when filling in an employee or
// hire form. The service accepts any non-empty value.
func Departments() []string {
	return []string{"HR", "Finance", "IT", "Marketing", "Operations", "Sales", "Customer Support"}
}

// Roles lists the employee roles offered by the forms.
func Roles() []string {
	return []string{
		"Manager", "Developer", "Designer", "Accountant",
		"HR Specialist", "Sales Representative", "Marketing Specialist",
	}
}

// AttendanceStatuses lists the valid attendance states.
func AttendanceStatuses() []string {
	return []string{AttendancePresent, AttendanceAbsent, AttendanceLeave}
}

// LeaveStatuses lists the valid leave request states.
func LeaveStatuses() []string {
	return []string{LeavePending, LeaveApproved, LeaveRejected}
}
