package main

import (
	"github.com/protomem/hr-console/internal/api"
	"github.com/protomem/hr-console/internal/validator"
)

// Validation rules
//
// Every form is checked as a whole before a request leaves the process; a
// failed rule blocks the submission with a local notice.

func validateLogin(v *validator.Validator, req api.LoginRequest) {
	v.CheckField(validator.NotBlank(req.Email), "email", "cannot be blank")
	v.CheckField(validator.NotBlank(req.Password), "password", "cannot be blank")
}

func validateRegister(v *validator.Validator, req api.RegisterRequest) {
	v.CheckField(validator.NotBlank(req.Name), "name", "cannot be blank")
	v.CheckField(validator.NotBlank(req.Email), "email", "cannot be blank")
	v.CheckField(validator.NotBlank(req.Password), "password", "cannot be blank")
	v.CheckField(validator.In(req.Role, "employee", "admin"), "role", "must be employee or admin")
}

func validateEmployeeDraft(v *validator.Validator, draft api.EmployeeDraft) {
	v.CheckField(validator.NotBlank(draft.Name), "name", "cannot be blank")
	v.CheckField(validator.NotBlank(draft.Email), "email", "cannot be blank")
	v.CheckField(validator.NotBlank(draft.Phone), "phone", "cannot be blank")
	v.CheckField(validator.NotBlank(draft.Department), "department", "cannot be blank")
	v.CheckField(validator.NotBlank(draft.Role), "role", "cannot be blank")
}

func validateCandidateDraft(v *validator.Validator, draft api.CandidateDraft) {
	v.CheckField(validator.NotBlank(draft.Name), "name", "cannot be blank")
	v.CheckField(validator.NotBlank(draft.Email), "email", "cannot be blank")
	v.CheckField(validator.NotBlank(draft.Phone), "phone", "cannot be blank")
}

func validateAttendanceDraft(v *validator.Validator, draft api.AttendanceDraft) {
	v.CheckField(validator.NotBlank(draft.EmployeeID), "employee", "must be chosen")
	v.CheckField(validator.NotBlank(draft.Date), "date", "cannot be blank")
	v.CheckField(validator.NotBlank(draft.Status), "status", "cannot be blank")
}

func validateLeaveDraft(v *validator.Validator, draft api.LeaveDraft) {
	v.CheckField(validator.NotBlank(draft.EmployeeID), "employee", "must be chosen")
	v.CheckField(validator.NotBlank(draft.StartDate), "startDate", "cannot be blank")
	v.CheckField(validator.NotBlank(draft.EndDate), "endDate", "cannot be blank")
	v.CheckField(validator.NotBlank(draft.Reason), "reason", "cannot be blank")

	// The start<=end relation is deliberately left to the service.
}
