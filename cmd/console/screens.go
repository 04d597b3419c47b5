package main

import (
	"context"
	"strconv"

	"github.com/protomem/hr-console/internal/api"
	"github.com/protomem/hr-console/internal/validator"
)

func (app *application) showLogin(ctx context.Context) string {
	app.term.printf("\n==== HR Console ====\n")
	app.term.printf(" 1) Sign in\n")
	app.term.printf(" 2) Register\n")
	app.term.printf(" q) Quit\n")

	switch app.term.Prompt("option", "") {
	case "1":
		if app.signIn(ctx) {
			return screenDashboard
		}
		return screenLogin
	case "2":
		return screenRegister
	case "q":
		return screenQuit
	default:
		if app.term.EOF() {
			return screenQuit
		}
		return screenLogin
	}
}

// signIn reports whether a session was established.
func (app *application) signIn(ctx context.Context) bool {
	req := api.LoginRequest{
		Email:    app.term.Prompt("Email", ""),
		Password: app.term.Prompt("Password", ""),
	}

	var v validator.Validator
	validateLogin(&v, req)
	if v.HasErrors() {
		app.term.Error(v.Summary())
		return false
	}

	resp, err := app.auth.Login(ctx, req)
	if err != nil {
		// A 401 here is just bad credentials; there is no session to
		// tear down.
		app.term.Error(api.Message(err))
		return false
	}

	app.session.Login(resp.User, resp.Token)
	app.term.Notify("Signed in as " + resp.User.Name)

	return true
}

func (app *application) showRegister(ctx context.Context) string {
	app.term.printf("\n==== Register ====\n")

	req := api.RegisterRequest{
		Name:     app.term.Prompt("Name", ""),
		Email:    app.term.Prompt("Email", ""),
		Password: app.term.Prompt("Password", ""),
	}
	confirm := app.term.Prompt("Confirm password", "")
	req.Role = app.term.Choose("Role", []string{"employee", "admin"}, "employee")

	if req.Password != confirm {
		app.term.Error("Passwords do not match!")
		return screenRegister
	}

	var v validator.Validator
	validateRegister(&v, req)
	if v.HasErrors() {
		app.term.Error(v.Summary())
		return screenRegister
	}

	message, err := app.auth.Register(ctx, req)
	if err != nil {
		app.term.Error(api.Message(err))
		if app.term.EOF() {
			return screenQuit
		}
		return screenRegister
	}

	if message == "" {
		message = "Registration successful"
	}
	app.term.Notify(message)

	// Registration does not create a session; sign in with the new account.
	return screenLogin
}

func (app *application) showDashboard(ctx context.Context) string {
	counts := app.fetchCounts(ctx)
	if !app.session.Authenticated() {
		return screenLogin
	}

	app.term.printf("\n==== Dashboard ====\n")
	if user, ok := app.session.User(); ok {
		app.term.printf("Signed in as %s\n", user.Name)
	}

	app.term.Table(
		[]string{"Employees", "Candidates", "Attendance", "Leaves"},
		[][]string{{counts[0], counts[1], counts[2], counts[3]}},
	)

	app.term.printf(" 1) Employees\n")
	app.term.printf(" 2) Candidates\n")
	app.term.printf(" 3) Attendance\n")
	app.term.printf(" 4) Leaves\n")
	app.term.printf(" l) Logout\n")
	app.term.printf(" q) Quit\n")

	switch app.term.Prompt("option", "") {
	case "1":
		return screenEmployees
	case "2":
		return screenCandidates
	case "3":
		return screenAttendance
	case "4":
		return screenLeaves
	case "l":
		app.session.Logout()
		app.term.Notify("Signed out.")
		return screenLogin
	case "q":
		return screenQuit
	default:
		if app.term.EOF() {
			return screenQuit
		}
		return screenDashboard
	}
}

// fetchCounts collects the four record totals, falling back to zeros when a
// fetch fails. A 401 tears the session down via forceLogout.
func (app *application) fetchCounts(ctx context.Context) [4]string {
	counts := [4]string{"0", "0", "0", "0"}
	failed := false

	fetch := func(idx int, count func() (int, error)) {
		if !app.session.Authenticated() {
			return
		}

		n, err := count()
		if err != nil {
			if api.IsUnauthorized(err) {
				app.forceLogout(api.Message(err))
				return
			}
			failed = true
			return
		}
		counts[idx] = strconv.Itoa(n)
	}

	fetch(0, func() (int, error) { list, err := app.employees.List(ctx); return len(list), err })
	fetch(1, func() (int, error) { list, err := app.candidates.List(ctx); return len(list), err })
	fetch(2, func() (int, error) { list, err := app.attendance.List(ctx); return len(list), err })
	fetch(3, func() (int, error) { list, err := app.leaves.List(ctx); return len(list), err })

	if failed && app.session.Authenticated() {
		app.term.Error("Some totals could not be fetched.")
	}

	return counts
}
