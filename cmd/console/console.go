package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/protomem/hr-console/internal/api"
	"github.com/protomem/hr-console/internal/ctxstore"
	"github.com/protomem/hr-console/internal/session"
)

// Screen names double as navigation targets.
const (
	screenLogin      = "login"
	screenRegister   = "register"
	screenDashboard  = "dashboard"
	screenEmployees  = "employees"
	screenCandidates = "candidates"
	screenAttendance = "attendance"
	screenLeaves     = "leaves"
	screenQuit       = "quit"
)

type route struct {
	guarded bool
	show    func(ctx context.Context) string
}

type application struct {
	config  config
	logger  *slog.Logger
	session *session.Store
	term    *terminal

	auth       *api.AuthAPI
	employees  *api.EmployeesAPI
	candidates *api.CandidatesAPI
	attendance *api.AttendanceAPI
	leaves     *api.LeavesAPI

	routes map[string]route
}

func newApplication(cfg config, logger *slog.Logger, in io.Reader, out io.Writer) *application {
	app := &application{
		config:  cfg,
		logger:  logger,
		session: session.New(logger, cfg.tokenFile),
		term:    newTerminal(in, out),
	}

	client := api.New(logger, cfg.apiURL, cfg.httpTimeout, app.session.Token)

	app.auth = api.NewAuthAPI(logger, client)
	app.employees = api.NewEmployeesAPI(logger, client)
	app.candidates = api.NewCandidatesAPI(logger, client)
	app.attendance = api.NewAttendanceAPI(logger, client)
	app.leaves = api.NewLeavesAPI(logger, client)

	app.routes = map[string]route{
		screenLogin:      {guarded: false, show: app.showLogin},
		screenRegister:   {guarded: false, show: app.showRegister},
		screenDashboard:  {guarded: true, show: app.showDashboard},
		screenEmployees:  {guarded: true, show: app.showEmployees},
		screenCandidates: {guarded: true, show: app.showCandidates},
		screenAttendance: {guarded: true, show: app.showAttendance},
		screenLeaves:     {guarded: true, show: app.showLeaves},
	}

	return app
}

// run drives the navigation loop. Guarded screens are only entered with a
// token present; otherwise the user lands on the login screen and the
// originally requested screen is forgotten.
func (app *application) run(ctx context.Context) error {
	current := screenDashboard

	for current != screenQuit {
		if app.term.EOF() {
			break
		}

		r, ok := app.routes[current]
		if !ok {
			return fmt.Errorf("unknown screen %q", current)
		}

		if r.guarded && !app.session.Authenticated() {
			app.logger.Debug("guarded screen requested without a session", "screen", current)
			current = screenLogin
			continue
		}

		screenCtx := ctxstore.With(ctx, api.TraceIDKey, genTraceID())

		app.logger.Debug("showing screen", "screen", current)
		current = r.show(screenCtx)
	}

	app.logger.Info("console exiting")

	return nil
}

// forceLogout tears the session down after a 401 and reports why. The
// screen loops notice the missing token and fall back to the login screen.
func (app *application) forceLogout(message string) {
	app.term.Error(message)
	app.session.Logout()
	app.logger.Info("session terminated by unauthorized response")
}

func genTraceID() string {
	id, _ := uuid.NewRandom()
	return id.String()
}
