package command

import (
	"context"
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/TrailGuard-io/mobile-app/internal/api"
	"github.com/TrailGuard-io/mobile-app/internal/cli/connection"
	"github.com/TrailGuard-io/mobile-app/internal/cli/output"
	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
	"github.com/TrailGuard-io/mobile-app/internal/session"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitAuth     = 3
	ExitNetwork  = 4
	ExitServer   = 5
	ExitCanceled = 130
)

// networkMessage is shown for transport failures. The underlying error is
// logged at debug.
const networkMessage = "could not reach the TrailGuard server, check your connection and try again"

// Describe turns err into the one-line message shown to the user and the
// process exit code.
func Describe(err error) (string, int) {
	var (
		authErr    *api.AuthExpiredError
		netErr     *api.NetworkError
		timeoutErr *api.TimeoutError
		serverErr  *api.ServerError
		decodeErr  *api.DecodeError
		persistErr *session.PersistenceError
		exitErr    cli.ExitCoder
	)

	switch {
	case err == nil:
		return "", ExitOK
	case errors.As(err, &authErr):
		return "session expired, run `" + AppName + " login` to sign in again", ExitAuth
	case errors.Is(err, domain.ErrNotLoggedIn):
		return "not logged in, run `" + AppName + " login` first", ExitAuth
	case errors.Is(err, context.Canceled):
		return "interrupted", ExitCanceled
	case errors.As(err, &timeoutErr):
		return "request timed out, the server did not answer in time", ExitNetwork
	case errors.As(err, &netErr):
		return networkMessage, ExitNetwork
	case errors.As(err, &serverErr):
		return serverErr.Message(), ExitServer
	case errors.As(err, &decodeErr):
		return "unexpected response from the server: " + decodeErr.Error(), ExitServer
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrMissingArgument):
		var de *domain.DomainError
		errors.As(err, &de)
		return de.Summary(), ExitUsage
	case errors.As(err, &persistErr):
		return "session storage failed: " + persistErr.Error(), ExitFailure
	case errors.Is(err, connection.ErrNotOpen):
		return err.Error(), ExitFailure
	case errors.As(err, &exitErr):
		return exitErr.Error(), exitErr.ExitCode()
	default:
		return err.Error(), ExitFailure
	}
}

// Report prints err on the app's error writer and returns the exit code.
// It is used by main after App().Run returns.
func Report(app *cli.App, err error) int {
	msg, code := Describe(err)
	if code == ExitOK {
		return code
	}

	var p *output.Printer
	if rt, ok := app.Metadata[metaRuntime].(*Runtime); ok {
		p = rt.Printer
		rt.Logger.Debug("command failed", "error", err, "kind", api.ErrorKind(err), "code", domain.CodeOf(err))
	} else {
		p = output.NewPrinter(app.Writer, app.ErrWriter, output.FormatTable, false, true)
	}
	if msg != "" {
		p.Error("%s", msg)
	}
	return code
}
