package command

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/TrailGuard-io/mobile-app/internal/api"
	"github.com/TrailGuard-io/mobile-app/internal/cli/output"
	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
	"github.com/TrailGuard-io/mobile-app/internal/session"
	"github.com/TrailGuard-io/mobile-app/pkg/token"
)

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in and store the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Account email",
				EnvVars: []string{"TRAILGUARD_EMAIL"},
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Account password (prompted when omitted)",
				EnvVars: []string{"TRAILGUARD_PASSWORD"},
			},
		},
		Action: login,
	}
}

// RegisterCommand returns the register command.
func RegisterCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an account",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Account email",
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Account password (prompted when omitted)",
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Display name",
			},
		},
		Action: register,
	}
}

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Forget the stored session",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Skip confirmation",
			},
		},
		Action: logout,
	}
}

// WhoamiCommand returns the whoami command.
func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the signed-in user",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "offline",
				Usage: "Report the local session without calling the server",
			},
		},
		Action: whoami,
	}
}

// credentials collects email and password from flags or prompts.
func credentials(c *cli.Context, rt *Runtime) (string, string, error) {
	email := strings.TrimSpace(c.String("email"))
	if email == "" {
		line, err := rt.readLine("Email: ")
		if err != nil {
			return "", "", domain.ErrMissingArgument.WithDetails("email")
		}
		email = strings.TrimSpace(line)
	}

	password := c.String("password")
	if password == "" {
		secret, err := rt.readSecret("Password: ")
		if err != nil {
			return "", "", domain.ErrMissingArgument.WithDetails("password")
		}
		password = secret
	}
	return email, password, nil
}

// rejected turns a 401 on login or register into a credentials error; there
// was no session to expire.
func rejected(err error) error {
	var ae *api.AuthExpiredError
	if errors.As(err, &ae) {
		return cli.Exit(ae.Server.Message(), ExitAuth)
	}
	return err
}

// startSession stores the token and identity after a successful sign-in.
// A token that could not be persisted still works for this process.
func startSession(ctx context.Context, rt *Runtime, store *session.Store, tok, identity string) error {
	if err := store.SetToken(ctx, tok); err != nil {
		var pe *session.PersistenceError
		if !errors.As(err, &pe) {
			return err
		}
		rt.Printer.Warn("signed in, but the session could not be saved and ends with this process")
		rt.Logger.Debug("token not persisted", "error", err)
	}
	if identity != "" {
		return store.SetIdentity(identity)
	}
	return nil
}

func login(c *cli.Context) error {
	rt, client, err := clientFor(c, false)
	if err != nil {
		return err
	}
	store, err := rt.Conn.Store()
	if err != nil {
		return err
	}

	email, password, err := credentials(c, rt)
	if err != nil {
		return err
	}

	resp, err := call(rt, "Signing in", func() (*domain.LoginResponse, error) {
		return client.Login(c.Context, email, password)
	})
	if err != nil {
		return rejected(err)
	}

	if err := startSession(c.Context, rt, store, resp.Token, resp.User.Email); err != nil {
		return err
	}

	if rt.Printer.Machine() {
		return rt.Printer.Print(resp.User)
	}
	rt.Printer.Success("signed in as %s", resp.User.DisplayName())
	return nil
}

func register(c *cli.Context) error {
	rt, client, err := clientFor(c, false)
	if err != nil {
		return err
	}
	store, err := rt.Conn.Store()
	if err != nil {
		return err
	}

	email, password, err := credentials(c, rt)
	if err != nil {
		return err
	}

	resp, err := call(rt, "Creating account", func() (*domain.RegisterResponse, error) {
		return client.Register(c.Context, email, password, domain.String(c.String("name")))
	})
	if err != nil {
		return rejected(err)
	}

	if resp.Token != "" {
		identity := email
		if resp.User != nil {
			identity = resp.User.Email
		}
		if err := startSession(c.Context, rt, store, resp.Token, identity); err != nil {
			return err
		}
	}

	if rt.Printer.Machine() {
		return rt.Printer.Print(resp)
	}
	switch {
	case resp.Token != "":
		rt.Printer.Success("account created, signed in as %s", email)
	default:
		rt.Printer.Success("account created for %s", email)
		rt.Printer.Hint("run `%s login` to sign in", AppName)
	}
	return nil
}

func logout(c *cli.Context) error {
	rt, _, err := clientFor(c, false)
	if err != nil {
		return err
	}
	store, err := rt.Conn.Store()
	if err != nil {
		return err
	}

	if !store.Snapshot().HasToken() {
		rt.Printer.Info("not signed in")
		return nil
	}
	if !c.Bool("force") && !rt.confirm("Sign out and delete the stored session?") {
		rt.Printer.Info("cancelled")
		return nil
	}

	if err := store.Clear(c.Context); err != nil {
		return err
	}
	rt.Printer.Success("signed out")
	return nil
}

// sessionView is the local session as reported by whoami --offline.
type sessionView struct {
	State    string     `json:"state"`
	SignedIn bool       `json:"signedIn"`
	Identity string     `json:"identity,omitempty"`
	Token    string     `json:"token,omitempty"`
	Expires  *time.Time `json:"expiresAt,omitempty"`
	Storage  string     `json:"storage"`
}

func newSessionView(snap session.Snapshot, engine string) sessionView {
	v := sessionView{
		State:    snap.State.String(),
		SignedIn: snap.HasToken(),
		Identity: snap.Identity,
		Token:    token.Mask(snap.Token),
		Storage:  engine,
	}
	// The expiry is read from the token without verifying it; the server
	// stays the authority.
	if exp, ok := token.Expiry(snap.Token); ok {
		v.Expires = &exp
	}
	return v
}

func (v sessionView) Table(bool) *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("state", v.State)
	t.AddRow("signed in", output.Cell(v.SignedIn))
	t.AddRow("identity", output.Cell(v.Identity))
	t.AddRow("token", output.Cell(v.Token))
	t.AddRow("expires", output.Cell(v.Expires))
	t.AddRow("storage", v.Storage)
	return t
}

func whoami(c *cli.Context) error {
	rt, client, err := clientFor(c, false)
	if err != nil {
		return err
	}
	store, err := rt.Conn.Store()
	if err != nil {
		return err
	}

	if c.Bool("offline") {
		return rt.Printer.Print(newSessionView(store.Snapshot(), rt.Config.Storage.Engine))
	}

	if _, err := store.RequireToken(); err != nil {
		return err
	}
	user, err := call(rt, "Loading profile", func() (*domain.User, error) {
		return client.Me(c.Context)
	})
	if err != nil {
		return err
	}
	_ = store.SetIdentity(user.Email)
	return rt.Printer.Print(user)
}
