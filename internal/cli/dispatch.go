package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/avolkov/authdb/internal/common"
	"github.com/avolkov/authdb/internal/cryptox"
	"github.com/avolkov/authdb/internal/models"
	"github.com/avolkov/authdb/internal/timex"
	"github.com/google/uuid"
)

// ErrUnknownCommand is returned for command words the dispatcher does not
// recognize.
var ErrUnknownCommand = errors.New("command does not exist")

// Dispatch runs a single command. args holds the command word followed by
// its positional arguments, with config flags already stripped.
func (a *App) Dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUnknownCommand
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "migrate":
		return a.manager.RunMigrations(ctx)

	case "tables":
		return a.tables(ctx)

	case "drop":
		if err := needArgs(rest, 1, "drop <table>"); err != nil {
			return err
		}
		return a.manager.Drop(ctx, rest[0])

	case "randomHex":
		if err := needArgs(rest, 1, "randomHex <bytes>"); err != nil {
			return err
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("randomHex: invalid byte count %q", rest[0])
		}
		s, err := cryptox.RandHex(n)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, s)
		return nil

	case "hashedPassword":
		password, err := a.passwordArg(rest, 0)
		if err != nil {
			return err
		}
		s, err := cryptox.HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, s)
		return nil

	case "uuid":
		fmt.Fprintln(a.out, uuid.NewString())
		return nil

	case "now":
		fmt.Fprintln(a.out, timex.Now())
		return nil

	case "createUsersTable":
		return a.users.CreateTable(ctx)

	case "createUser":
		if err := needArgs(rest, 1, "createUser <username> [password]"); err != nil {
			return err
		}
		password, err := a.passwordArg(rest, 1)
		if err != nil {
			return err
		}
		user, err := a.users.Create(ctx, rest[0], password)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, user.ID)
		return nil

	case "users":
		list, err := a.users.All(ctx)
		if err != nil {
			return err
		}
		for _, u := range list {
			a.printUser(&u)
		}
		return nil

	case "usernameExists":
		if err := needArgs(rest, 1, "usernameExists <username>"); err != nil {
			return err
		}
		exists, err := a.users.Exists(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, exists)
		return nil

	case "getUserById":
		if err := needArgs(rest, 1, "getUserById <id>"); err != nil {
			return err
		}
		return a.printUserLookup(a.users.ByID(ctx, rest[0]))

	case "getUserByUsername":
		if err := needArgs(rest, 1, "getUserByUsername <username>"); err != nil {
			return err
		}
		return a.printUserLookup(a.users.ByUsername(ctx, rest[0]))

	case "signIn":
		if err := needArgs(rest, 1, "signIn <username> [password]"); err != nil {
			return err
		}
		password, err := a.passwordArg(rest, 1)
		if err != nil {
			return err
		}
		ok, err := a.auth.SignIn(ctx, rest[0], password)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, ok)
		return nil

	case "createSessionsTable":
		return a.sessions.CreateTable(ctx)

	case "createSession":
		if err := needArgs(rest, 1, "createSession <userId>"); err != nil {
			return err
		}
		session, err := a.sessions.Create(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "id:%s session_key:%s\n", session.ID, session.SessionKey)
		return nil

	case "sessions":
		list, err := a.sessions.All(ctx)
		if err != nil {
			return err
		}
		for _, s := range list {
			a.printSession(&s)
		}
		return nil

	case "authenticateSession":
		if err := needArgs(rest, 1, "authenticateSession <key>"); err != nil {
			return err
		}
		user, err := a.sessions.Authenticate(ctx, rest[0])
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Fprintln(a.out, "not authenticated")
			return nil
		}
		a.printUser(user)
		return nil

	case "refreshSession":
		if err := needArgs(rest, 1, "refreshSession <id>"); err != nil {
			return err
		}
		return a.sessions.Refresh(ctx, rest[0])

	case "deleteSession":
		if err := needArgs(rest, 1, "deleteSession <id>"); err != nil {
			return err
		}
		return a.sessions.Delete(ctx, rest[0])

	case "signOut":
		if err := needArgs(rest, 1, "signOut <id>"); err != nil {
			return err
		}
		return a.auth.SignOut(ctx, rest[0])

	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

func needArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

func (a *App) tables(ctx context.Context) error {
	names, err := a.manager.Tables(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(a.out, name)
	}
	return nil
}

// printUserLookup renders a point lookup where absence is a normal outcome.
func (a *App) printUserLookup(user *models.User, err error) error {
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(a.out, "not found")
			return nil
		}
		return err
	}
	a.printUser(user)
	return nil
}

func (a *App) printUser(u *models.User) {
	fmt.Fprintf(a.out, "id:%s username:%s created_at:%s updated_at:%s\n",
		u.ID, u.Username, u.CreatedAt, u.UpdatedAt)
}

func (a *App) printSession(s *models.Session) {
	userID := ""
	if s.UserID.Valid {
		userID = s.UserID.String
	}
	fmt.Fprintf(a.out, "id:%s session_key:%s user_id:%s created_at:%s updated_at:%s\n",
		s.ID, s.SessionKey, userID, s.CreatedAt, s.UpdatedAt)
}
