package admintools

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/corkboard/corkboard/src/auth"
	"github.com/corkboard/corkboard/src/data"
	"github.com/corkboard/corkboard/src/db"
	"github.com/corkboard/corkboard/src/website"
	"github.com/spf13/cobra"
)

func init() {
	adminCommand := &cobra.Command{
		Use:   "admin",
		Short: "Miscellaneous admin commands",
	}
	website.WebsiteCommand.AddCommand(adminCommand)

	setPasswordCommand := &cobra.Command{
		Use:   "setpassword [username] [new password]",
		Short: "Replace a user's password",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 2 {
				fmt.Printf("You must provide a username and a password.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			username := args[0]
			password := args[1]

			ctx := context.Background()
			conn := db.NewConn()
			defer conn.Close(ctx)

			users := data.NewUserStore(conn)
			user, err := users.FindByUsername(ctx, username)
			if err != nil {
				if errors.Is(err, db.NotFound) {
					fmt.Printf("User '%s' not found\n", username)
					os.Exit(1)
				}
				panic(err)
			}

			hashed := auth.HashPassword(password)
			_, err = conn.Exec(ctx,
				`UPDATE users SET password = $1 WHERE id = $2`,
				hashed.String(), user.ID,
			)
			if err != nil {
				panic(err)
			}

			fmt.Printf("Successfully updated password for '%s'\n", user.Username)
		},
	}
	adminCommand.AddCommand(setPasswordCommand)

	createUserCommand := &cobra.Command{
		Use:   "createuser [username] [password]",
		Short: "Creates a new user",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 {
				fmt.Printf("You must provide a username.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			username := args[0]
			password := "password"
			if len(args) > 1 {
				password = args[1]
			}

			ctx := context.Background()
			conn := db.NewConn()
			defer conn.Close(ctx)

			users := data.NewUserStore(conn)
			user, err := users.Create(ctx, username, auth.HashPassword(password).String())
			if err != nil {
				if errors.Is(err, auth.ErrUsernameTaken) {
					fmt.Printf("Username '%s' is already taken\n", username)
					os.Exit(1)
				}
				panic(err)
			}

			fmt.Printf("Created user '%s' (id %d)\n", user.Username, user.ID)
		},
	}
	adminCommand.AddCommand(createUserCommand)

	deleteSessionsCommand := &cobra.Command{
		Use:   "deletesessions [username]",
		Short: "Log out a user everywhere by deleting their sessions",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 {
				fmt.Printf("You must provide a username.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			username := args[0]

			ctx := context.Background()
			conn := db.NewConn()
			defer conn.Close(ctx)

			res, err := conn.Exec(ctx,
				`
				DELETE FROM sessions
				WHERE user_id = (SELECT id FROM users WHERE LOWER(username) = LOWER($1))
				`,
				username,
			)
			if err != nil {
				panic(err)
			}

			fmt.Printf("Deleted %d session(s) for '%s'\n", res.RowsAffected(), username)
		},
	}
	adminCommand.AddCommand(deleteSessionsCommand)

	purgeSessionsCommand := &cobra.Command{
		Use:   "purgesessions",
		Short: "Delete all expired sessions",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			conn := db.NewConn()
			defer conn.Close(ctx)

			n, err := data.DeleteExpiredSessions(ctx, conn)
			if err != nil {
				panic(err)
			}

			fmt.Printf("Deleted %d expired session(s)\n", n)
		},
	}
	adminCommand.AddCommand(purgeSessionsCommand)
}
