package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chrisdamba/foodstore/internal/storefront"
	"github.com/chrisdamba/foodstore/internal/validation"
)

type formFlag struct {
	flag  string
	field string
	def   string
	usage string
}

var (
	loginFields = []formFlag{
		{"email", validation.FieldEmail, "", "email address"},
		{"password", validation.FieldPassword, "", "password"},
	}
	registerFields = []formFlag{
		{"name", validation.FieldName, "", "full name"},
		{"email", validation.FieldEmail, "", "email address"},
		{"password", validation.FieldPassword, "", "password"},
		{"confirm-password", validation.FieldConfirmPassword, "", "password again"},
	}
)

func addFormFlags(cmd *cobra.Command, fields []formFlag) {
	for _, f := range fields {
		cmd.Flags().String(f.flag, f.def, f.usage)
	}
}

// fillForm types every flag into the form through change, in field order.
func fillForm(cmd *cobra.Command, fields []formFlag, change func(field, value string) error) error {
	for _, f := range fields {
		value, _ := cmd.Flags().GetString(f.flag)
		if err := change(f.field, value); err != nil {
			return err
		}
	}
	return nil
}

// submitAuth fills and submits an auth form, then waits for the sign-in.
func submitAuth(cmd *cobra.Command, app *storefront.App, flow *storefront.AuthFlow, fields []formFlag, view func() storefront.Form) error {
	out := cmd.OutOrStdout()
	if err := fillForm(cmd, fields, flow.Change); err != nil {
		return err
	}
	if _, err := flow.Submit(); err != nil {
		if validation.IsValidation(err) {
			printFieldErrors(cmd.ErrOrStderr(), view().Errors)
			return errReported
		}
		return err
	}
	fmt.Fprintln(out, "Signing in...")
	if err := app.Scheduler().Drain(cmd.Context()); err != nil {
		return err
	}
	printWhoami(out, app)
	return nil
}

func printWhoami(w io.Writer, app *storefront.App) {
	header := app.Header()
	if !header.LoggedIn {
		fmt.Fprintln(w, "Not signed in")
		return
	}
	fmt.Fprintf(w, "Signed in as %s <%s>\n", header.User.Name, header.User.Email)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), cmd.OutOrStdout(), func(app *storefront.App) error {
			return submitAuth(cmd, app, app.LoginFlow(), loginFields, app.LoginForm)
		})
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), cmd.OutOrStdout(), func(app *storefront.App) error {
			password, _ := cmd.Flags().GetString("password")
			fmt.Fprintf(cmd.OutOrStdout(), "Password strength: %s\n", validation.PasswordStrength(password))
			return submitAuth(cmd, app, app.RegisterFlow(), registerFields, app.RegisterForm)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out; the cart is kept",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return withApp(cmd.Context(), out, func(app *storefront.App) error {
			app.Logout()
			fmt.Fprintln(out, "Signed out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return withApp(cmd.Context(), out, func(app *storefront.App) error {
			printWhoami(out, app)
			return nil
		})
	},
}

func init() {
	addFormFlags(loginCmd, loginFields)
	addFormFlags(registerCmd, registerFields)
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
