package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loginCmd stores the identity token used by the Profile tab.
var loginCmd = &cobra.Command{
	Use:   "login [user-id]",
	Short: "Store the identity token for this machine",
	Long: `Stores the user id in the session file under the state directory.
The Profile tab loads and saves the profile of this user.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

// logoutCmd removes the stored identity token.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored identity token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func runLogin(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	if err := sess.Login(args[0]); err != nil {
		return err
	}
	tok, _ := sess.Token()
	logger.Info("logged in", zap.String("user", tok))
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", tok)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	tok, ok := sess.Token()
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
		return nil
	}
	if err := sess.Logout(); err != nil {
		return err
	}
	logger.Info("logged out", zap.String("user", tok))
	fmt.Fprintf(cmd.OutOrStdout(), "Logged out %s\n", tok)
	return nil
}
