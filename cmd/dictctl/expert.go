package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/amchigale/konkani-dictionary/internal/repository"
	"github.com/amchigale/konkani-dictionary/internal/service"
	"github.com/spf13/cobra"
)

func newExpertCommand() *cobra.Command {
	expertCommand := &cobra.Command{
		Use:   "expert",
		Short: "Manage expert reviewer accounts",
	}

	var name string
	addCommand := &cobra.Command{
		Use:   "add <email>",
		Short: "Create an expert account (no password)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContributors(func(repo repository.ContributorRepository) error {
				return addExpert(cmd.Context(), repo, cmd.OutOrStdout(), args[0], name)
			})
		},
	}
	addCommand.Flags().StringVar(&name, "name", "", "display name (defaults to the email local part)")

	var password string
	var passwordStdin bool
	setPasswordCommand := &cobra.Command{
		Use:   "set-password <email>",
		Short: "Set an expert's login password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw := password
			if passwordStdin {
				var err error
				if pw, err = readPassword(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			return withContributors(func(repo repository.ContributorRepository) error {
				return setExpertPassword(cmd.Context(), repo, cmd.OutOrStdout(), args[0], pw)
			})
		},
	}
	setPasswordCommand.Flags().StringVar(&password, "password", "", "new password")
	setPasswordCommand.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	setPasswordCommand.MarkFlagsMutuallyExclusive("password", "password-stdin")

	deactivateCommand := &cobra.Command{
		Use:   "deactivate <email>",
		Short: "Revoke an expert's access; existing tokens stop working",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContributors(func(repo repository.ContributorRepository) error {
				return setExpertActive(cmd.Context(), repo, cmd.OutOrStdout(), args[0], false)
			})
		},
	}

	activateCommand := &cobra.Command{
		Use:   "activate <email>",
		Short: "Restore a deactivated expert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContributors(func(repo repository.ContributorRepository) error {
				return setExpertActive(cmd.Context(), repo, cmd.OutOrStdout(), args[0], true)
			})
		},
	}

	promoteCommand := &cobra.Command{
		Use:   "promote <email>",
		Short: "Grant expert rights to an existing contributor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContributors(func(repo repository.ContributorRepository) error {
				return promoteExpert(cmd.Context(), repo, cmd.OutOrStdout(), args[0])
			})
		},
	}

	expertCommand.AddCommand(addCommand, promoteCommand, setPasswordCommand, deactivateCommand, activateCommand)
	return expertCommand
}

func withContributors(fn func(repository.ContributorRepository) error) error {
	_, db, closeDB, err := loadConfigAndDB()
	if err != nil {
		return err
	}
	defer closeDB()
	return fn(repository.NewContributorRepository(db))
}

func addExpert(ctx context.Context, repo repository.ContributorRepository, out io.Writer, email, name string) error {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email %q", email)
	}
	if name == "" {
		name = email[:strings.Index(email, "@")]
	}

	created, err := repo.EnsureExpert(ctx, email, name)
	if err != nil {
		return fmt.Errorf("add expert: %w", err)
	}
	if !created {
		existing, err := repo.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if !existing.IsExpert {
			return fmt.Errorf("%s is already registered as a contributor without expert rights; use `dictctl expert promote %s`", email, email)
		}
		fmt.Fprintf(out, "expert %s already exists\n", email)
		return nil
	}
	fmt.Fprintf(out, "expert %s created; set a password with `dictctl expert set-password %s`\n", email, email)
	return nil
}

func promoteExpert(ctx context.Context, repo repository.ContributorRepository, out io.Writer, email string) error {
	email = strings.TrimSpace(email)
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find %s: %w", email, err)
	}
	if existing.IsActiveExpert() {
		fmt.Fprintf(out, "%s is already an expert\n", email)
		return nil
	}
	if err := repo.Promote(ctx, email); err != nil {
		return fmt.Errorf("promote %s: %w", email, err)
	}
	fmt.Fprintf(out, "%s promoted to expert; set a password with `dictctl expert set-password %s`\n", email, email)
	return nil
}

func setExpertPassword(ctx context.Context, repo repository.ContributorRepository, out io.Writer, email, password string) error {
	expert, err := repo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find %s: %w", email, err)
	}
	if !expert.IsExpert {
		return fmt.Errorf("%s is not an expert", email)
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		return err
	}
	if err := repo.SetPasswordHash(ctx, email, hash); err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	fmt.Fprintf(out, "password updated for %s\n", email)
	return nil
}

func setExpertActive(ctx context.Context, repo repository.ContributorRepository, out io.Writer, email string, active bool) error {
	if err := repo.SetActive(ctx, email, active); err != nil {
		return fmt.Errorf("update %s: %w", email, err)
	}
	state := "deactivated"
	if active {
		state = "activated"
	}
	fmt.Fprintf(out, "%s %s\n", email, state)
	return nil
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
