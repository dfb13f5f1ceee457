// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-term/internal/export"
	"github.com/jeranaias/rigrun-term/internal/storage"
	"github.com/jeranaias/rigrun-term/internal/ui/components"
)

func newSessionsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect stored sessions",
	}
	cmd.AddCommand(
		newSessionsListCmd(root),
		newSessionsShowCmd(root),
		newSessionsDeleteCmd(root),
		newSessionsExportCmd(root),
	)
	return cmd
}

// withStore opens the session store for a subcommand.
func withStore(root *rootOptions, fn func(store *storage.SessionStore) error) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if !cfg.Storage.Enabled {
		return fmt.Errorf("session storage is disabled")
	}
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newSessionsListCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(root, func(store *storage.SessionStore) error {
				sessions, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(out, "No sessions")
					return nil
				}
				now := time.Now()
				for _, s := range sessions {
					_, _ = fmt.Fprintf(out, "%s  %s\n", s.ID, components.SessionRow(s, now))
				}
				return nil
			})
		},
	}
}

func newSessionsShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print the messages of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(root, func(store *storage.SessionStore) error {
				sess, err := store.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "%s (%s)\n", sess.Title, humanize.Time(sess.UpdatedAt))
				for _, msg := range sess.Messages {
					_, _ = fmt.Fprintf(out, "\n[%s]\n%s\n", msg.Role, msg.Content)
				}
				return nil
			})
		},
	}
}

func newSessionsDeleteCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a stored session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(root, func(store *storage.SessionStore) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
				return nil
			})
		},
	}
}

func newSessionsExportCmd(root *rootOptions) *cobra.Command {
	var (
		format string
		dir    string
		stdout bool
	)
	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Export a session as Markdown or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := export.ForFormat(format, export.DefaultOptions())
			if err != nil {
				return err
			}
			return withStore(root, func(store *storage.SessionStore) error {
				sess, err := store.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if stdout {
					data, err := exp.Export(sess)
					if err != nil {
						return err
					}
					_, err = out.Write(data)
					return err
				}
				path, err := export.ToFile(sess, exp, dir, time.Now())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "Exported session %s to %s\n", sess.ID, path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "output format: markdown or json")
	cmd.Flags().StringVarP(&dir, "output", "o", ".", "directory for the exported file")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write the document to stdout instead of a file")
	return cmd
}
