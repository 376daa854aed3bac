package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/healthwatch/internal/api/client"
	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

func eventsCmd() *cobra.Command {
	eventsRoot := &cobra.Command{
		Use:   "events",
		Short: "Browse and clear events",
		Long: "Browse the events recorded by the monitor, count them by severity,\n" +
			"record external events and delete events.",
	}

	eventsRoot.AddCommand(
		eventsListCmd(),
		eventsStatsCmd(),
		eventsCreateCmd(),
		eventsDeleteCmd(),
		eventsClearCmd(),
		eventsClearNonCriticalCmd(),
	)

	return eventsRoot
}

func eventsListCmd() *cobra.Command {
	var p apiclient.ListEventsParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent events",
		Example: `  hwctl events list
  hwctl events list --severity CRITICAL --limit 20
  hwctl events list --user 3f1c... --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			events, err := newClient().ListEvents(cmd.Context(), p)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, events)
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "No events found.")
				return nil
			}
			return printEventsTable(out, events)
		},
	}

	cmd.Flags().IntVar(&p.Limit, "limit", 0, "maximum events to return (server default 50)")
	cmd.Flags().StringVar(&p.Severity, "severity", "", "only events of this severity")
	cmd.Flags().StringVar(&p.UserID, "user", "", "only events for this user ID")

	return cmd
}

func eventsStatsCmd() *cobra.Command {
	var hours int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count recent events by severity",
		Example: `  hwctl events stats
  hwctl events stats --hours 168`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := newClient().EventStats(cmd.Context(), hours)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), stats)
			}
			return printEventStats(cmd.OutOrStdout(), stats)
		},
	}

	cmd.Flags().IntVar(&hours, "hours", 24, "window size in hours")

	return cmd
}

func eventsCreateCmd() *cobra.Command {
	var (
		eventType string
		severity  string
		title     string
		message   string
		userID    string
		metadata  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record an event",
		Example: `  hwctl events create --type SECURITY_ALERT --severity CRITICAL \
    --title "Repeated failed logins" --metadata '{"ip":"10.0.0.7"}'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := &apiclient.CreateEventRequest{
				Type:     domain.EventType(strings.ToUpper(eventType)),
				Severity: domain.Severity(strings.ToUpper(severity)),
				Title:    title,
				Message:  message,
			}
			if userID != "" {
				req.UserID = &userID
			}
			if metadata != "" {
				if err := json.Unmarshal([]byte(metadata), &req.Metadata); err != nil {
					return fmt.Errorf("parsing --metadata: %w", err)
				}
			}

			e, err := newClient().CreateEvent(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), e)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded event %s\n", e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&eventType, "type", "", "event type, e.g. SECURITY_ALERT")
	cmd.Flags().StringVar(&severity, "severity", "INFO", "INFO, WARNING, ERROR or CRITICAL")
	cmd.Flags().StringVar(&title, "title", "", "short summary")
	cmd.Flags().StringVar(&message, "message", "", "details")
	cmd.Flags().StringVar(&userID, "user", "", "related user ID")
	cmd.Flags().StringVar(&metadata, "metadata", "", "JSON object of extra context")
	cobra.CheckErr(cmd.MarkFlagRequired("type"))
	cobra.CheckErr(cmd.MarkFlagRequired("title"))

	return cmd
}

func eventsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete one event",
		Example: `  hwctl events delete 6d3b2f0e-...`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := newClient().DeleteEvent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printAdminResult(cmd, res)
		},
	}
}

func eventsClearCmd() *cobra.Command {
	var (
		severity string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every event, or every event of one severity",
		Example: `  hwctl events clear --yes
  hwctl events clear --severity INFO --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to clear events without --yes")
			}
			res, err := newClient().ClearEvents(cmd.Context(), strings.ToUpper(severity))
			if err != nil {
				return err
			}
			return printAdminResult(cmd, res)
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "", "only clear events of this severity")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")

	return cmd
}

func eventsClearNonCriticalCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "clear-non-critical",
		Short:   "Delete every INFO and WARNING event",
		Example: `  hwctl events clear-non-critical`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().ClearNonCritical(cmd.Context())
			if err != nil {
				return err
			}
			return printAdminResult(cmd, res)
		},
	}
}

func printAdminResult(cmd *cobra.Command, res *apiclient.Result) error {
	if jsonOutput() {
		return outputJSON(cmd.OutOrStdout(), res)
	}
	return printResult(cmd.OutOrStdout(), res)
}
