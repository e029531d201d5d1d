package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agroaide/agroaide-client/internal/apiclient"
	"github.com/agroaide/agroaide-client/internal/app"
	"github.com/agroaide/agroaide-client/internal/services"
)

func newDashboardCmd(rt *cli) *cobra.Command {
	var (
		watch    bool
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard snapshot and notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !watch {
				home, err := rt.app.Home(cmd.Context())
				return result(rt, home, err)
			}
			if interval <= 0 {
				return fmt.Errorf("%w: --interval must be > 0", errUsage)
			}
			return watchHome(cmd.Context(), rt, interval)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "refresh until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "refresh interval with --watch")
	return cmd
}

// watchHome prints the home screen every interval. Transient failures are
// logged and retried on the next tick; an expired session ends the loop.
func watchHome(ctx context.Context, rt *cli, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		home, err := rt.app.Home(ctx)
		switch {
		case err == nil:
			if err := rt.print(home); err != nil {
				return err
			}
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, app.ErrNotAuthenticated), apiclient.IsAuthExpired(err):
			return err
		default:
			slog.Warn("Dashboard refresh failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			rt.app.RefreshHome()
		}
	}
}

func newFarmCmd(rt *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "farm",
		Short: "Fields and the farm journal",
	}

	overview := &cobra.Command{
		Use:   "overview",
		Short: "Show fields, journal and map",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := rt.app.FarmOverview(cmd.Context())
			return result(rt, v, err)
		},
	}

	var (
		field     services.NewField
		area      float64
		fieldName string
		fieldCrop string
		planted   string
	)
	addField := &cobra.Command{
		Use:   "add-field",
		Short: "Add a field",
		RunE: func(cmd *cobra.Command, _ []string) error {
			setFloat(cmd.Flags().Changed("area"), &field.AreaHectares, area)
			v, err := rt.app.AddField(cmd.Context(), field)
			return result(rt, v, err)
		},
	}
	addField.Flags().StringVar(&field.Name, "name", "", "field name")
	addField.Flags().StringVar(&field.Crop, "crop", "", "crop")
	addField.Flags().Float64Var(&area, "area", 0, "area in hectares")
	addField.Flags().StringVar(&field.PlantedAt, "planted-at", "", "planting date (YYYY-MM-DD)")
	_ = addField.MarkFlagRequired("name")
	_ = addField.MarkFlagRequired("crop")

	updateField := &cobra.Command{
		Use:   "update-field ID",
		Short: "Update a field; only given flags are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var u services.FieldUpdate
			setString(f.Changed("name"), &u.Name, fieldName)
			setString(f.Changed("crop"), &u.Crop, fieldCrop)
			setFloat(f.Changed("area"), &u.AreaHectares, area)
			setString(f.Changed("planted-at"), &u.PlantedAt, planted)
			if u == (services.FieldUpdate{}) {
				return errNothingToUpdate
			}
			v, err := rt.app.UpdateField(cmd.Context(), args[0], u)
			return result(rt, v, err)
		},
	}
	updateField.Flags().StringVar(&fieldName, "name", "", "field name")
	updateField.Flags().StringVar(&fieldCrop, "crop", "", "crop")
	updateField.Flags().Float64Var(&area, "area", 0, "area in hectares")
	updateField.Flags().StringVar(&planted, "planted-at", "", "planting date (YYYY-MM-DD)")

	deleteField := &cobra.Command{
		Use:   "delete-field ID",
		Short: "Delete a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := rt.app.DeleteField(cmd.Context(), args[0])
			return result(rt, v, err)
		},
	}

	var (
		entry     services.NewJournalEntry
		fieldID   int
		note      string
		entryType string
	)
	journalAdd := &cobra.Command{
		Use:   "journal-add",
		Short: "Add a journal entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			setInt(cmd.Flags().Changed("field-id"), &entry.FarmFieldID, fieldID)
			v, err := rt.app.AddJournalEntry(cmd.Context(), entry)
			return result(rt, v, err)
		},
	}
	journalAdd.Flags().StringVar(&entry.Note, "note", "", "note text")
	journalAdd.Flags().StringVar(&entry.Type, "type", "", "entry type")
	journalAdd.Flags().IntVar(&fieldID, "field-id", 0, "field the entry is about")
	_ = journalAdd.MarkFlagRequired("note")

	journalUpdate := &cobra.Command{
		Use:   "journal-update ID",
		Short: "Edit a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u services.JournalEntryUpdate
			setString(cmd.Flags().Changed("note"), &u.Note, note)
			setString(cmd.Flags().Changed("type"), &u.Type, entryType)
			if u == (services.JournalEntryUpdate{}) {
				return errNothingToUpdate
			}
			v, err := rt.app.UpdateJournalEntry(cmd.Context(), args[0], u)
			return result(rt, v, err)
		},
	}
	journalUpdate.Flags().StringVar(&note, "note", "", "note text")
	journalUpdate.Flags().StringVar(&entryType, "type", "", "entry type")

	journalDelete := &cobra.Command{
		Use:   "journal-delete ID",
		Short: "Delete a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := rt.app.DeleteJournalEntry(cmd.Context(), args[0])
			return result(rt, v, err)
		},
	}

	cmd.AddCommand(overview, addField, updateField, deleteField, journalAdd, journalUpdate, journalDelete)
	return cmd
}

func newCalendarCmd(rt *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Farm task calendar",
	}

	var date string
	list := &cobra.Command{
		Use:   "list",
		Short: "Show tasks around a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := rt.app.Calendar(cmd.Context(), date)
			return result(rt, v, err)
		},
	}
	list.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD), default today")

	var (
		task        services.NewTask
		duration    int
		title       string
		description string
		scheduled   string
		period      string
		impact      string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Schedule a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			setInt(cmd.Flags().Changed("duration"), &task.DurationMinutes, duration)
			v, err := rt.app.CreateTask(cmd.Context(), task)
			return result(rt, v, err)
		},
	}
	add.Flags().StringVar(&task.Title, "title", "", "task title")
	add.Flags().StringVar(&task.ScheduledDate, "date", "", "scheduled date (YYYY-MM-DD)")
	add.Flags().StringVar(&task.Description, "description", "", "description")
	add.Flags().StringVar(&task.Period, "period", "", "time of day")
	add.Flags().IntVar(&duration, "duration", 0, "duration in minutes")
	add.Flags().StringVar(&task.Impact, "impact", "", "expected impact")
	_ = add.MarkFlagRequired("title")
	_ = add.MarkFlagRequired("date")

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a task; only given flags are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var u services.TaskUpdate
			setString(f.Changed("title"), &u.Title, title)
			setString(f.Changed("description"), &u.Description, description)
			setString(f.Changed("date"), &u.ScheduledDate, scheduled)
			setString(f.Changed("period"), &u.Period, period)
			setInt(f.Changed("duration"), &u.DurationMinutes, duration)
			setString(f.Changed("impact"), &u.Impact, impact)
			if u == (services.TaskUpdate{}) {
				return errNothingToUpdate
			}
			v, err := rt.app.UpdateTask(cmd.Context(), args[0], u)
			return result(rt, v, err)
		},
	}
	update.Flags().StringVar(&title, "title", "", "task title")
	update.Flags().StringVar(&scheduled, "date", "", "scheduled date (YYYY-MM-DD)")
	update.Flags().StringVar(&description, "description", "", "description")
	update.Flags().StringVar(&period, "period", "", "time of day")
	update.Flags().IntVar(&duration, "duration", 0, "duration in minutes")
	update.Flags().StringVar(&impact, "impact", "", "expected impact")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := rt.app.DeleteTask(cmd.Context(), args[0])
			return result(rt, v, err)
		},
	}

	var undo bool
	complete := &cobra.Command{
		Use:   "complete ID",
		Short: "Mark a task done (or not done with --undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := rt.app.CompleteTask(cmd.Context(), args[0], !undo)
			return result(rt, v, err)
		},
	}
	complete.Flags().BoolVar(&undo, "undo", false, "mark as not completed")

	cmd.AddCommand(list, add, update, del, complete)
	return cmd
}

func newMarketCmd(rt *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Market prices and resources",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "intel",
			Short: "Commodity prices and highlights",
			RunE: func(cmd *cobra.Command, _ []string) error {
				v, err := rt.app.MarketIntel(cmd.Context())
				return result(rt, v, err)
			},
		},
		&cobra.Command{
			Use:   "resources",
			Short: "Extension resources",
			RunE: func(cmd *cobra.Command, _ []string) error {
				v, err := rt.app.Resources(cmd.Context())
				return result(rt, v, err)
			},
		},
		&cobra.Command{
			Use:   "nearby",
			Short: "Farmers near you",
			RunE: func(cmd *cobra.Command, _ []string) error {
				v, err := rt.app.NearbyFarmers(cmd.Context())
				return result(rt, v, err)
			},
		},
	)
	return cmd
}

func newWeatherCmd(rt *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "weather",
		Short: "Forecast, soil health and alerts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := rt.app.Weather(cmd.Context())
			return result(rt, v, err)
		},
	}
}

func newNotificationsCmd(rt *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "In-app notifications",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List notifications",
			RunE: func(cmd *cobra.Command, _ []string) error {
				v, err := rt.app.Notifications(cmd.Context())
				return result(rt, v, err)
			},
		},
		&cobra.Command{
			Use:   "read ID",
			Short: "Mark one notification read",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				v, err := rt.app.MarkNotificationRead(cmd.Context(), id)
				return result(rt, v, err)
			},
		},
		&cobra.Command{
			Use:   "read-all",
			Short: "Mark every notification read",
			RunE: func(cmd *cobra.Command, _ []string) error {
				v, err := rt.app.MarkAllNotificationsRead(cmd.Context())
				return result(rt, v, err)
			},
		},
	)
	return cmd
}

func newAdvisorCmd(rt *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advisor",
		Short: "AI farm advisor",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "chat MESSAGE...",
			Short: "Ask the advisor a question",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := rt.app.Chat(cmd.Context(), strings.Join(args, " "))
				return result(rt, v, err)
			},
		},
		&cobra.Command{
			Use:   "suggestions",
			Short: "Suggested questions",
			RunE: func(cmd *cobra.Command, _ []string) error {
				v, err := rt.app.Suggestions(cmd.Context())
				return result(rt, v, err)
			},
		},
	)
	return cmd
}
