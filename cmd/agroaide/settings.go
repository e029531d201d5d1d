package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agroaide/agroaide-client/internal/domain"
	"github.com/agroaide/agroaide-client/internal/theme"
)

func newSettingsCmd(rt *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Preferences, offline mode and account tools",
	}
	cmd.AddCommand(
		newThemeCmd(rt),
		newOfflineCmd(rt),
		newSyncCmd(rt),
		newNotifyCmd(rt),
		newAdvisorPrefsCmd(rt),
		&cobra.Command{
			Use:   "export",
			Short: "Request a data export",
			RunE: func(cmd *cobra.Command, _ []string) error {
				v, err := rt.app.RequestExport(cmd.Context())
				return result(rt, v, err)
			},
		},
		&cobra.Command{
			Use:   "support",
			Short: "Show support links",
			RunE: func(cmd *cobra.Command, _ []string) error {
				v, err := rt.app.SupportLinks(cmd.Context())
				return result(rt, v, err)
			},
		},
	)
	return cmd
}

func newThemeCmd(rt *cli) *cobra.Command {
	return &cobra.Command{
		Use:       "theme system|light|dark|field",
		Short:     "Set the theme preference",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"system", "light", "dark", "field"},
		RunE: func(_ *cobra.Command, args []string) error {
			pref := domain.ThemePreference(args[0])
			if err := rt.session.SetThemePreference(pref); err != nil {
				return err
			}
			mode := theme.Resolve(pref, theme.DetectSystemScheme())
			return rt.print(map[string]string{
				"themePreference": string(pref),
				"theme":           string(mode),
				"statusBar":       string(theme.StatusBarStyle(mode)),
			})
		},
	}
}

func newOfflineCmd(rt *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "offline on|off",
		Short: "Toggle offline mode; turning it on syncs the offline brief",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			res, err := rt.app.SetOfflineMode(cmd.Context(), enabled)
			if err != nil {
				return err
			}
			if res == nil {
				return rt.printMessage("Offline mode disabled.")
			}
			return rt.print(res)
		},
	}
}

func newSyncCmd(rt *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync the offline brief now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := rt.app.Sync(cmd.Context())
			return result(rt, v, err)
		},
	}
}

func newNotifyCmd(rt *cli) *cobra.Command {
	var severe, market, insights, community bool
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Show or change notification preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			var u domain.NotificationPreferencesUpdate
			setBool(f.Changed("severe-weather"), &u.SevereWeather, severe)
			setBool(f.Changed("market-movers"), &u.MarketMovers, market)
			setBool(f.Changed("ai-insights"), &u.AIInsights, insights)
			setBool(f.Changed("community-mentions"), &u.CommunityMentions, community)
			rt.session.UpdateNotificationPreferences(u)
			return rt.print(rt.session.Snapshot().NotificationPreferences)
		},
	}
	cmd.Flags().BoolVar(&severe, "severe-weather", false, "severe weather alerts")
	cmd.Flags().BoolVar(&market, "market-movers", false, "market price movements")
	cmd.Flags().BoolVar(&insights, "ai-insights", false, "AI insights")
	cmd.Flags().BoolVar(&community, "community-mentions", false, "community mentions")
	return cmd
}

func newAdvisorPrefsCmd(rt *cli) *cobra.Command {
	var (
		detail, tone string
		voice        bool
	)
	cmd := &cobra.Command{
		Use:   "advisor",
		Short: "Show or change AI advisor preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			var u domain.AiAdvisorPreferenceUpdate
			if f.Changed("detail") {
				d := domain.DetailLevel(detail)
				if !d.Valid() {
					return fmt.Errorf("%w: unknown detail level %q", errUsage, detail)
				}
				u.DetailLevel = &d
			}
			if f.Changed("tone") {
				t := domain.Tone(tone)
				if !t.Valid() {
					return fmt.Errorf("%w: unknown tone %q", errUsage, tone)
				}
				u.Tone = &t
			}
			setBool(f.Changed("voice-tips"), &u.VoiceTips, voice)
			rt.session.UpdateAiAdvisorPreference(u)
			return rt.print(rt.session.Snapshot().AiAdvisorPreference)
		},
	}
	cmd.Flags().StringVar(&detail, "detail", "", "answer length (concise, balanced, deep)")
	cmd.Flags().StringVar(&tone, "tone", "", "answer tone (cautious, balanced, bold)")
	cmd.Flags().BoolVar(&voice, "voice-tips", false, "spoken tips")
	return cmd
}
