package main

import (
	"github.com/spf13/cobra"

	"github.com/agroaide/agroaide-client/internal/theme"
)

func newRootCmd(rt *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "agroaide",
		Short:         "AgroAide farm assistant client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.open(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&rt.apiURL, "api-url", "", "backend base URL (overrides AGROAIDE_API_URL)")
	flags.StringVar(&rt.dbPath, "db", "", "session database path (overrides AGROAIDE_DB_PATH)")
	flags.BoolVar(&rt.ephemeral, "ephemeral", false, "keep the session in memory only")

	root.AddCommand(
		newStatusCmd(rt),
		newOnboardCmd(rt),
		newLoginCmd(rt),
		newRegisterCmd(rt),
		newLogoutCmd(rt),
		newResetCmd(rt),
		newRecoverCmd(rt),
		newProfileCmd(rt),
		newDashboardCmd(rt),
		newFarmCmd(rt),
		newCalendarCmd(rt),
		newMarketCmd(rt),
		newWeatherCmd(rt),
		newNotificationsCmd(rt),
		newAdvisorCmd(rt),
		newSettingsCmd(rt),
	)
	return root
}

type statusView struct {
	Route           string `json:"route"`
	AuthStatus      string `json:"authStatus"`
	Onboarded       bool   `json:"onboardingCompleted"`
	FarmerName      string `json:"farmerName,omitempty"`
	ThemePreference string `json:"themePreference"`
	Theme           string `json:"theme"`
	StatusBar       string `json:"statusBar"`
	OfflineMode     bool   `json:"offlineModeEnabled"`
	LastSync        string `json:"lastSyncISO,omitempty"`
}

func newStatusCmd(rt *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session state and where the app would land",
		RunE: func(*cobra.Command, []string) error {
			st := rt.session.Snapshot()
			mode := theme.Resolve(st.ThemePreference, theme.DetectSystemScheme())
			view := statusView{
				Route:           string(rt.app.Route()),
				AuthStatus:      string(st.AuthStatus),
				Onboarded:       st.OnboardingCompleted,
				ThemePreference: string(st.ThemePreference),
				Theme:           string(mode),
				StatusBar:       string(theme.StatusBarStyle(mode)),
				OfflineMode:     st.OfflineModeEnabled,
				LastSync:        st.LastSyncISO,
			}
			if st.FarmerProfile != nil {
				view.FarmerName = st.FarmerProfile.FullName
			}
			return rt.print(view)
		},
	}
}

func newOnboardCmd(rt *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Mark onboarding as completed",
		RunE: func(*cobra.Command, []string) error {
			rt.session.CompleteOnboarding()
			return rt.printMessage("Onboarding completed.")
		},
	}
}
