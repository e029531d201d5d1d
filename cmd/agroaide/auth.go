package main

import (
	"github.com/spf13/cobra"

	"github.com/agroaide/agroaide-client/internal/domain"
	"github.com/agroaide/agroaide-client/internal/services"
)

func newLoginCmd(rt *cli) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := rt.app.Login(cmd.Context(), email, password)
			return result(rt, profile, err)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(rt *cli) *cobra.Command {
	var (
		p                    services.RegisterPayload
		irrigation, level    string
		lat, lng, size       float64
		passwordConfirmation string
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p.PasswordConfirmation = passwordConfirmation
			if p.PasswordConfirmation == "" {
				p.PasswordConfirmation = p.Password
			}
			p.IrrigationAccess = domain.IrrigationAccess(irrigation)
			p.ExperienceLevel = domain.ExperienceLevel(level)
			if cmd.Flags().Changed("lat") {
				p.FarmLatitude = &lat
			}
			if cmd.Flags().Changed("lng") {
				p.FarmLongitude = &lng
			}
			if cmd.Flags().Changed("farm-size") {
				p.FarmSizeHectares = &size
			}
			profile, err := rt.app.Register(cmd.Context(), p)
			return result(rt, profile, err)
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.FullName, "name", "", "full name")
	f.StringVar(&p.Email, "email", "", "email")
	f.StringVar(&p.Password, "password", "", "password")
	f.StringVar(&passwordConfirmation, "password-confirmation", "", "password confirmation (defaults to --password)")
	f.StringVar(&p.PhoneNumber, "phone", "", "phone number")
	f.StringVar(&p.FarmName, "farm-name", "", "farm name")
	f.StringVar(&p.FarmLocation, "farm-location", "", "farm location")
	f.Float64Var(&lat, "lat", 0, "farm latitude")
	f.Float64Var(&lng, "lng", 0, "farm longitude")
	f.Float64Var(&size, "farm-size", 0, "farm size in hectares")
	f.StringVar(&p.SoilType, "soil", "", "soil type")
	f.StringVar(&irrigation, "irrigation", "", "irrigation access (rain-fed, drip, sprinkler, flood)")
	f.StringSliceVar(&p.Crops, "crops", nil, "comma-separated crops")
	f.StringVar(&level, "experience", "", "experience level (beginner, intermediate, advanced)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(rt *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt.app.Logout(cmd.Context())
			return rt.printMessage("Signed out.")
		},
	}
}

func newResetCmd(rt *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the locally stored session and preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.persister.Forget(cmd.Context()); err != nil {
				return err
			}
			return rt.printMessage("Local session cleared.")
		},
	}
}

func newRecoverCmd(rt *cli) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Request a password reset email",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := rt.app.RecoverPassword(cmd.Context(), email)
			return result(rt, resp, err)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newProfileCmd(rt *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the farmer profile",
	}
	cmd.AddCommand(newProfileShowCmd(rt), newProfileUpdateCmd(rt), newProfilePasswordCmd(rt))
	return cmd
}

func newProfileShowCmd(rt *cli) *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the profile, refreshed from the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if local {
				return rt.print(rt.session.FarmerProfile())
			}
			profile, err := rt.app.RefreshProfile(cmd.Context())
			return result(rt, profile, err)
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "show the stored profile without contacting the backend")
	return cmd
}

func newProfileUpdateCmd(rt *cli) *cobra.Command {
	var (
		name, email, phone, farmName, farmLocation, soil, irrigation, level string
		size, lat, lng                                                     float64
		crops                                                              []string
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields; only given flags are sent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			var u domain.ProfileUpdate
			setString(f.Changed("name"), &u.FullName, name)
			setString(f.Changed("email"), &u.Email, email)
			setString(f.Changed("phone"), &u.PhoneNumber, phone)
			setString(f.Changed("farm-name"), &u.FarmName, farmName)
			setString(f.Changed("farm-location"), &u.FarmLocation, farmLocation)
			setString(f.Changed("soil"), &u.SoilType, soil)
			setFloat(f.Changed("farm-size"), &u.FarmSizeHectares, size)
			setFloat(f.Changed("lat"), &u.FarmLatitude, lat)
			setFloat(f.Changed("lng"), &u.FarmLongitude, lng)
			if f.Changed("crops") {
				u.Crops = crops
			}
			if f.Changed("irrigation") {
				v := domain.IrrigationAccess(irrigation)
				u.IrrigationAccess = &v
			}
			if f.Changed("experience") {
				v := domain.ExperienceLevel(level)
				u.ExperienceLevel = &v
			}
			if u.IsEmpty() {
				return errNothingToUpdate
			}
			profile, err := rt.app.UpdateProfile(cmd.Context(), u)
			return result(rt, profile, err)
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "full name")
	f.StringVar(&email, "email", "", "email")
	f.StringVar(&phone, "phone", "", "phone number")
	f.StringVar(&farmName, "farm-name", "", "farm name")
	f.StringVar(&farmLocation, "farm-location", "", "farm location")
	f.StringVar(&soil, "soil", "", "soil type")
	f.StringVar(&irrigation, "irrigation", "", "irrigation access")
	f.StringVar(&level, "experience", "", "experience level")
	f.Float64Var(&size, "farm-size", 0, "farm size in hectares")
	f.Float64Var(&lat, "lat", 0, "farm latitude")
	f.Float64Var(&lng, "lng", 0, "farm longitude")
	f.StringSliceVar(&crops, "crops", nil, "comma-separated crops")
	return cmd
}

func newProfilePasswordCmd(rt *cli) *cobra.Command {
	var p services.ChangePasswordPayload
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if p.NewPasswordConfirmation == "" {
				p.NewPasswordConfirmation = p.NewPassword
			}
			resp, err := rt.app.ChangePassword(cmd.Context(), p)
			return result(rt, resp, err)
		},
	}
	cmd.Flags().StringVar(&p.CurrentPassword, "current", "", "current password")
	cmd.Flags().StringVar(&p.NewPassword, "new", "", "new password")
	cmd.Flags().StringVar(&p.NewPasswordConfirmation, "confirm", "", "new password confirmation (defaults to --new)")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("new")
	return cmd
}
