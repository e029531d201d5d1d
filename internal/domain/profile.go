// Package domain contains core domain types for the AgroAide client.
package domain

import "slices"

// ExperienceLevel describes how long a farmer has been working the land.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// Valid reports whether l is a known experience level.
func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

// IrrigationAccess is the farm's primary water source.
type IrrigationAccess string

const (
	IrrigationRainFed   IrrigationAccess = "rain-fed"
	IrrigationDrip      IrrigationAccess = "drip"
	IrrigationSprinkler IrrigationAccess = "sprinkler"
	IrrigationFlood     IrrigationAccess = "flood"
)

// Valid reports whether a is a known irrigation type.
func (a IrrigationAccess) Valid() bool {
	switch a {
	case IrrigationRainFed, IrrigationDrip, IrrigationSprinkler, IrrigationFlood:
		return true
	}
	return false
}

// FarmerProfile is the authenticated farmer as returned by the backend.
type FarmerProfile struct {
	ID               string           `json:"id"`
	FullName         string           `json:"fullName"`
	Email            string           `json:"email"`
	PhoneNumber      string           `json:"phoneNumber"`
	FarmName         string           `json:"farmName"`
	FarmLocation     string           `json:"farmLocation"`
	FarmLatitude     *float64         `json:"farmLatitude"`
	FarmLongitude    *float64         `json:"farmLongitude"`
	FarmSizeHectares float64          `json:"farmSizeHectares"`
	Crops            []string         `json:"crops"`
	ExperienceLevel  ExperienceLevel  `json:"experienceLevel"`
	SoilType         string           `json:"soilType"`
	IrrigationAccess IrrigationAccess `json:"irrigationAccess"`
	AvatarColor      string           `json:"avatarColor"`
	PreferredTheme   ThemeMode        `json:"preferredTheme"`
}

// Clone returns a deep copy of the profile.
func (p *FarmerProfile) Clone() *FarmerProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Crops = slices.Clone(p.Crops)
	if p.FarmLatitude != nil {
		lat := *p.FarmLatitude
		c.FarmLatitude = &lat
	}
	if p.FarmLongitude != nil {
		lng := *p.FarmLongitude
		c.FarmLongitude = &lng
	}
	return &c
}

// ProfileUpdate is a partial profile. Nil fields are left untouched.
type ProfileUpdate struct {
	FullName         *string           `json:"fullName,omitempty"`
	Email            *string           `json:"email,omitempty"`
	PhoneNumber      *string           `json:"phoneNumber,omitempty"`
	FarmName         *string           `json:"farmName,omitempty"`
	FarmLocation     *string           `json:"farmLocation,omitempty"`
	FarmLatitude     *float64          `json:"farmLatitude,omitempty"`
	FarmLongitude    *float64          `json:"farmLongitude,omitempty"`
	FarmSizeHectares *float64          `json:"farmSizeHectares,omitempty"`
	Crops            []string          `json:"crops,omitempty"`
	ExperienceLevel  *ExperienceLevel  `json:"experienceLevel,omitempty"`
	SoilType         *string           `json:"soilType,omitempty"`
	IrrigationAccess *IrrigationAccess `json:"irrigationAccess,omitempty"`
	AvatarColor      *string           `json:"avatarColor,omitempty"`
	PreferredTheme   *ThemeMode        `json:"preferredTheme,omitempty"`
}

// Apply returns a copy of p with every set field of u merged in.
func (p FarmerProfile) Apply(u ProfileUpdate) FarmerProfile {
	out := *p.Clone()
	if u.FullName != nil {
		out.FullName = *u.FullName
	}
	if u.Email != nil {
		out.Email = *u.Email
	}
	if u.PhoneNumber != nil {
		out.PhoneNumber = *u.PhoneNumber
	}
	if u.FarmName != nil {
		out.FarmName = *u.FarmName
	}
	if u.FarmLocation != nil {
		out.FarmLocation = *u.FarmLocation
	}
	if u.FarmLatitude != nil {
		lat := *u.FarmLatitude
		out.FarmLatitude = &lat
	}
	if u.FarmLongitude != nil {
		lng := *u.FarmLongitude
		out.FarmLongitude = &lng
	}
	if u.FarmSizeHectares != nil {
		out.FarmSizeHectares = *u.FarmSizeHectares
	}
	if u.Crops != nil {
		out.Crops = slices.Clone(u.Crops)
	}
	if u.ExperienceLevel != nil {
		out.ExperienceLevel = *u.ExperienceLevel
	}
	if u.SoilType != nil {
		out.SoilType = *u.SoilType
	}
	if u.IrrigationAccess != nil {
		out.IrrigationAccess = *u.IrrigationAccess
	}
	if u.AvatarColor != nil {
		out.AvatarColor = *u.AvatarColor
	}
	if u.PreferredTheme != nil {
		out.PreferredTheme = *u.PreferredTheme
	}
	return out
}

// IsEmpty returns true if the update sets no field.
func (u ProfileUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Email == nil && u.PhoneNumber == nil &&
		u.FarmName == nil && u.FarmLocation == nil &&
		u.FarmLatitude == nil && u.FarmLongitude == nil &&
		u.FarmSizeHectares == nil && u.Crops == nil &&
		u.ExperienceLevel == nil && u.SoilType == nil &&
		u.IrrigationAccess == nil && u.AvatarColor == nil &&
		u.PreferredTheme == nil
}
