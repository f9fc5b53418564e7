// Enum values stored as strings in the database. Parsing is done with explicit
// Parse functions that return an error instead of panicking, so an invalid
// value coming from a request or a CSV row surfaces as a Validation failure.
package model

import "fmt"

// ProjectCategory is the sector a project belongs to.
type ProjectCategory string

const (
	CategoryEducation      ProjectCategory = "Education"
	CategoryHealth         ProjectCategory = "Health"
	CategoryWater          ProjectCategory = "Water"
	CategoryInfrastructure ProjectCategory = "Infrastructure"
	CategorySecurity       ProjectCategory = "Security"
	CategoryEnvironment    ProjectCategory = "Environment"
	CategoryOther          ProjectCategory = "Other"
)

func ParseProjectCategory(s string) (ProjectCategory, error) {
	switch c := ProjectCategory(s); c {
	case CategoryEducation, CategoryHealth, CategoryWater,
		CategoryInfrastructure, CategorySecurity, CategoryEnvironment, CategoryOther:
		return c, nil
	default:
		return "", fmt.Errorf("unknown project category %q", s)
	}
}

// ProjectStatus is the delivery state of a project.
type ProjectStatus string

const (
	StatusPlanned   ProjectStatus = "Planned"
	StatusOngoing   ProjectStatus = "Ongoing"
	StatusCompleted ProjectStatus = "Completed"
	StatusFlagged   ProjectStatus = "Flagged"
)

func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch st := ProjectStatus(s); st {
	case StatusPlanned, StatusOngoing, StatusCompleted, StatusFlagged:
		return st, nil
	default:
		return "", fmt.Errorf("unknown project status %q", s)
	}
}

// Role is the platform role of a user account.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleViewer    Role = "viewer"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleModerator, RoleViewer:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// UserStatus is the account state of a user.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserDisabled UserStatus = "disabled"
)

func ParseUserStatus(s string) (UserStatus, error) {
	switch st := UserStatus(s); st {
	case UserActive, UserDisabled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown user status %q", s)
	}
}

// FeedbackStatus is the moderation state of a feedback entry.
type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "pending"
	FeedbackApproved FeedbackStatus = "approved"
	FeedbackRejected FeedbackStatus = "rejected"
)

func ParseFeedbackStatus(s string) (FeedbackStatus, error) {
	switch st := FeedbackStatus(s); st {
	case FeedbackPending, FeedbackApproved, FeedbackRejected:
		return st, nil
	default:
		return "", fmt.Errorf("unknown feedback status %q", s)
	}
}
