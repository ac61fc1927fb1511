package constants

import "fmt"

const (
	RoleOrganizer   = "organizer"
	RoleCoordinator = "coordinator"
	RoleMentor      = "mentor"
	RoleIntern      = "intern"
)

const (
	ErrOnlyOrganizersCanAccess = "❌ Only organizers may access %s."
	ErrOnlyFundersCanAccess    = "❌ Only organizers or community coordinators may access %s."
)

func RoleErrorOrganizer(feature string) string {
	return fmt.Sprintf(ErrOnlyOrganizersCanAccess, feature)
}

func RoleErrorFunder(feature string) string {
	return fmt.Sprintf(ErrOnlyFundersCanAccess, feature)
}

var (
	AllRoles = []string{
		RoleOrganizer,
		RoleCoordinator,
		RoleMentor,
		RoleIntern,
	}

	OrganizerOnly = []string{
		RoleOrganizer,
	}

	FundingRoles = []string{
		RoleOrganizer,
		RoleCoordinator,
	}
)
