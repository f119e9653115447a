package models

type ProfileRole string

const (
	ProfilePlayer ProfileRole = "player"
	ProfileOwner  ProfileRole = "owner"
	ProfileBoth   ProfileRole = "both"
)

// Profile is a global directory entry shared by all tournaments; team owner
// and player-name dropdowns are fed from it.
type Profile struct {
	ID    string      `json:"id" db:"id"`
	Name  string      `json:"name" db:"name"`
	Role  ProfileRole `json:"role" db:"role"`
	Phone string      `json:"phone" db:"phone"`
}
