package models

// Identity is the client's view of the authenticated user. It is serialized as-is into the
// session store next to the token.
type Identity struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	IsStaff        bool   `json:"is_staff"`
	PointsEarned   int    `json:"points_earned"`
	TasksCompleted int    `json:"tasksCompleted"`
}

// NewIdentity builds an identity from the user returned at login.
func NewIdentity(user User) Identity {
	return Identity{ID: user.ID, Username: user.Username, Email: user.Email, IsStaff: user.IsStaff}
}

// MergeProfile copies fresher fields from a profile into the identity.
// User fields are only taken when the profile carries a user object.
func (identity *Identity) MergeProfile(profile Profile) {
	if profile.User.ID != 0 {
		identity.ID = profile.User.ID
		identity.Username = profile.User.Username
		identity.Email = profile.User.Email
		identity.IsStaff = profile.User.IsStaff
	}
	identity.PointsEarned = profile.PointsEarned
	identity.TasksCompleted = profile.TasksCompleted
}
