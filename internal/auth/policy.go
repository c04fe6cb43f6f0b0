package auth

import "github.com/reseau-alumni/alumni-be/internal/models"

// CanModify implements the owner-or-admin rule applied before every update
// or delete of links, resources, and alumni self-service fields. A resource
// without an owner is modifiable by admins only.
func CanModify(user *models.User, ownerID *string) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin {
		return true
	}
	if ownerID == nil || *ownerID == "" {
		return false
	}
	return user.ID == *ownerID
}

// CanModifyProfile is the owner-or-admin rule for alumni records, where
// ownership is the user's linked profile rather than a creator id.
func CanModifyProfile(user *models.User, profileID string) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin {
		return true
	}
	return user.ProfileID != nil && *user.ProfileID == profileID
}
