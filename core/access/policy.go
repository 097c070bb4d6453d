// ABOUTME: Row-level access policy for content items
// ABOUTME: Admins see and delete every row, standard callers only their own

package access

import "content-planner-api/core/domain"

// OwnerScope returns the owner filter for list and bulk delete queries.
// An empty result means no filter.
func OwnerScope(caller domain.Caller) string {
	if caller.IsAdmin() {
		return ""
	}
	return caller.UserID
}

// CanAccess reports whether caller may read or modify item
func CanAccess(caller domain.Caller, item domain.ContentItem) bool {
	if caller.UserID == "" {
		return false
	}
	return caller.IsAdmin() || item.OwnerID == caller.UserID
}
