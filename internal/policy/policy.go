// Package policy centralizes the authorization decisions for every mutating
// operation. It is pure: no database access, no HTTP types. Handlers call
// CanAct before touching the store and translate a denial into a response.
package policy

import "github.com/tejas4149/EstateHub-backend/internal/models"

// Actor is the identity attached to a request. The zero value is anonymous.
type Actor struct {
	ID   string
	Role models.Role
}

// Anonymous reports whether the actor carries no authenticated identity
func (a Actor) Anonymous() bool {
	return a.ID == ""
}

type Action string

const (
	ActionCreateProperty Action = "property.create"
	ActionUpdateProperty Action = "property.update"
	ActionDeleteProperty Action = "property.delete"
	ActionSendMessage    Action = "message.send"
	ActionUpdateUser     Action = "user.update"
	ActionDeleteUser     Action = "user.delete"
	ActionListUsers      Action = "user.list"
	ActionSaveProperty   Action = "property.save"
)

// Decision is the outcome of a policy check. Reason is set only on denial.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// CanAct decides whether actor may perform action on resource. The resource
// is a *models.Property for property and message actions, a *models.User for
// user actions, and may be nil for actions without a target (create, list).
func CanAct(actor Actor, action Action, resource interface{}) Decision {
	// Every action here requires an authenticated identity
	if actor.Anonymous() {
		return Deny("authentication required")
	}

	switch action {
	case ActionCreateProperty, ActionSaveProperty:
		// Any authenticated role may create listings or bookmark them
		return Allow()

	case ActionUpdateProperty, ActionDeleteProperty:
		property, ok := resource.(*models.Property)
		if !ok || property == nil {
			return Deny("property required")
		}
		if actor.ID == property.SellerID || actor.Role == models.RoleAdmin {
			return Allow()
		}
		return Deny("not authorized")

	case ActionSendMessage:
		property, ok := resource.(*models.Property)
		if !ok || property == nil {
			return Deny("property required")
		}
		if actor.ID == property.SellerID {
			return Deny("cannot message yourself")
		}
		return Allow()

	case ActionUpdateUser:
		target, ok := resource.(*models.User)
		if !ok || target == nil {
			return Deny("user required")
		}
		if actor.ID == target.ID || actor.Role == models.RoleAdmin {
			return Allow()
		}
		return Deny("not authorized")

	case ActionDeleteUser:
		if actor.Role == models.RoleAdmin {
			return Allow()
		}
		return Deny("admin access required")

	case ActionListUsers:
		if actor.Role == models.RoleAdmin {
			return Allow()
		}
		return Deny("admin access required")
	}

	return Deny("action not permitted")
}
