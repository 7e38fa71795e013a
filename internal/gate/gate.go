// Package gate decides whether an actor may mutate a post or a profile.
//
// Checks are pure predicates over (actor, resource). Callers turn a deny
// decision into a notice and a redirect at the handler boundary.
package gate

import (
	"blog_app/internal/models"
)

// Reason tags a deny decision.
type Reason string

const (
	NotAuthenticated Reason = "NOT_AUTHENTICATED"
	NotOwner         Reason = "NOT_OWNER"
)

// Action names the mutation being attempted; it selects the notice wording.
type Action string

const (
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionDelete        Action = "delete"
	ActionUpdateProfile Action = "update_profile"
)

// Decision is the outcome of a check. Reason is empty when Allowed.
type Decision struct {
	Allowed bool
	Reason  Reason
}

var allow = Decision{Allowed: true}

func deny(r Reason) Decision { return Decision{Reason: r} }

// RequireLogin allows any authenticated actor.
func RequireLogin(actor models.Actor) Decision {
	if !actor.Authenticated() {
		return deny(NotAuthenticated)
	}
	return allow
}

// CanMutatePost allows only the post's author.
func CanMutatePost(actor models.Actor, post models.Post) Decision {
	if d := RequireLogin(actor); !d.Allowed {
		return d
	}
	if actor.UserID != post.AuthorID {
		return deny(NotOwner)
	}
	return allow
}

// CanMutateProfile allows only the user the profile belongs to.
func CanMutateProfile(actor models.Actor, profile models.Profile) Decision {
	if d := RequireLogin(actor); !d.Allowed {
		return d
	}
	if actor.UserID != profile.UserID {
		return deny(NotOwner)
	}
	return allow
}

// Err returns nil for an allow decision and a *DeniedError otherwise.
func (d Decision) Err(action Action) error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{Action: action, Reason: d.Reason}
}

// DeniedError carries a deny decision through service return values.
type DeniedError struct {
	Action Action
	Reason Reason
}

func (e *DeniedError) Error() string {
	return "permission denied: " + string(e.Action) + ": " + string(e.Reason)
}

// Notice is the human readable message shown after e was raised.
func (e *DeniedError) Notice() string {
	return Notice(e.Action, e.Reason)
}

var notices = map[Action]map[Reason]string{
	ActionCreate: {
		NotAuthenticated: "You need to log in before posting!",
	},
	ActionUpdate: {
		NotAuthenticated: "You need to log in before updating a post!",
		NotOwner:         "You can update only own posts!",
	},
	ActionDelete: {
		NotAuthenticated: "You need to log in before deleting a post!",
		NotOwner:         "You can delete only own posts!",
	},
	ActionUpdateProfile: {
		NotAuthenticated: "You need to log in before editing your profile!",
		NotOwner:         "You can edit only your own profile!",
	},
}

// Notice returns the message for a denied action, or a generic one.
func Notice(action Action, reason Reason) string {
	if msg, ok := notices[action][reason]; ok {
		return msg
	}
	if reason == NotAuthenticated {
		return "Please log in to access this page."
	}
	return "You do not have permission to do that."
}
