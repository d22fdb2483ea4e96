// Package permissions decides whether the signed-in user may perform an
// action on a component. A permission is named <COMPONENT>_<ACTION>, e.g.
// CLIENTS_UPDATE; SUPERUSER grants everything.
package permissions

import (
	"strings"

	"github.com/dmitrijs2005/caseadmin/internal/client/models"
)

const Superuser = "SUPERUSER"

// Component returns the component name guarding kind.
func Component(kind models.Kind) string {
	return strings.ToUpper(kind.Path())
}

// Components lists every component name checked by the console.
func Components() []string {
	out := make([]string, 0, len(models.AllKinds()))
	for _, k := range models.AllKinds() {
		out = append(out, Component(k))
	}
	return out
}

// Name builds the permission checked for component and action.
func Name(component, action string) string {
	return strings.ToUpper(component) + "_" + strings.ToUpper(action)
}

func names(user models.AppUser) map[string]bool {
	out := map[string]bool{}
	roles, _ := user.AppRoles.Items()
	for _, r := range roles {
		if r.IsDeleted {
			continue
		}
		perms, _ := r.AppPermissions.Items()
		for _, p := range perms {
			if !p.IsDeleted {
				out[strings.ToUpper(p.Name)] = true
			}
		}
	}
	return out
}

// Check reports whether user holds component_action or SUPERUSER through any
// loaded, non-deleted role. A user whose roles were not loaded holds nothing.
func Check(user models.AppUser, component, action string) bool {
	n := names(user)
	return n[Superuser] || n[Name(component, action)]
}

// CheckOp is Check for a kind and CRUD op.
func CheckOp(user models.AppUser, kind models.Kind, op models.Op) bool {
	return Check(user, Component(kind), op.String())
}

func IsSuperuser(user models.AppUser) bool {
	return names(user)[Superuser]
}
