package rbac

import (
	"context"
	"strings"
)

// Roles in the training system. Trainees transcribe, trainers also manage the
// deed catalog and review everyone's attempts, admins can do anything.
const (
	RoleTrainee = "trainee"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

var RolePermissions = map[string][]string{
	RoleTrainee: {
		"deed:view",
		"deed:next",
		"attempt:create",
		"attempt:view-own",
	},
	RoleTrainer: {
		"deed:view",
		"deed:next",
		"deed:upload",
		"deed:update",
		"attempt:create",
		"attempt:view-own",
		"attempt:view-all",
		"dashboard:view",
		"users:manage",
	},
	RoleAdmin: {
		"*", // everything
	},
}

type Checker struct {
	RolePermissions map[string][]string
}

func NewChecker(rp map[string][]string) *Checker {
	if rp == nil {
		rp = RolePermissions
	}
	return &Checker{RolePermissions: rp}
}

func (c *Checker) Has(role, perm string) bool {
	perms, ok := c.RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == "*" || matchPerm(p, perm) {
			return true
		}
	}
	return false
}

func (c *Checker) Any(role string, perms ...string) bool {
	for _, p := range perms {
		if c.Has(role, p) {
			return true
		}
	}
	return false
}

func matchPerm(pattern, perm string) bool {
	if pattern == "*" || pattern == perm {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(perm, strings.TrimSuffix(pattern, "*"))
	}
	return false
}

// ---- identity in context ----

type ctxKey int

const (
	ctxKeyRole ctxKey = iota
	ctxKeySubject
)

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ctxKeyRole, role)
}

func RoleFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(ctxKeyRole).(string); ok {
		return s
	}
	return ""
}

func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, ctxKeySubject, sub)
}

func SubjectFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(ctxKeySubject).(string); ok {
		return s
	}
	return ""
}
