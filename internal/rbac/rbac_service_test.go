package rbac

import (
	"testing"

	"github.com/ymnkynp/monkey-timeoff/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/stretchr/testify/assert"
)

type mockRepo struct{}

func (m *mockRepo) GetEmployeeRoles() ([]EmployeeRoleRow, error) {
	return []EmployeeRoleRow{
		{
			EmployeeID: "emp-1",
			RoleID:     "role-hr",
		},
	}, nil
}

func (m *mockRepo) GetRolePermissions() ([]RolePermissionRow, error) {
	return []RolePermissionRow{
		{
			RoleID:   "role-hr",
			Resource: "leave-type",
			Action:   "manage",
		},
	}, nil
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	modelText := `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

	m, err := model.NewModelFromString(modelText)
	assert.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	assert.NoError(t, err)

	return e
}

func TestRBACService_Enforce(t *testing.T) {
	repo := &mockRepo{}
	enforcer := newTestEnforcer(t)

	service := NewService(repo, enforcer)

	err := service.LoadPolicy()
	assert.NoError(t, err)

	// Should allow
	allowed, err := service.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-1",
		Resource:   "leave-type",
		Action:     "manage",
	})

	assert.NoError(t, err)
	assert.True(t, allowed)

	// Should deny
	denied, err := service.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-1",
		Resource:   "leave",
		Action:     "decide",
	})

	assert.NoError(t, err)
	assert.False(t, denied)
}
