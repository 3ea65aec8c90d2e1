package domain

import "testing"

func TestIsAdministrator(t *testing.T) {
	if IsAdministrator(nil) {
		t.Fatalf("nil identity must not be an administrator")
	}

	passenger := &Passenger{ID: 1, Email: "p@example.com", Roles: []string{RoleAdmin}}
	if IsAdministrator(passenger) {
		t.Fatalf("a passenger must not be an administrator, whatever roles it lists")
	}

	admin := &Administrator{ID: 2, Email: "a@example.com"}
	if !IsAdministrator(admin) {
		t.Fatalf("an administrator record must report admin privileges")
	}
}

func TestHasRole(t *testing.T) {
	if HasRole(nil, RoleAdmin) {
		t.Fatalf("nil identity must hold no roles")
	}

	id := &Administrator{ID: 1, Roles: []string{RoleOperator, RoleAdmin}}
	if !HasRole(id, RoleOperator) {
		t.Fatalf("expected operator role to be present")
	}
	if HasRole(id, RoleSuperAdmin) {
		t.Fatalf("super_admin must not be granted implicitly")
	}

	empty := &Passenger{ID: 2}
	if HasRole(empty, "user") {
		t.Fatalf("empty role list must match nothing")
	}
}
