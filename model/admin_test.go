package model

import (
	"testing"
	"time"
)

func TestHasRole(t *testing.T) {
	admin := &Admin{Role: RoleAdmin}
	if !admin.HasRole(RoleAdmin) {
		t.Error("admin should satisfy the admin role")
	}
	if admin.HasRole(RoleSuperAdmin) {
		t.Error("admin should not satisfy the super_admin role")
	}

	super := &Admin{Role: RoleSuperAdmin}
	if !super.HasRole(RoleAdmin) {
		t.Error("super_admin should satisfy the admin role")
	}
	if !super.HasRole(RoleSuperAdmin) {
		t.Error("super_admin should satisfy the super_admin role")
	}
}

func TestRegisterFailedLoginLocksAtThreshold(t *testing.T) {
	now := time.Now()
	admin := &Admin{}

	for i := 1; i < 5; i++ {
		if locked := admin.RegisterFailedLogin(5, now); locked {
			t.Fatalf("locked after %d failures, threshold is 5", i)
		}
	}
	if admin.IsLocked {
		t.Fatal("account locked before threshold")
	}

	if locked := admin.RegisterFailedLogin(5, now); !locked {
		t.Fatal("fifth failure should lock the account")
	}
	if !admin.IsLocked || admin.LockedAt == nil {
		t.Fatal("lock flag and timestamp should both be set")
	}

	// Further failures on a locked account do not re-report the lock
	if locked := admin.RegisterFailedLogin(5, now); locked {
		t.Fatal("already locked account should not report locking again")
	}
}

func TestRegisterSuccessfulLoginResetsState(t *testing.T) {
	now := time.Now()
	admin := &Admin{FailedLoginAttempts: 3, IsLocked: true, LockedAt: &now}

	admin.RegisterSuccessfulLogin(now)

	if admin.FailedLoginAttempts != 0 {
		t.Errorf("failure counter = %d, want 0", admin.FailedLoginAttempts)
	}
	if admin.IsLocked || admin.LockedAt != nil {
		t.Error("lock state should be cleared")
	}
	if admin.LastLogin == nil {
		t.Error("last login should be stamped")
	}
}
