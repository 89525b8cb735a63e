// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package authz

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/murmur/internal/models"
)

// setupEnforcer creates an enforcer with default config and registers cleanup.
func setupEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	enforcer, err := NewEnforcer(context.Background(), nil)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	t.Cleanup(func() { enforcer.Close() })
	return enforcer
}

func TestEnforce_Matrix(t *testing.T) {
	e := setupEnforcer(t)

	tests := []struct {
		name   string
		viewer string
		owner  string
		object string
		action string
		want   bool
	}{
		{"anonymous reads feed", "", "", ObjectFeed, ActionRead, true},
		{"anonymous reads post", "", "alice", ObjectPost, ActionRead, true},
		{"anonymous reads comment", "", "alice", ObjectComment, ActionRead, true},
		{"anonymous reads profile", "", "alice", ObjectProfile, ActionRead, true},
		{"anonymous cannot create post", "", "", ObjectPost, ActionCreate, false},
		{"anonymous cannot like", "", "alice", ObjectPost, ActionLike, false},
		{"anonymous cannot update own-scoped with empty owner", "", "", ObjectComment, ActionUpdate, false},
		{"member inherits read", "bob", "alice", ObjectPost, ActionRead, true},
		{"member creates post", "bob", "", ObjectPost, ActionCreate, true},
		{"member creates comment", "bob", "", ObjectComment, ActionCreate, true},
		{"member likes others' post", "bob", "alice", ObjectPost, ActionLike, true},
		{"member likes others' comment", "bob", "alice", ObjectComment, ActionLike, true},
		{"member follows", "bob", "alice", ObjectProfile, ActionFollow, true},
		{"author updates comment", "alice", "alice", ObjectComment, ActionUpdate, true},
		{"non-author cannot update comment", "bob", "alice", ObjectComment, ActionUpdate, false},
		{"author deletes post", "alice", "alice", ObjectPost, ActionDelete, true},
		{"non-author cannot delete post", "bob", "alice", ObjectPost, ActionDelete, false},
		{"owner updates profile", "carol", "carol", ObjectProfile, ActionUpdate, true},
		{"non-owner cannot update profile", "carol", "dave", ObjectProfile, ActionUpdate, false},
		{"unknown action", "alice", "alice", ObjectPost, "publish", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Enforce(tt.viewer, tt.owner, tt.object, tt.action)
			if err != nil {
				t.Fatalf("Enforce() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Enforce(%q, %q, %q, %q) = %v, want %v",
					tt.viewer, tt.owner, tt.object, tt.action, got, tt.want)
			}
		})
	}
}

func TestAuthorize_ReturnsForbidden(t *testing.T) {
	e := setupEnforcer(t)

	if err := e.Authorize("alice", "alice", ObjectComment, ActionUpdate); err != nil {
		t.Fatalf("author should be allowed: %v", err)
	}

	err := e.Authorize("bob", "alice", ObjectComment, ActionUpdate)
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("Authorize() error = %v, want ErrForbidden", err)
	}
}

func TestRoleFor(t *testing.T) {
	if got := RoleFor(""); got != RoleAnonymous {
		t.Errorf("RoleFor(\"\") = %q", got)
	}
	if got := RoleFor("alice"); got != RoleMember {
		t.Errorf("RoleFor(alice) = %q", got)
	}
}

func TestEmbeddedPolicyLoaded(t *testing.T) {
	e := setupEnforcer(t)

	policies := e.GetPolicy()
	if len(policies) != 14 {
		t.Errorf("len(GetPolicy()) = %d, want 14", len(policies))
	}
	for _, p := range policies {
		if len(p) != 4 {
			t.Errorf("policy %v has %d fields, want 4", p, len(p))
		}
	}
}

func TestLoadPolicy_NoAdapter(t *testing.T) {
	e := setupEnforcer(t)
	if err := e.LoadPolicy(); !errors.Is(err, ErrNoAdapter) {
		t.Errorf("LoadPolicy() error = %v, want ErrNoAdapter", err)
	}
}

func TestPolicyFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.csv")
	content := "p, anonymous, feed, read, any\np, member, post, create, any\ng, member, anonymous\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	e, err := NewEnforcer(context.Background(), &EnforcerConfig{PolicyPath: path})
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	t.Cleanup(e.Close)

	if ok, _ := e.Enforce("bob", "", ObjectPost, ActionCreate); !ok {
		t.Error("file policy should allow member post create")
	}
	if ok, _ := e.Enforce("bob", "alice", ObjectPost, ActionLike); ok {
		t.Error("file policy has no like rule")
	}
	if err := e.LoadPolicy(); err != nil {
		t.Errorf("LoadPolicy() error = %v", err)
	}
}

func TestRecordAuthzDecision(t *testing.T) {
	before := testutil.ToFloat64(AuthzDecisionsTotal.WithLabelValues(RoleMember, ObjectPost, ActionDelete, "denied"))

	e := setupEnforcer(t)
	if ok, _ := e.Enforce("bob", "alice", ObjectPost, ActionDelete); ok {
		t.Fatal("expected denial")
	}

	after := testutil.ToFloat64(AuthzDecisionsTotal.WithLabelValues(RoleMember, ObjectPost, ActionDelete, "denied"))
	if after != before+1 {
		t.Errorf("denied counter = %v, want %v", after, before+1)
	}
}
