// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

// Package authz decides whether a viewer may act on a feed entity.
//
// Decisions are made by a Casbin enforcer over an embedded model and policy.
// A request carries the viewer's role, the viewer's username, the owner of
// the target entity, the object kind and the action:
//
//	[request_definition]
//	r = role, user, owner, obj, act
//
//	[policy_definition]
//	p = role, obj, act, scope
//
//	[matchers]
//	m = g(r.role, p.role) && r.obj == p.obj && r.act == p.act &&
//	    (p.scope == "any" || (r.user != "" && r.user == r.owner))
//
// Two roles exist. Requests without a viewer run as "anonymous" and may only
// read. Authenticated viewers run as "member", which inherits anonymous, and
// may create content, like, follow, and edit or delete what they own.
//
// Services call Authorize and propagate the returned models.ErrForbidden:
//
//	if err := enforcer.Authorize(viewer, comment.Author, authz.ObjectComment, authz.ActionUpdate); err != nil {
//	    return err
//	}
//
// A policy file on disk may replace the embedded policy via
// EnforcerConfig.PolicyPath; it is polled for changes when AutoReload is set.
package authz
