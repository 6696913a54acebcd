// Package auth provides the session and authorization pipeline for a
// self-hosted account service: credential verification, JWT issuance with
// single-active-session enforcement, request-time token validation, and
// role-gated access control.
//
// Revocation model:
//   - Every account carries a login key, rotated to a fresh random value on
//     each successful login and cleared on logout. Access tokens embed the
//     key they were minted with, and the authentication guard re-reads the
//     stored key on every request. Rotating the key therefore invalidates
//     every outstanding token for the account at once, without any
//     server-side token storage.
//
// Login auditing:
//   - LoginRecorder receives one append-only record per login attempt,
//     success or failure. Recorders run best-effort (errors are logged) so
//     the audit trail never blocks or rolls back a login.
//
// Role authorization:
//   - Routes declare required-role sets in a RoleRegistry resolved at
//     startup. The role guard intersects the request principal's authority
//     set against the declared set; no route metadata is reflected on at
//     request time.
package auth
