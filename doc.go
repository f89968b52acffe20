// Package auth implements the authentication and account-lifecycle engine
// for the tasklist application: credential verification, registration with
// a two-phase activation gate, and password rotation.
//
// Lifecycle:
//   - Lifecycle is the single entry point for account state. Login verifies a
//     credential through an IdentityProvider and yields a per-request
//     SecurityContext. Register provisions an account plus its Activation
//     record atomically, assigning the configured default role. SetActivation
//     flips the activation gate by token and rejects replayed activation
//     links. UpdatePassword rotates the hash for the acting identity.
//
// Repositories:
//   - Users, Roles, and Activations are thin Bun-backed stores exposed through
//     a RepositoryManager so every lifecycle operation runs inside a single
//     transaction. The unique constraints on username, email, and activation
//     token are the authority of last resort; the service-level checks are an
//     optimization on top of them.
//
// Perimeter:
//   - The middleware/perimeter package enforces the request boundary: TLS-only
//     transport, no server-held sessions, no built-in credential prompts.
//     middleware/securityctx turns a validated bearer token into the
//     SecurityContext the lifecycle operations consume.
package auth
