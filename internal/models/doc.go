// Package models defines the core domain models for finnet.
//
// # Models
//
//   - User: a registered account with a bcrypt password hash
//   - Portfolio: a named collection of investments owned by one user
//   - Investment: a (symbol, quantity) holding inside a portfolio
//   - Friendship: a one-directional access-granting edge between users
//   - Session: a server-side login session referenced by a cookie token
//
// # Design Principles
//
// 1. **Explicit foreign keys**: models carry ID fields, not object graphs;
// traversals go through explicit storage queries.
// 2. **Asymmetric friendship**: a Friendship row grants its FriendID's data
// to its UserID only, never the reverse.
// 3. **No in-place mutation**: entities are created by form submission and
// never updated or deleted; there are no edit routes.
package models
