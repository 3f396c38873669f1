// Package client contains client-side building blocks for the coursekeeper
// CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the identity endpoints (Register, Login, Introspect) and the gated
//     resource endpoints (ListCourses, CreateCourse, Enroll), plus Ping.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that attaches the
//     bearer assertion to resource calls and maps transport failures and
//     rejected credentials to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     session database that caches the assertion between runs.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotLoggedIn. Other
// non-2xx answers surface as *netx.StatusError carrying the server message.
package client
