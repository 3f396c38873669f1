package common

// AuthorizationHeaderName is the HTTP header carrying the bearer assertion.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"

// DefaultIssuer is the issuer tag stamped into and required from every
// assertion.
const DefaultIssuer = "AuthServer"
