package common

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "sharebin_session"

// MaxArtifactSize is the upload ceiling for file payloads and note bodies.
const MaxArtifactSize = 50 * 1024 * 1024
