package common

// SessionCookieName is the cookie that carries the signed session token
// on authenticated requests.
const SessionCookieName = "session_id"
