// Package consolesdk is the Go client of the BreachWatch console API.
//
// Public operations (waitlist signup, onboarding, invitation acceptance,
// login) hang off Client. Everything that needs a bearer token goes through
// a Session:
//
//	c := consolesdk.NewClient("http://localhost:8080")
//	sess, err := c.Login(ctx, "owner@acme.com", "longenough1")
//	var mfa *consolesdk.MFARequiredError
//	if errors.As(err, &mfa) {
//		sess, err = c.CompleteMFA(ctx, mfa.Challenge.MFAToken, code)
//	}
//	me, err := sess.Me(ctx)
//
// Errors returned by the server are *APIError values carrying the HTTP
// status and the message from the {"error": "..."} body.
//
// The request and response types in this package double as the wire
// format of the server, so handlers and the client cannot drift apart.
package consolesdk
