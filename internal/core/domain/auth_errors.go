package domain

import "errors"

// AuthErrorCode is the closed set of authentication outcomes exposed to clients.
type AuthErrorCode string

const (
	AuthWrongPassword     AuthErrorCode = "wrong-password"
	AuthUserNotFound      AuthErrorCode = "user-not-found"
	AuthEmailInUse        AuthErrorCode = "email-already-in-use"
	AuthWeakPassword      AuthErrorCode = "weak-password"
	AuthInvalidEmail      AuthErrorCode = "invalid-email"
	AuthPasswordsMismatch AuthErrorCode = "passwords-mismatch"
	AuthInvalidResetToken AuthErrorCode = "invalid-reset-token"
	AuthUnknown           AuthErrorCode = "unknown"
)

type AuthOperation string

const (
	AuthOpSignIn        AuthOperation = "sign-in"
	AuthOpSignUp        AuthOperation = "sign-up"
	AuthOpPasswordReset AuthOperation = "password-reset"
)

var authErrorCodes = []struct {
	err  error
	code AuthErrorCode
}{
	{ErrWrongPassword, AuthWrongPassword},
	{ErrUserNotFound, AuthUserNotFound},
	{ErrEmailAlreadyExists, AuthEmailInUse},
	{ErrWeakPassword, AuthWeakPassword},
	{ErrInvalidEmail, AuthInvalidEmail},
	{ErrPasswordsMismatch, AuthPasswordsMismatch},
	{ErrInvalidResetToken, AuthInvalidResetToken},
}

// AuthErrorCodeOf translates an error from the auth flow into its code.
// Anything unrecognised is AuthUnknown.
func AuthErrorCodeOf(err error) AuthErrorCode {
	for _, c := range authErrorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return AuthUnknown
}

var authMessages = map[AuthOperation]map[AuthErrorCode]string{
	AuthOpSignIn: {
		AuthUserNotFound:  "No user found with that email.",
		AuthWrongPassword: "Incorrect password. Please try again.",
		AuthInvalidEmail:  "Invalid email address.",
		AuthUnknown:       "Login failed. Please try again.",
	},
	AuthOpSignUp: {
		AuthEmailInUse:        "Email is already in use.",
		AuthInvalidEmail:      "Invalid email address.",
		AuthWeakPassword:      "Password should be at least 6 characters long.",
		AuthPasswordsMismatch: "Passwords do not match.",
		AuthUnknown:           "Registration failed. Please try again.",
	},
	AuthOpPasswordReset: {
		AuthUserNotFound:      "No user found with that email address.",
		AuthInvalidEmail:      "Please enter a valid email address.",
		AuthWeakPassword:      "Password should be at least 6 characters long.",
		AuthInvalidResetToken: "This reset link is invalid or has expired.",
		AuthUnknown:           "An error occurred. Please try again later.",
	},
}

// AuthMessage returns the user-facing text for code in the context of op,
// falling back to the operation's generic message.
func AuthMessage(op AuthOperation, code AuthErrorCode) string {
	msgs, ok := authMessages[op]
	if !ok {
		return "Something went wrong. Please try again."
	}
	if msg, ok := msgs[code]; ok {
		return msg
	}
	return msgs[AuthUnknown]
}
