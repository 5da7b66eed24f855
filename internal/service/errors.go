package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrOTPNotFound     = errors.New("otp not found")
	ErrOTPExpired      = errors.New("otp expired")
	ErrInvalidOTP      = errors.New("invalid otp")
	ErrTooManyAttempts = errors.New("too many otp attempts")

	ErrPropertyNotFound = errors.New("property not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrForbidden        = errors.New("not authorized")

	ErrTooManyImages   = errors.New("too many images")
	ErrImageTooLarge   = errors.New("image file too large")
	ErrUnsupportedFile = errors.New("only image files are allowed")
)
