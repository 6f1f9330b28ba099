package model

import "errors"

var ErrorMissingCredential = errors.New("missing credential")
var ErrorInvalidCredential = errors.New("invalid credential")
var ErrorInvalidEmailOrPassword = errors.New("invalid email or password")
var ErrorUserNotFound = errors.New("user not found")
var ErrorUserExists = errors.New("user already exists")
var ErrorFlatNotFound = errors.New("flat not found")
var ErrorForbidden = errors.New("forbidden")
var ErrorEmptyContent = errors.New("message content must not be empty")
