package domain

import "errors"

var ErrValidation = errors.New("validation failed")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountNotFound = errors.New("account not found")
var ErrDuplicateAccount = errors.New("account already exists")
var ErrSessionNotFound = errors.New("session not found")
var ErrBudgetNotFound = errors.New("budget not found")
var ErrExpenseNotFound = errors.New("expense not found")
var ErrOverspendRejected = errors.New("budget ceiling exceeded")
