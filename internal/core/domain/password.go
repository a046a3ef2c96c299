package domain

import (
	_ "embed"
	"strings"
	"unicode"
)

// PasswordRule identifies a single password-strength requirement.
type PasswordRule string

const (
	RuleMinLength   PasswordRule = "min_length"
	RuleUppercase   PasswordRule = "uppercase"
	RuleLowercase   PasswordRule = "lowercase"
	RuleDigit       PasswordRule = "digit"
	RuleSpecialChar PasswordRule = "special_char"
	RuleNoSpaces    PasswordRule = "no_spaces"
	RuleCommon      PasswordRule = "common"
	RuleNumeric     PasswordRule = "numeric"
	RuleSimilarity  PasswordRule = "similarity"
)

const (
	MinPasswordLength = 8
	specialChars      = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
	minSimilarLength  = 4
)

// PasswordError reports the first rule a password failed.
type PasswordError struct {
	Rule    PasswordRule
	Message string
}

func (e *PasswordError) Error() string { return e.Message }

//go:embed common_passwords.txt
var commonPasswordsRaw string

var commonPasswords = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, line := range strings.Split(commonPasswordsRaw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[strings.ToLower(line)] = struct{}{}
	}
	return set
}()

type passwordCheck struct {
	rule    PasswordRule
	message string
	ok      func(pw, username, email string) bool
}

// Checks run in this order; the first failure wins.
var passwordChecks = []passwordCheck{
	{RuleMinLength, "Password must be at least 8 characters long.", func(pw, _, _ string) bool {
		return len([]rune(pw)) >= MinPasswordLength
	}},
	{RuleUppercase, "Password must contain at least one uppercase letter.", func(pw, _, _ string) bool {
		return containsFunc(pw, func(r rune) bool { return r >= 'A' && r <= 'Z' })
	}},
	{RuleLowercase, "Password must contain at least one lowercase letter.", func(pw, _, _ string) bool {
		return containsFunc(pw, func(r rune) bool { return r >= 'a' && r <= 'z' })
	}},
	{RuleDigit, "Password must contain at least one digit.", func(pw, _, _ string) bool {
		return containsFunc(pw, unicode.IsDigit)
	}},
	{RuleSpecialChar, "Password must contain at least one special character (!@#$%^&*...).", func(pw, _, _ string) bool {
		return strings.ContainsAny(pw, specialChars)
	}},
	{RuleNoSpaces, "Password must not contain spaces.", func(pw, _, _ string) bool {
		return !strings.Contains(pw, " ")
	}},
	{RuleCommon, "This password is too common.", func(pw, _, _ string) bool {
		_, found := commonPasswords[strings.ToLower(pw)]
		return !found
	}},
	{RuleNumeric, "Password cannot be entirely numeric.", func(pw, _, _ string) bool {
		return !isNumeric(pw)
	}},
	{RuleSimilarity, "Password is too similar to your personal information.", func(pw, username, email string) bool {
		return !tooSimilar(pw, username, email)
	}},
}

// CheckPasswordStrength validates pw against the password policy. username and
// email feed the similarity heuristic and may be empty.
func CheckPasswordStrength(pw, username, email string) *PasswordError {
	for _, c := range passwordChecks {
		if !c.ok(pw, username, email) {
			return &PasswordError{Rule: c.rule, Message: c.message}
		}
	}
	return nil
}

func containsFunc(s string, f func(rune) bool) bool {
	return strings.IndexFunc(s, f) >= 0
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// tooSimilar flags passwords that embed the username or the local part of the
// email address.
func tooSimilar(pw, username, email string) bool {
	lower := strings.ToLower(pw)
	local, _, _ := strings.Cut(email, "@")
	for _, attr := range []string{username, local} {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if len(attr) >= minSimilarLength && strings.Contains(lower, attr) {
			return true
		}
	}
	return false
}
