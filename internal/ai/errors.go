package ai

import "errors"

// ErrUnavailable marks a provider that cannot serve requests right now,
// typically because no API key is configured. Callers that can degrade
// (question generation, embedding) check for it with errors.Is.
var ErrUnavailable = errors.New("ai provider unavailable")
