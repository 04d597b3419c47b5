package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNoResume = errors.New("no resume available")

func NewError(model string, err error) error {
	return fmt.Errorf("%s: %w", strings.ToLower(model), err)
}
