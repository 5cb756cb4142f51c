package helper_test

import (
	"errors"
	"testing"

	"shareit/config"
	"shareit/helper"

	"github.com/stretchr/testify/assert"
)

func TestRunner_UnknownAction(t *testing.T) {
	err := helper.Runner(&config.Config{}, "sideways")

	assert.True(t, errors.Is(err, helper.ErrUnknownAction))
}
